package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// These are overridden at release time via -ldflags. A plain `go build`
// leaves them empty and the binary falls back to the VCS metadata the
// toolchain embeds.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildDetails describes how the running binary was produced.
type buildDetails struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildDetails fills in whatever -ldflags left empty from the
// binary's embedded VCS metadata.
func resolveBuildDetails() buildDetails {
	bd := buildDetails{Version: version, Commit: commit, Date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if bd.Version == "" && info.Main.Version != "" {
			bd.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bd.Commit == "" {
					bd.Commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if bd.Date == "" {
					bd.Date = setting.Value
				}
			}
		}
	}

	if bd.Version == "" {
		bd.Version = "(devel)"
	}
	if bd.Commit == "" {
		bd.Commit = "unknown"
	}
	if bd.Date == "" {
		bd.Date = "unknown"
	}
	return bd
}

// shortRevision truncates a full revision hash to the usual 7 characters.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string used for cobra's --version flag.
func getVersion() string {
	return resolveBuildDetails().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of assetsweep.`,
		Run: func(cmd *cobra.Command, _ []string) {
			bd := resolveBuildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "assetsweep version %s\n", bd.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", bd.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", bd.Date)
		},
	}
}
