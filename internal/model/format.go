package model

import (
	"fmt"
	"strings"
)

// byteUnits are the supported size units, base-1024, smallest first.
// GB is the largest unit: mobile asset directories do not reach TB scale,
// and anything beyond GB would only obscure the numbers.
var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count as a human-readable string using
// base-1024 scaling. The largest unit where the value is at least 1 is
// selected, rounded to two decimal places with trailing zeros trimmed:
// 1536 -> "1.5 KB", 1048576 -> "1 MB". Zero formats as "0 B".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}

	s := fmt.Sprintf("%.2f", value)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " " + byteUnits[unit]
}
