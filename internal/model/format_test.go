package model

import "testing"

// TestFormatBytes tests human-readable byte formatting.
func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{name: "zero bytes", input: 0, want: "0 B"},
		{name: "negative is clamped to zero", input: -5, want: "0 B"},
		{name: "single byte", input: 1, want: "1 B"},
		{name: "just below one KB", input: 1023, want: "1023 B"},
		{name: "exactly one KB", input: 1024, want: "1 KB"},
		{name: "one and a half KB", input: 1536, want: "1.5 KB"},
		{name: "exactly one MB", input: 1048576, want: "1 MB"},
		{name: "fractional MB", input: 1310720, want: "1.25 MB"},
		{name: "exactly one GB", input: 1073741824, want: "1 GB"},
		{name: "beyond GB stays in GB", input: 2199023255552, want: "2048 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.input); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
