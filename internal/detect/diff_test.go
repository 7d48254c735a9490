package detect

import (
	"reflect"
	"testing"

	"github.com/assetsweep/assetsweep/internal/model"
)

// TestDiff tests the set subtraction properties.
func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		inventory  []string
		referenced []string
		want       []string
	}{
		{
			name:       "simple diff",
			inventory:  []string{"assets/a.png", "assets/b.png", "assets/c.png"},
			referenced: []string{"assets/a.png"},
			want:       []string{"assets/b.png", "assets/c.png"},
		},
		{
			name:       "empty references yields full inventory",
			inventory:  []string{"assets/a.png", "assets/b.png"},
			referenced: nil,
			want:       []string{"assets/a.png", "assets/b.png"},
		},
		{
			name:       "identical sets yield empty",
			inventory:  []string{"assets/a.png", "assets/b.png"},
			referenced: []string{"assets/a.png", "assets/b.png"},
			want:       []string{},
		},
		{
			name:       "empty inventory yields empty",
			inventory:  nil,
			referenced: []string{"assets/a.png"},
			want:       []string{},
		},
		{
			name:       "stale references are ignored",
			inventory:  []string{"assets/a.png"},
			referenced: []string{"assets/a.png", "assets/gone.png", "other/x.png"},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inventory := model.NewPathSet(tt.inventory...)
			referenced := model.NewPathSet(tt.referenced...)

			unused := Diff(inventory, referenced)

			if got := unused.Sorted(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %v, want %v", got, tt.want)
			}

			// Partition invariant: unused and referenced are disjoint,
			// and every inventory path is in exactly one of the two.
			for p := range unused {
				if referenced.Contains(p) {
					t.Errorf("path %q is in both unused and referenced", p)
				}
			}
			for p := range inventory {
				inUnused := unused.Contains(p)
				inReferenced := referenced.Contains(p)
				if inUnused == inReferenced {
					t.Errorf("path %q is not in exactly one partition (unused=%v referenced=%v)",
						p, inUnused, inReferenced)
				}
			}
		})
	}
}
