package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathStatsTotal(t *testing.T) {
	tests := []struct {
		name     string
		stats    PathStats
		expected int
	}{
		{"zero", PathStats{Path: "a.go"}, 0},
		{"additions only", PathStats{Path: "a.go", Additions: 7}, 7},
		{"both", PathStats{Path: "a.go", Additions: 60, Deletions: 5}, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stats.Total())
		})
	}
}

func TestDiffModeRangeSeparator(t *testing.T) {
	assert.Equal(t, "...", MergeBaseDiff.RangeSeparator())
	assert.Equal(t, "..", DirectDiff.RangeSeparator())
	assert.Equal(t, "...", DiffMode("").RangeSeparator(), "unknown modes fall back to merge-base")
}

func TestActivityResultWithStats(t *testing.T) {
	original := ActivityResult{
		Remote: "origin",
		Stats:  []PathStats{{Path: "a"}, {Path: "b"}},
	}
	filtered := original.WithStats([]PathStats{{Path: "a"}})

	assert.Len(t, filtered.Stats, 1)
	assert.Len(t, original.Stats, 2, "original must not be modified")
	assert.Equal(t, "origin", filtered.Remote)
}
