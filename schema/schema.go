// Package schema has the data types shared by every gitactivity stage.
package schema

import "time"

// BranchRef is a remote branch paired with the author date of its tip.
type BranchRef struct {
	Name       string    `json:"name"`        // Path after refs/remotes/, e.g. origin/feature-x
	AuthorDate time.Time `json:"author_date"` // Author date of the branch tip
}

// PathStats holds the cumulative line counts for one user-supplied path.
type PathStats struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Total returns additions plus deletions.
func (p PathStats) Total() int {
	return p.Additions + p.Deletions
}

// ActivityResult is the outcome of one run across all retained branches.
type ActivityResult struct {
	CurrentBranch string      `json:"current_branch"`
	Remote        string      `json:"remote"`
	Cutoff        time.Time   `json:"cutoff"`
	DiffMode      DiffMode    `json:"diff_mode"`
	Branches      []BranchRef `json:"branches"`
	Stats         []PathStats `json:"stats"` // One entry per input path, in argument order
}

// WithStats returns a shallow copy of the result carrying the given stats.
func (r ActivityResult) WithStats(stats []PathStats) ActivityResult {
	r.Stats = stats
	return r
}
