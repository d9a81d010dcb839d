package contract

import "errors"

// Fatal conditions surfaced to the user. Callers wrap these with context.
var (
	ErrNotRepository   = errors.New("couldn't get git branch name; is this a git repository?")
	ErrNoRemote        = errors.New("couldn't detect a remote for the current branch")
	ErrMissingPath     = errors.New("missing path")
	ErrBranchTimestamp = errors.New("unparseable remote branch line")
	ErrGitCommand      = errors.New("git command failed")
)
