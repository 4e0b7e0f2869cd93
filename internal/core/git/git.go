// Package git provides read-only repository queries backed by the git CLI.
//
// Every query takes the working directory explicitly; nothing here depends
// on the process's current directory.
package git

import (
	"context"
	"time"
)

// Git defines the repository queries used by git-time-machine.
type Git interface {
	// Clone clones a repository from url into dest.
	Clone(ctx context.Context, url, dest string) error
	// IsRepository reports whether dir is inside a git work tree.
	IsRepository(ctx context.Context, dir string) (bool, error)
	// ResolveRevision returns branch when it names a commit, origin/<branch>
	// when only the remote-tracking ref exists, and HEAD otherwise.
	ResolveRevision(ctx context.Context, dir, branch string) (string, error)
	// RemoteBranches lists remote-tracking branches.
	RemoteBranches(ctx context.Context, dir string) ([]string, error)
	// Branch returns the current branch name, or short commit SHA if in detached HEAD state.
	Branch(ctx context.Context, dir string) (string, error)
	// CommitCount returns the number of commits reachable from rev.
	CommitCount(ctx context.Context, dir, rev string) (int, error)
	// Contributors returns commit counts per author across all refs.
	Contributors(ctx context.Context, dir string) ([]Contributor, error)
	// Log returns commits matching opts, newest first.
	Log(ctx context.Context, dir string, opts LogOptions) ([]Commit, error)
	// HotFiles returns the most frequently changed files.
	HotFiles(ctx context.Context, dir string, opts HotFileOptions) ([]FileChange, error)
	// ShowCommit returns the header and file stats of a single commit.
	ShowCommit(ctx context.Context, dir, rev string) (CommitDetail, error)
	// DiffSummary returns shortstat totals between two revisions.
	DiffSummary(ctx context.Context, dir, from, to string) (DiffStat, error)
	// DiffSince returns shortstat totals for changes on rev since the given time.
	DiffSince(ctx context.Context, dir, rev string, since time.Time) (DiffStat, error)
}

// Commit is a single log entry.
type Commit struct {
	Hash      string    `json:"hash"`
	ShortHash string    `json:"short_hash"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
}

// CommitDetail is a commit with its body and `--stat` output.
type CommitDetail struct {
	Commit
	Body string `json:"body,omitempty"`
	Stat string `json:"stat"`
}

// Contributor is an author with their commit count.
type Contributor struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Commits int    `json:"commits"`
}

// FileChange counts how many commits touched a path.
type FileChange struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// DiffStat holds `git diff --shortstat` totals.
type DiffStat struct {
	Files     int `json:"files"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// IsZero reports whether the stat contains no changes.
func (d DiffStat) IsZero() bool {
	return d.Files == 0 && d.Additions == 0 && d.Deletions == 0
}

// LogOptions filters Log.
type LogOptions struct {
	Rev    string    // revision to walk from (empty = HEAD)
	Since  time.Time // zero = no lower bound
	Author string    // passed to --author
	Limit  int       // 0 = unlimited
}

// HotFileOptions filters HotFiles.
type HotFileOptions struct {
	Rev     string
	Since   time.Time
	Limit   int
	Exclude []string // doublestar patterns matched against repository-relative paths
}
