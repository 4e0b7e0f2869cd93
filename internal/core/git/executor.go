package git

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/git-time-machine/pkg/executil"
)

// Executor implements Git using the git command-line tool.
type Executor struct {
	gitPath    string
	exec       executil.Executor
	cloneDepth int
}

// NewExecutor creates a new git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, exec: exec}
}

// WithCloneDepth returns a copy of e that makes shallow clones of the given
// depth. Zero means a full clone.
func (e *Executor) WithCloneDepth(depth int) *Executor {
	cp := *e
	cp.cloneDepth = depth
	return &cp
}

func (e *Executor) query(ctx context.Context, dir, op string, args ...string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, args...)
	if err != nil {
		return "", queryErr(op, args, err)
	}
	return string(out), nil
}

// Clone runs `git clone` without retrying. A failed clone is reported as-is.
func (e *Executor) Clone(ctx context.Context, url, dest string) error {
	args := []string{"clone", "--quiet"}
	if e.cloneDepth > 0 {
		args = append(args, "--depth", strconv.Itoa(e.cloneDepth), "--no-single-branch")
	}
	args = append(args, "--", url, dest)

	if _, err := e.exec.Run(ctx, e.gitPath, args...); err != nil {
		return fmt.Errorf("clone %s to %s: %w", url, dest, err)
	}
	return nil
}

func (e *Executor) IsRepository(ctx context.Context, dir string) (bool, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		// git exits non-zero outside a repository; that is an answer, not a failure.
		return false, nil
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

func (e *Executor) ResolveRevision(ctx context.Context, dir, branch string) (string, error) {
	if branch == "" {
		return "HEAD", nil
	}
	if err := validateRevision(branch); err != nil {
		return "", queryErr("rev-parse", []string{branch}, err)
	}

	for _, candidate := range []string{branch, "origin/" + branch} {
		_, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--verify", "--quiet", candidate+"^{commit}")
		if err == nil {
			return candidate, nil
		}
		if ctx.Err() != nil {
			return "", queryErr("rev-parse", []string{candidate}, ctx.Err())
		}
	}

	return "HEAD", nil
}

func (e *Executor) RemoteBranches(ctx context.Context, dir string) ([]string, error) {
	out, err := e.query(ctx, dir, "branch", "branch", "-r", "--no-color")
	if err != nil {
		return nil, err
	}
	return parseRemoteBranches(out), nil
}

func (e *Executor) Branch(ctx context.Context, dir string) (string, error) {
	// Try to get branch name first
	out, err := e.query(ctx, dir, "branch", "branch", "--show-current")
	if err != nil {
		return "", err
	}

	branch := strings.TrimSpace(out)
	if branch != "" {
		return branch, nil
	}

	// Empty branch name means detached HEAD - get short commit SHA
	out, err = e.query(ctx, dir, "rev-parse", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

func (e *Executor) CommitCount(ctx context.Context, dir, rev string) (int, error) {
	if rev == "" {
		rev = "HEAD"
	}
	if err := validateRevision(rev); err != nil {
		return 0, queryErr("rev-list", []string{rev}, err)
	}

	args := []string{"rev-list", "--count", rev}
	out, err := e.query(ctx, dir, "rev-list", args...)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, queryErr("rev-list", args, fmt.Errorf("parse count %q: %w", strings.TrimSpace(out), err))
	}
	return n, nil
}

func (e *Executor) Contributors(ctx context.Context, dir string) ([]Contributor, error) {
	out, err := e.query(ctx, dir, "shortlog", "shortlog", "-sne", "--all")
	if err != nil {
		return nil, err
	}
	return parseShortlog(out), nil
}

func (e *Executor) Log(ctx context.Context, dir string, opts LogOptions) ([]Commit, error) {
	args := []string{"log", "--no-color", "--format=" + logFormat}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Limit))
	}
	if opts.Rev != "" {
		if err := validateRevision(opts.Rev); err != nil {
			return nil, queryErr("log", args, err)
		}
		args = append(args, opts.Rev)
	}
	args = append(args, "--")

	out, err := e.query(ctx, dir, "log", args...)
	if err != nil {
		return nil, err
	}

	commits, err := parseLog(out)
	if err != nil {
		return nil, queryErr("log", args, err)
	}
	return commits, nil
}

func (e *Executor) HotFiles(ctx context.Context, dir string, opts HotFileOptions) ([]FileChange, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, queryErr("log", nil, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}

	args := []string{"log", "--no-color", "--pretty=format:", "--name-only"}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if opts.Rev != "" {
		if err := validateRevision(opts.Rev); err != nil {
			return nil, queryErr("log", args, err)
		}
		args = append(args, opts.Rev)
	}
	args = append(args, "--")

	out, err := e.query(ctx, dir, "log", args...)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		path := strings.TrimSpace(line)
		if path == "" || excluded(path, opts.Exclude) {
			continue
		}
		counts[path]++
	}

	files := make([]FileChange, 0, len(counts))
	for path, n := range counts {
		files = append(files, FileChange{Path: path, Count: n})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Count != files[j].Count {
			return files[i].Count > files[j].Count
		}
		return files[i].Path < files[j].Path
	})

	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}
	return files, nil
}

func excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		// Patterns were validated up front, so the error is always nil.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

func (e *Executor) ShowCommit(ctx context.Context, dir, rev string) (CommitDetail, error) {
	if err := validateRevision(rev); err != nil {
		return CommitDetail{}, queryErr("show", []string{rev}, err)
	}

	args := []string{"show", "--no-color", "--stat", "--format=" + showFormat, rev, "--"}
	out, err := e.query(ctx, dir, "show", args...)
	if err != nil {
		return CommitDetail{}, err
	}

	detail, err := parseShow(out)
	if err != nil {
		return CommitDetail{}, queryErr("show", args, err)
	}
	return detail, nil
}
