package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// emptyTree is the hash of git's empty tree object. Diffing against it
// counts every line of rev as added.
const emptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

func (e *Executor) DiffSummary(ctx context.Context, dir, from, to string) (DiffStat, error) {
	for _, rev := range []string{from, to} {
		if err := validateRevision(rev); err != nil {
			return DiffStat{}, queryErr("diff", []string{from, to}, err)
		}
	}

	out, err := e.query(ctx, dir, "diff", "diff", "--shortstat", from, to, "--")
	if err != nil {
		return DiffStat{}, err
	}
	return parseShortStat(out), nil
}

// DiffSince diffs rev against the last commit made before since. When the
// whole history falls inside the window the empty tree is used as the base.
func (e *Executor) DiffSince(ctx context.Context, dir, rev string, since time.Time) (DiffStat, error) {
	if rev == "" {
		rev = "HEAD"
	}
	if err := validateRevision(rev); err != nil {
		return DiffStat{}, queryErr("diff", []string{rev}, err)
	}

	out, err := e.query(ctx, dir, "rev-list", "rev-list", "-1", "--before="+since.Format(time.RFC3339), rev, "--")
	if err != nil {
		return DiffStat{}, err
	}

	base := strings.TrimSpace(out)
	if base == "" {
		base = emptyTree
	}

	out, err = e.query(ctx, dir, "diff", "diff", "--shortstat", base, rev, "--")
	if err != nil {
		return DiffStat{}, err
	}
	return parseShortStat(out), nil
}

// parseShortStat parses git diff --shortstat output.
// Example: " 3 files changed, 10 insertions(+), 5 deletions(-)"
// Either the insertion or deletion clause may be missing.
func parseShortStat(output string) DiffStat {
	var stat DiffStat

	output = strings.TrimSpace(output)
	if output == "" {
		return stat
	}

	for _, part := range strings.Split(output, ",") {
		fields := strings.Fields(part)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		switch word := fields[1]; {
		case strings.HasPrefix(word, "file"):
			stat.Files = n
		case strings.HasPrefix(word, "insertion"):
			stat.Additions = n
		case strings.HasPrefix(word, "deletion"):
			stat.Deletions = n
		}
	}

	return stat
}

// String renders the stat the way git prints it.
func (d DiffStat) String() string {
	return fmt.Sprintf("%d %s changed, %d %s(+), %d %s(-)",
		d.Files, plural(d.Files, "file", "files"),
		d.Additions, plural(d.Additions, "insertion", "insertions"),
		d.Deletions, plural(d.Deletions, "deletion", "deletions"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
