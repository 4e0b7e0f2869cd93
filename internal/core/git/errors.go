package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRevision is returned when a user-supplied revision is rejected
// before reaching git.
var ErrInvalidRevision = errors.New("invalid revision")

// QueryError is returned when a git read fails. It is recoverable: the
// caller reports it and carries on.
type QueryError struct {
	Op   string   // short name of the query, e.g. "log"
	Args []string // git arguments
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Command returns the git invocation that failed, for logging.
func (e *QueryError) Command() string {
	return "git " + strings.Join(e.Args, " ")
}

func queryErr(op string, args []string, err error) error {
	return &QueryError{Op: op, Args: args, Err: err}
}

// validateRevision rejects revisions that git would parse as options.
func validateRevision(rev string) error {
	rev = strings.TrimSpace(rev)
	switch {
	case rev == "":
		return fmt.Errorf("%w: empty", ErrInvalidRevision)
	case strings.HasPrefix(rev, "-"):
		return fmt.Errorf("%w: %q", ErrInvalidRevision, rev)
	case strings.ContainsAny(rev, " \t\n"):
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidRevision, rev)
	}
	return nil
}
