package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Namespace is the directory under the temp root that holds every clone.
	Namespace = "git-time-machine"
	// DirPrefix prefixes each clone directory inside Namespace.
	DirPrefix = "repo-"

	maxCreateAttempts = 3
)

// Cloner fetches a remote repository into dest.
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// Manager resolves references into sessions and releases them.
type Manager struct {
	cloner   Cloner
	tempRoot string
	now      func() time.Time
	token    func(time.Time) string
	warn     func(*CleanupWarning)
	signals  []os.Signal
	log      zerolog.Logger

	removeAll func(string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithTempRoot sets the directory that holds the namespace. Defaults to os.TempDir().
func WithTempRoot(dir string) Option {
	return func(m *Manager) { m.tempRoot = dir }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithWarner sets the function that shows a CleanupWarning to the user.
func WithWarner(fn func(*CleanupWarning)) Option {
	return func(m *Manager) { m.warn = fn }
}

// WithWarnWriter prints cleanup warnings as a single line to w.
func WithWarnWriter(w io.Writer) Option {
	return WithWarner(func(cw *CleanupWarning) {
		_, _ = fmt.Fprintf(w, "warning: %s\n", cw.Error())
	})
}

// WithClock sets the time source used for Session.Created and directory tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSignals sets the signals that end a Scope early. Passing none
// disables signal handling.
func WithSignals(sigs ...os.Signal) Option {
	return func(m *Manager) { m.signals = sigs }
}

// New creates a Manager that clones remote references with cloner.
func New(cloner Cloner, opts ...Option) *Manager {
	m := &Manager{
		cloner:   cloner,
		tempRoot: os.TempDir(),
		now:      time.Now,
		token:    uniqueToken,
		signals:  []os.Signal{os.Interrupt, syscall.SIGTERM},
		log:      zerolog.Nop(),

		removeAll: os.RemoveAll,
	}
	WithWarnWriter(os.Stderr)(m)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// uniqueToken combines a nanosecond timestamp with random bits so that two
// calls in the same instant, in one process or many, still differ.
func uniqueToken(t time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", t.UnixNano(), id[:8])
}

// NamespaceDir returns <temp-root>/git-time-machine.
func (m *Manager) NamespaceDir() string {
	return filepath.Join(m.tempRoot, Namespace)
}

// Resolve turns raw into a Session.
//
// Empty and local references never touch the filesystem. Remote references
// are cloned into a fresh directory under NamespaceDir; if the clone fails
// the directory is released before the *FetchError is returned.
func (m *Manager) Resolve(ctx context.Context, raw string) (*Session, error) {
	ref := ParseReference(raw)

	switch ref.Kind {
	case KindCurrent:
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &AcquisitionError{Path: ".", Err: err}
		}
		return &Session{Reference: ref, WorkingDirectory: cwd, Created: m.now()}, nil
	case KindLocal:
		return m.resolveLocal(ref)
	default:
		return m.resolveRemote(ctx, ref)
	}
}

func (m *Manager) resolveLocal(ref Reference) (*Session, error) {
	path := ref.Raw
	if rest, ok := strings.CutPrefix(path, "~"+string(filepath.Separator)); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &AcquisitionError{Path: path, Err: err}
		}
		path = filepath.Join(home, rest)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &AcquisitionError{Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &AcquisitionError{Path: abs, Err: err}
	}
	if !info.IsDir() {
		return nil, &AcquisitionError{Path: abs, Err: errors.New("not a directory")}
	}

	return &Session{Reference: ref, WorkingDirectory: abs, Created: m.now()}, nil
}

func (m *Manager) resolveRemote(ctx context.Context, ref Reference) (*Session, error) {
	created := m.now()

	dir, err := m.allocate(created)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Reference:        ref,
		WorkingDirectory: dir,
		IsTemporary:      true,
		Created:          created,
	}

	m.log.Debug().Str("url", ref.Raw).Str("dir", dir).Msg("cloning repository")

	// No retry: a transient failure is reported rather than hidden behind
	// a loop with unpredictable duration.
	if err := m.cloner.Clone(ctx, ref.Raw, dir); err != nil {
		m.Release(s)
		return nil, &FetchError{URL: ref.Raw, Err: err}
	}

	return s, nil
}

// allocate creates a new, uniquely named directory under the namespace.
// Mkdir (not MkdirAll) is used for the final component so a name clash
// fails instead of two sessions sharing one directory.
func (m *Manager) allocate(created time.Time) (string, error) {
	ns := m.NamespaceDir()

	for attempt := 1; ; attempt++ {
		if err := os.MkdirAll(ns, 0o700); err != nil {
			return "", &AcquisitionError{Path: ns, Err: err}
		}

		dir := filepath.Join(ns, DirPrefix+m.token(created))
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return dir, nil
		}

		// ErrNotExist: another process removed the empty namespace between
		// our MkdirAll and Mkdir. ErrExist: token clash.
		retryable := errors.Is(err, fs.ErrExist) || errors.Is(err, fs.ErrNotExist)
		if !retryable || attempt >= maxCreateAttempts {
			return "", &AcquisitionError{Path: dir, Err: err}
		}
		m.log.Debug().Err(err).Int("attempt", attempt).Msg("retrying temporary directory creation")
	}
}

// Release removes the session's temporary directory. It is a no-op for
// non-temporary sessions and for every call after the first. Removal
// failures are reported through the warner and never returned.
func (m *Manager) Release(s *Session) {
	if s == nil || !s.IsTemporary {
		return
	}
	s.release.Do(func() { m.remove(s.WorkingDirectory) })
}

func (m *Manager) remove(dir string) {
	if !m.owns(dir) {
		w := &CleanupWarning{Path: dir, Err: errors.New("path is outside the session namespace")}
		m.log.Warn().Str("path", dir).Msg("refusing to remove directory")
		m.warn(w)
		return
	}

	if err := m.removeAll(dir); err != nil {
		w := &CleanupWarning{Path: dir, Err: err}
		m.log.Warn().Err(err).Str("path", dir).Msg("failed to remove temporary clone")
		m.warn(w)
		return
	}

	m.log.Debug().Str("path", dir).Msg("removed temporary clone")

	// Only succeeds when no other session lives in the namespace.
	_ = os.Remove(m.NamespaceDir())
}

// owns reports whether dir is a direct repo-* child of the namespace.
func (m *Manager) owns(dir string) bool {
	rel, err := filepath.Rel(m.NamespaceDir(), dir)
	if err != nil {
		return false
	}
	return strings.HasPrefix(rel, DirPrefix) && !strings.ContainsRune(rel, filepath.Separator)
}

// Scope resolves raw, runs fn with the session, and releases the session on
// every way out of fn: normal return, error, panic, or a signal. A signal
// cancels the context passed to fn; Scope then reports ErrInterrupted.
func (m *Manager) Scope(ctx context.Context, raw string, fn func(ctx context.Context, s *Session) error) error {
	runCtx, stop := m.notifyContext(ctx)
	defer stop()

	s, err := m.Resolve(runCtx, raw)
	if err != nil {
		return interrupted(ctx, runCtx, err)
	}
	defer m.Release(s)

	return interrupted(ctx, runCtx, fn(runCtx, s))
}

func (m *Manager) notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if len(m.signals) == 0 {
		return context.WithCancel(ctx)
	}
	return signal.NotifyContext(ctx, m.signals...)
}

// interrupted tags err with ErrInterrupted when runCtx was cancelled by a
// signal rather than by the caller.
func interrupted(parent, runCtx context.Context, err error) error {
	if runCtx.Err() == nil || parent.Err() != nil {
		return err
	}
	if err == nil {
		return ErrInterrupted
	}
	return fmt.Errorf("%w: %w", ErrInterrupted, err)
}
