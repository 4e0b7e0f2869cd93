package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/git-time-machine/internal/core/config"
	"github.com/hay-kot/git-time-machine/internal/core/doctor"
	"github.com/hay-kot/git-time-machine/internal/core/git"
	"github.com/hay-kot/git-time-machine/internal/core/session"
	"github.com/hay-kot/git-time-machine/internal/printer"
	"github.com/hay-kot/git-time-machine/internal/tui"
	"github.com/hay-kot/git-time-machine/pkg/executil"
)

const logLine = "abc123\x1fabc\x1fAda\x1fada@example.com\x1f2024-05-20T10:00:00Z\x1ffix parser\n"

type harness struct {
	root    *cli.Command
	flags   *Flags
	app     *App
	exec    *executil.RecordingExecutor
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	tmpRoot string
}

func newHarness(t *testing.T, outputs map[string][]byte) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	rec := &executil.RecordingExecutor{Outputs: outputs, Errors: map[string]error{}}
	tmpRoot := t.TempDir()
	errOut := &bytes.Buffer{}

	app := NewApp(&cfg, rec, printer.New(errOut), zerolog.Nop(),
		session.WithTempRoot(tmpRoot),
		session.WithSignals(),
	)
	flags := &Flags{Config: &cfg}

	out := &bytes.Buffer{}
	root := &cli.Command{Name: "git-time-machine", Writer: out, ErrWriter: errOut}
	explore := NewExploreCmd(flags, app)
	root.Flags = explore.Flags()
	root.Action = explore.Run
	root = NewOverviewCmd(flags, app).Register(root)
	root = NewPruneCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)

	return &harness{root: root, flags: flags, app: app, exec: rec, out: out, errOut: errOut, tmpRoot: tmpRoot}
}

// run executes args with a printer writing to errOut on the context.
func (h *harness) run(args ...string) error {
	ctx := printer.NewContext(context.Background(), printer.New(h.errOut))
	return h.root.Run(ctx, append([]string{"git-time-machine"}, args...))
}

func repoOutputs() map[string][]byte {
	return map[string][]byte{
		"git rev-parse": []byte("true\n"),
		"git branch":    []byte("main\n"),
		"git rev-list":  []byte("42\n"),
		"git log":       []byte(logLine),
	}
}

func TestOverviewCmd_JSON(t *testing.T) {
	h := newHarness(t, repoOutputs())
	dir := t.TempDir()

	err := h.run("overview", "--json", "--days", "7", dir)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "main", got["branch"])
	assert.Equal(t, float64(42), got["total_commits"])
	assert.Equal(t, float64(7), got["days"])

	for _, c := range h.exec.Commands {
		assert.Equal(t, dir, c.Dir, "every query runs in the session directory")
	}
}

func TestOverviewCmd_Text(t *testing.T) {
	h := newHarness(t, repoOutputs())

	err := h.run("overview", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Overview")
	assert.Contains(t, h.out.String(), "Total commits")
}

func TestOverviewCmd_NotARepository(t *testing.T) {
	outputs := repoOutputs()
	outputs["git rev-parse"] = []byte("false\n")
	h := newHarness(t, outputs)

	err := h.run("overview", t.TempDir())
	assert.ErrorContains(t, err, "is not a git repository")
}

func TestOverviewCmd_JSONError(t *testing.T) {
	outputs := repoOutputs()
	outputs["git rev-parse"] = []byte("false\n")
	h := newHarness(t, outputs)
	dir := t.TempDir()

	err := h.run("overview", "--json", dir)

	var reported *ReportedError
	require.ErrorAs(t, err, &reported)
	assert.ErrorContains(t, err, "is not a git repository")
	assert.Empty(t, h.out.String(), "stdout carries only successful documents")

	var doc struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(h.errOut.Bytes(), &doc))
	assert.Contains(t, doc.Message, "is not a git repository")
	assert.Equal(t, dir, doc.Data["repository"])
}

func TestOverviewCmd_MissingPath(t *testing.T) {
	h := newHarness(t, repoOutputs())

	err := h.run("overview", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, session.ErrAcquisition)
	assert.Empty(t, h.exec.Commands, "nothing runs without a working directory")
}

func TestOverviewCmd_RemoteClonesAndReleases(t *testing.T) {
	h := newHarness(t, repoOutputs())

	err := h.run("overview", "--json", "https://example.com/repo.git")
	require.NoError(t, err)

	require.NotEmpty(t, h.exec.Commands)
	clone := h.exec.Commands[0]
	require.Equal(t, "clone", clone.Args[0])
	dest := clone.Args[len(clone.Args)-1]
	assert.Equal(t, dest, h.exec.Commands[1].Dir, "queries run in the clone")

	assert.NoDirExists(t, dest)
	assert.NoDirExists(t, filepath.Join(h.tmpRoot, session.Namespace))
}

func TestOverviewCmd_CloneFailure(t *testing.T) {
	h := newHarness(t, repoOutputs())
	h.exec.Errors["git clone"] = errors.New("could not resolve host")

	err := h.run("overview", "https://bad.invalid/repo.git")
	assert.ErrorIs(t, err, session.ErrFetch)
	assert.NoDirExists(t, filepath.Join(h.tmpRoot, session.Namespace))
}

func TestExplore_TooManyArgs(t *testing.T) {
	h := newHarness(t, repoOutputs())

	err := h.run("one", "two")
	assert.ErrorContains(t, err, "at most one repository")
}

func TestExplore_NonInteractivePrintsOverview(t *testing.T) {
	h := newHarness(t, repoOutputs())

	err := h.run(t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Total commits")
}

func TestPruneCmd(t *testing.T) {
	h := newHarness(t, nil)
	ns := h.app.Sessions.NamespaceDir()

	old := filepath.Join(ns, session.DirPrefix+"1-old")
	fresh := filepath.Join(ns, session.DirPrefix+"2-fresh")
	require.NoError(t, os.MkdirAll(old, 0o700))
	require.NoError(t, os.MkdirAll(fresh, 0o700))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	err := h.run("prune")
	require.NoError(t, err)

	assert.NoDirExists(t, old)
	assert.DirExists(t, fresh)
	assert.Contains(t, h.errOut.String(), "Pruned 1 clone(s)")
}

func TestPruneCmd_Nothing(t *testing.T) {
	h := newHarness(t, nil)

	err := h.run("prune", "--older-than", "1h")
	require.NoError(t, err)
	assert.Contains(t, h.errOut.String(), "No leftover clones older than 1h0m0s")
}

func TestDoctorCmd_OutputText(t *testing.T) {
	cmd := &DoctorCmd{}
	results := []doctor.Result{
		{Name: "Temporary Clones", Items: []doctor.CheckItem{
			{Label: "leftovers", Status: doctor.StatusWarn, Detail: "2 stale clone(s)", Fixable: true},
		}},
	}

	var buf bytes.Buffer
	cmd.outputText(&buf, doctor.Report{Healthy: true, Summary: doctor.Summarize(results), Checks: results})

	assert.Contains(t, buf.String(), "Temporary Clones")
	assert.Contains(t, buf.String(), "2 stale clone(s)")
	assert.Contains(t, buf.String(), "0 passed")
	assert.Contains(t, buf.String(), "--autofix' to prune 1 stale clone(s)")
}

func TestFlags_ApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()

	f := &Flags{Days: 7, Branch: "develop"}
	require.NoError(t, f.ApplyOverrides(&cfg))
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, "develop", cfg.Branch)

	f = &Flags{Days: -1}
	assert.Error(t, f.ApplyOverrides(&cfg))
}

func TestReportOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HotFiles.Exclude = []string{"vendor/**"}

	opts := reportOptions(&cfg, &Flags{Author: "ada", Detailed: true})

	assert.Equal(t, cfg.Days, opts.Days)
	assert.Equal(t, "main", opts.Branch)
	assert.Equal(t, "ada", opts.Author)
	assert.True(t, opts.Detailed)
	assert.Equal(t, cfg.RecentCommits, opts.RecentLimit)
	assert.Equal(t, cfg.HotFiles.Limit, opts.HotLimit)
	assert.Equal(t, []string{"vendor/**"}, opts.Exclude)
}

// lingeringGit keeps writing into the clone directory for a while after
// the context is cancelled, like git being torn down.
type lingeringGit struct {
	git.Git
	finished atomic.Bool
}

func (g *lingeringGit) Clone(ctx context.Context, _, dest string) error {
	<-ctx.Done()
	time.Sleep(50 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(dest, "packed-refs"), []byte("x"), 0o600)
	g.finished.Store(true)
	return ctx.Err()
}

// abandoningSpinner returns on cancellation without waiting for action.
func abandoningSpinner(ctx context.Context, _ string, action func()) error {
	go action()
	<-ctx.Done()
	return ctx.Err()
}

func TestSpinningCloner_WaitsForCloneOnCancel(t *testing.T) {
	g := &lingeringGit{}
	root := t.TempDir()
	m := session.New(
		&spinningCloner{git: g, spin: tui.Waiting(abandoningSpinner)},
		session.WithTempRoot(root),
		session.WithSignals(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	s, err := m.Resolve(ctx, "https://example.com/repo.git")
	assert.Nil(t, s)
	require.ErrorIs(t, err, session.ErrFetch)
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, g.finished.Load(), "Resolve returned while the clone was still running")
	leftovers, err := m.Leftovers()
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
