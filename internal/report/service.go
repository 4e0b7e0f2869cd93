// Package report gathers repository statistics for the explorer views and
// renders them as text.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/git-time-machine/internal/core/activity"
	"github.com/hay-kot/git-time-machine/internal/core/git"
)

// Options controls which history the queries look at.
type Options struct {
	Days        int      // analysis window in days, ending today
	Branch      string   // preferred revision; falls back to HEAD when missing
	Author      string   // optional --author filter for commit queries
	Detailed    bool     // include diff and activity statistics in the overview
	RecentLimit int      // rows in the recent commits view
	HotLimit    int      // rows in the hot files view
	Exclude     []string // doublestar globs hidden from the hot files view
}

// Service runs read-only queries against one working directory.
type Service struct {
	git  git.Git
	dir  string
	opts Options
	now  func() time.Time
	loc  *time.Location
	log  zerolog.Logger
}

// NewService creates a Service for the repository at dir.
func NewService(g git.Git, dir string, opts Options, log zerolog.Logger) *Service {
	return &Service{
		git:  g,
		dir:  dir,
		opts: opts,
		now:  time.Now,
		loc:  time.Local,
		log:  log,
	}
}

// WithClock returns a copy of s that reads time from now and buckets days in loc.
func (s *Service) WithClock(now func() time.Time, loc *time.Location) *Service {
	cp := *s
	cp.now = now
	cp.loc = loc
	return &cp
}

// Options returns the options the service was built with.
func (s *Service) Options() Options {
	return s.opts
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) since() time.Time {
	return activity.WindowStart(s.now(), s.opts.Days, s.loc)
}

// revision resolves the configured branch, logging when it falls back.
func (s *Service) revision(ctx context.Context) (string, error) {
	rev, err := s.git.ResolveRevision(ctx, s.dir, s.opts.Branch)
	if err != nil {
		return "", err
	}
	if s.opts.Branch != "" && rev == "HEAD" {
		s.log.Warn().Str("branch", s.opts.Branch).Msg("branch not found, using HEAD")
	}
	return rev, nil
}

// Overview summarises the repository and the analysis window.
type Overview struct {
	Branch        string          `json:"branch"`
	Revision      string          `json:"revision"`
	TotalCommits  int             `json:"total_commits"`
	Days          int             `json:"days"`
	Since         time.Time       `json:"since"`
	Author        string          `json:"author,omitempty"`
	WindowCommits int             `json:"window_commits"`
	LastCommit    *git.Commit     `json:"last_commit,omitempty"`
	Changes       *git.DiffStat   `json:"changes,omitempty"`
	Activity      activity.Series `json:"activity,omitempty"`
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	branch, err := s.git.Branch(ctx, s.dir)
	if err != nil {
		return Overview{}, err
	}

	rev, err := s.revision(ctx)
	if err != nil {
		return Overview{}, err
	}

	total, err := s.git.CommitCount(ctx, s.dir, rev)
	if err != nil {
		return Overview{}, err
	}

	since := s.since()
	commits, err := s.git.Log(ctx, s.dir, git.LogOptions{Rev: rev, Since: since, Author: s.opts.Author})
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{
		Branch:        branch,
		Revision:      rev,
		TotalCommits:  total,
		Days:          s.opts.Days,
		Since:         since,
		Author:        s.opts.Author,
		WindowCommits: len(commits),
	}
	if len(commits) > 0 {
		last := commits[0]
		ov.LastCommit = &last
	}

	if !s.opts.Detailed {
		return ov, nil
	}

	stat, err := s.git.DiffSince(ctx, s.dir, rev, since)
	if err != nil {
		return Overview{}, err
	}
	ov.Changes = &stat
	ov.Activity = activity.Bucket(commitDates(commits), s.now(), s.opts.Days, s.loc)

	return ov, nil
}

// RecentCommits returns the newest commits on the analysed revision.
func (s *Service) RecentCommits(ctx context.Context) ([]git.Commit, error) {
	rev, err := s.revision(ctx)
	if err != nil {
		return nil, err
	}
	return s.git.Log(ctx, s.dir, git.LogOptions{Rev: rev, Author: s.opts.Author, Limit: s.opts.RecentLimit})
}

// Activity returns commits per day over the analysis window.
func (s *Service) Activity(ctx context.Context) (activity.Series, error) {
	rev, err := s.revision(ctx)
	if err != nil {
		return nil, err
	}

	commits, err := s.git.Log(ctx, s.dir, git.LogOptions{Rev: rev, Since: s.since(), Author: s.opts.Author})
	if err != nil {
		return nil, err
	}

	return activity.Bucket(commitDates(commits), s.now(), s.opts.Days, s.loc), nil
}

func commitDates(commits []git.Commit) []time.Time {
	out := make([]time.Time, len(commits))
	for i, c := range commits {
		out[i] = c.Date
	}
	return out
}

// Branches is the current branch and the remote-tracking branches.
type Branches struct {
	Current string   `json:"current"`
	Remote  []string `json:"remote"`
}

func (s *Service) Branches(ctx context.Context) (Branches, error) {
	current, err := s.git.Branch(ctx, s.dir)
	if err != nil {
		return Branches{}, err
	}

	remote, err := s.git.RemoteBranches(ctx, s.dir)
	if err != nil {
		return Branches{}, err
	}

	return Branches{Current: current, Remote: remote}, nil
}

// CodeChanges is the diff total and the most changed files in the window.
type CodeChanges struct {
	Since time.Time        `json:"since"`
	Stat  git.DiffStat     `json:"stat"`
	Files []git.FileChange `json:"files"`
}

func (s *Service) CodeChanges(ctx context.Context) (CodeChanges, error) {
	rev, err := s.revision(ctx)
	if err != nil {
		return CodeChanges{}, err
	}

	since := s.since()
	stat, err := s.git.DiffSince(ctx, s.dir, rev, since)
	if err != nil {
		return CodeChanges{}, err
	}

	files, err := s.git.HotFiles(ctx, s.dir, git.HotFileOptions{
		Rev:     rev,
		Since:   since,
		Limit:   s.opts.HotLimit,
		Exclude: s.opts.Exclude,
	})
	if err != nil {
		return CodeChanges{}, err
	}

	return CodeChanges{Since: since, Stat: stat, Files: files}, nil
}

func (s *Service) Contributors(ctx context.Context) ([]git.Contributor, error) {
	return s.git.Contributors(ctx, s.dir)
}

func (s *Service) CommitDetail(ctx context.Context, rev string) (git.CommitDetail, error) {
	return s.git.ShowCommit(ctx, s.dir, rev)
}

// Comparison is the diff total between two revisions.
type Comparison struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Stat git.DiffStat `json:"stat"`
}

func (s *Service) Compare(ctx context.Context, from, to string) (Comparison, error) {
	stat, err := s.git.DiffSummary(ctx, s.dir, from, to)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{From: from, To: to, Stat: stat}, nil
}
