package tui

import (
	"context"

	"github.com/hay-kot/git-time-machine/internal/report"
)

// action is one menu entry.
type action struct {
	label   string
	title   string
	loading string
	// ask collects arguments before the query runs. Nil means none.
	ask func(ctx context.Context, p Prompter) ([]string, error)
	run func(ctx context.Context, svc *report.Service, args []string) (string, error)
}

const exitLabel = "Exit"

func actions() []action {
	return []action{
		{
			label:   "Show Repository Overview",
			title:   report.TitleOverview,
			loading: "Fetching repository information...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				ov, err := svc.Overview(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderOverview(ov, svc.Now()), nil
			},
		},
		{
			label:   "View Recent Commits",
			title:   report.TitleRecent,
			loading: "Fetching recent commits...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				commits, err := svc.RecentCommits(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderCommits(commits, svc.Now()), nil
			},
		},
		{
			label:   "Show Activity Graph",
			title:   report.TitleActivity,
			loading: "Counting commits per day...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				series, err := svc.Activity(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderActivity(series), nil
			},
		},
		{
			label:   "Show Branch Information",
			title:   report.TitleBranches,
			loading: "Analyzing branches...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				br, err := svc.Branches(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderBranches(br), nil
			},
		},
		{
			label:   "Analyze Code Changes",
			title:   report.TitleCodeChanges,
			loading: "Analyzing code changes...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				changes, err := svc.CodeChanges(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderCodeChanges(changes), nil
			},
		},
		{
			label:   "View Contributors",
			title:   report.TitleContributors,
			loading: "Fetching contributor information...",
			run: func(ctx context.Context, svc *report.Service, _ []string) (string, error) {
				contributors, err := svc.Contributors(ctx)
				if err != nil {
					return "", err
				}
				return report.RenderContributors(contributors), nil
			},
		},
		{
			label:   "Inspect a Commit",
			title:   report.TitleCommit,
			loading: "Loading commit...",
			ask: func(ctx context.Context, p Prompter) ([]string, error) {
				rev, err := p.Input(ctx, "Commit", "HEAD, a hash, or a tag")
				return []string{rev}, err
			},
			run: func(ctx context.Context, svc *report.Service, args []string) (string, error) {
				detail, err := svc.CommitDetail(ctx, args[0])
				if err != nil {
					return "", err
				}
				return report.RenderCommitDetail(detail, svc.Now()), nil
			},
		},
		{
			label:   "Compare Two Revisions",
			title:   report.TitleCompare,
			loading: "Comparing revisions...",
			ask: func(ctx context.Context, p Prompter) ([]string, error) {
				from, err := p.Input(ctx, "From", "older revision, e.g. v1.0.0")
				if err != nil {
					return nil, err
				}
				to, err := p.Input(ctx, "To", "newer revision, e.g. HEAD")
				return []string{from, to}, err
			},
			run: func(ctx context.Context, svc *report.Service, args []string) (string, error) {
				cmp, err := svc.Compare(ctx, args[0], args[1])
				if err != nil {
					return "", err
				}
				return report.RenderComparison(cmp), nil
			},
		},
	}
}
