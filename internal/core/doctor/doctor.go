// Package doctor checks that git-time-machine can run here: the config
// parses, git is installed, and the temporary clone directory is usable.
package doctor

import "context"

type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is one line of a check. Fixable items are repaired by
// `doctor --autofix`.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// Result groups the items produced by one Check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Summary counts items across a report. Fixable counts only items that
// are not passing.
type Summary struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"fixable"`
}

// Report is the outcome of one doctor run; it is also the JSON document
// printed by `doctor --format json`.
type Report struct {
	Healthy bool     `json:"healthy"`
	Summary Summary  `json:"summary"`
	Checks  []Result `json:"checks"`
}

// Run executes checks in order. Checks not started before ctx is cancelled
// are left out of the report.
func Run(ctx context.Context, checks ...Check) Report {
	var rep Report
	for _, check := range checks {
		if ctx.Err() != nil {
			break
		}
		rep.Checks = append(rep.Checks, check.Run(ctx))
	}

	rep.Summary = Summarize(rep.Checks)
	rep.Healthy = rep.Summary.Failed == 0
	return rep
}

func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				s.Passed++
				continue
			case StatusWarn:
				s.Warned++
			case StatusFail:
				s.Failed++
			}
			if item.Fixable {
				s.Fixable++
			}
		}
	}
	return s
}
