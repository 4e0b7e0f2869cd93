package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/hay-kot/git-time-machine/internal/core/session"
)

// LeftoverLister reports clone directories left behind by earlier runs.
type LeftoverLister interface {
	NamespaceDir() string
	Leftovers() ([]session.Leftover, error)
}

// NamespaceCheck verifies that temporary clones can be created and that no
// stale clones remain in the namespace.
type NamespaceCheck struct {
	sessions LeftoverLister
}

// NewNamespaceCheck creates a new temp namespace check.
func NewNamespaceCheck(sessions LeftoverLister) *NamespaceCheck {
	return &NamespaceCheck{sessions: sessions}
}

func (c *NamespaceCheck) Name() string {
	return "Temporary Clones"
}

func (c *NamespaceCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	ns := c.sessions.NamespaceDir()

	result.Items = append(result.Items, c.checkWritable(filepath.Dir(ns)))

	leftovers, err := c.sessions.Leftovers()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  ns,
			Status: StatusFail,
			Detail: fmt.Sprintf("cannot list: %v", err),
		})
		return result
	}

	if len(leftovers) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "leftovers",
			Status: StatusPass,
			Detail: "none",
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:   "leftovers",
		Status:  StatusWarn,
		Detail:  fmt.Sprintf("%d stale clone(s) in %s, oldest from %s", len(leftovers), ns, humanize.Time(leftovers[0].ModTime)),
		Fixable: true,
	})

	return result
}

// checkWritable creates and removes a probe directory in root.
func (c *NamespaceCheck) checkWritable(root string) CheckItem {
	probe, err := os.MkdirTemp(root, ".gtm-probe-")
	if err != nil {
		return CheckItem{
			Label:  root,
			Status: StatusFail,
			Detail: fmt.Sprintf("not writable: %v", err),
		}
	}
	_ = os.Remove(probe)

	return CheckItem{
		Label:  root,
		Status: StatusPass,
		Detail: "writable",
	}
}
