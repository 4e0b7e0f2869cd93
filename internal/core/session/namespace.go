package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Leftover is a clone directory found in the namespace. Directories of live
// sessions in other processes show up here too, which is why Prune only
// removes entries older than a threshold.
type Leftover struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}

// Leftovers lists repo-* directories in the namespace, oldest first.
// A missing namespace yields no entries.
func (m *Manager) Leftovers() ([]Leftover, error) {
	entries, err := os.ReadDir(m.NamespaceDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read namespace: %w", err)
	}

	var out []Leftover
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), DirPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Leftover{
			Path:    filepath.Join(m.NamespaceDir(), e.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.Before(out[j].ModTime) })
	return out, nil
}

// Prune removes leftovers last modified more than olderThan ago and returns
// the removed paths. Failures are joined into the returned error; removal
// continues past them.
func (m *Manager) Prune(olderThan time.Duration) ([]string, error) {
	leftovers, err := m.Leftovers()
	if err != nil {
		return nil, err
	}

	cutoff := m.now().Add(-olderThan)

	var (
		removed []string
		errs    []error
	)
	for _, l := range leftovers {
		if l.ModTime.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(l.Path); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", l.Path, err))
			continue
		}
		m.log.Info().Str("path", l.Path).Msg("pruned leftover clone")
		removed = append(removed, l.Path)
	}

	if len(removed) > 0 {
		_ = os.Remove(m.NamespaceDir())
	}

	return removed, errors.Join(errs...)
}
