// Package session resolves a repository reference to a working directory
// and owns the lifecycle of any temporary clone made for it.
package session

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// Kind classifies a repository reference.
type Kind int

const (
	// KindCurrent means no reference was given; the current directory is used.
	KindCurrent Kind = iota
	// KindLocal is a filesystem path to an existing working directory.
	KindLocal
	// KindRemote is a URL that has to be cloned first.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindCurrent:
		return "current"
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

var (
	remotePrefixes = []string{"http://", "https://", "ssh://", "git://", "file://"}

	// scpLike matches the short ssh form, e.g. git@github.com:owner/repo.git.
	scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[^/\\]`)
)

// Reference is the user-supplied repository argument, classified once.
type Reference struct {
	Raw  string
	Kind Kind
}

// ParseReference classifies raw. Surrounding whitespace is ignored.
func ParseReference(raw string) Reference {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{Kind: KindCurrent}
	}

	lower := strings.ToLower(raw)
	for _, p := range remotePrefixes {
		if strings.HasPrefix(lower, p) {
			return Reference{Raw: raw, Kind: KindRemote}
		}
	}
	if scpLike.MatchString(raw) {
		return Reference{Raw: raw, Kind: KindRemote}
	}

	return Reference{Raw: raw, Kind: KindLocal}
}

// IsRemote reports whether the reference must be cloned.
func (r Reference) IsRemote() bool { return r.Kind == KindRemote }

// Session binds a Reference to a working directory. Fields are fixed once
// Resolve returns it.
type Session struct {
	Reference        Reference
	WorkingDirectory string
	IsTemporary      bool
	Created          time.Time

	release sync.Once
}
