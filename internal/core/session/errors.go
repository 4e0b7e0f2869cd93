package session

import (
	"errors"
	"fmt"
)

var (
	// ErrAcquisition matches any *AcquisitionError via errors.Is.
	ErrAcquisition = errors.New("cannot acquire working directory")
	// ErrFetch matches any *FetchError via errors.Is.
	ErrFetch = errors.New("cannot fetch repository")
	// ErrInterrupted is returned by Scope when a signal ended the session.
	ErrInterrupted = errors.New("interrupted")
)

// AcquisitionError reports that a working directory could not be set up:
// the temporary directory could not be created, or a local path is unusable.
type AcquisitionError struct {
	Path string
	Err  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Path, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

func (e *AcquisitionError) Is(target error) bool { return target == ErrAcquisition }

// FetchError reports a failed clone. The temporary directory has already
// been released when this is returned.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// CleanupWarning describes a temporary directory that could not be removed.
// It is reported to the user and never returned as an error.
type CleanupWarning struct {
	Path string
	Err  error
}

func (w *CleanupWarning) Error() string {
	return fmt.Sprintf("could not remove temporary directory %s: %v", w.Path, w.Err)
}

func (w *CleanupWarning) Unwrap() error { return w.Err }
