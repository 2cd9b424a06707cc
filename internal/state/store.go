package state

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Outcome is the terminal result of the hero image prefetch.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeLoaded
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

var (
	// ErrAlreadyStarted is returned when Begin is called twice.
	ErrAlreadyStarted = errors.New("image prefetch already started")
	// ErrAlreadySettled is returned when the store is written after its terminal write.
	ErrAlreadySettled = errors.New("image prefetch already settled")
)

// ImageSnapshot is a point-in-time view of the hero image slot.
type ImageSnapshot struct {
	URL       string
	Loading   bool
	Outcome   Outcome
	Err       error
	UpdatedAt time.Time
}

// HasURL reports whether a hero image is available.
func (s ImageSnapshot) HasURL() bool {
	return s.URL != ""
}

// Settled reports whether the prefetch reached a terminal outcome.
func (s ImageSnapshot) Settled() bool {
	return s.Outcome != OutcomePending
}

// ImageStore holds the hero image slot shared between the prefetcher and the
// UI. It has a single writer and is written at most twice: Begin, then one
// terminal Finish. It is never reset.
type ImageStore struct {
	mu       sync.RWMutex
	snapshot ImageSnapshot
	began    bool
	done     chan struct{}
}

// NewImageStore returns an empty, pending store.
func NewImageStore() *ImageStore {
	return &ImageStore{done: make(chan struct{})}
}

// Begin marks the prefetch as in flight.
func (s *ImageStore) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.began {
		return ErrAlreadyStarted
	}
	s.began = true
	s.snapshot.Loading = true
	s.snapshot.UpdatedAt = time.Now()
	return nil
}

// Finish records the terminal outcome and clears the loading flag. The URL
// is kept only for OutcomeLoaded.
func (s *ImageStore) Finish(url string, outcome Outcome, err error) error {
	if outcome == OutcomePending {
		return fmt.Errorf("finish with pending outcome")
	}
	if outcome == OutcomeLoaded && url == "" {
		return fmt.Errorf("finish loaded without url")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Settled() {
		return ErrAlreadySettled
	}
	if outcome == OutcomeLoaded {
		s.snapshot.URL = url
	}
	s.snapshot.Loading = false
	s.snapshot.Outcome = outcome
	s.snapshot.Err = err
	s.snapshot.UpdatedAt = time.Now()
	close(s.done)
	return nil
}

// Snapshot returns a copy of the current slot.
func (s *ImageStore) Snapshot() ImageSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snapshot.Err)
	}
	return snap
}

// Done is closed once the prefetch settles.
func (s *ImageStore) Done() <-chan struct{} {
	return s.done
}
