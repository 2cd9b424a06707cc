package sequence

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/five82/lantern/internal/coldstart"
	"github.com/five82/lantern/internal/state"
)

// Phase is the reveal step. Phases only move forward.
type Phase int

const (
	AwaitingColdStart Phase = iota
	PlayingIntro
	ContentShown
)

func (p Phase) String() string {
	switch p {
	case AwaitingColdStart:
		return "awaiting_cold_start"
	case PlayingIntro:
		return "playing_intro"
	case ContentShown:
		return "content_shown"
	default:
		return "unknown"
	}
}

// ErrAlreadyRunning is returned when Run is called a second time.
var ErrAlreadyRunning = errors.New("sequence already running")

// ColdStart is the cold start gate the sequencer waits on.
type ColdStart interface {
	Start(ctx context.Context) error
	Retry() error
	Snapshot() coldstart.State
	Ready() <-chan struct{}
}

// Intro is the one-shot animation stage.
type Intro interface {
	Play(ctx context.Context)
	Done() <-chan struct{}
}

// Prefetcher loads the hero image in the background.
type Prefetcher interface {
	Start(ctx context.Context)
}

// Snapshot is everything a renderer needs at one instant.
type Snapshot struct {
	Phase     Phase
	ColdStart coldstart.State
	Image     state.ImageSnapshot
}

// Sequencer orders the startup reveal: cold start, then intro, then content.
// The hero image prefetch runs alongside and never gates a transition.
type Sequencer struct {
	gate   ColdStart
	intro  Intro
	images *state.ImageStore
	logger *slog.Logger

	running atomic.Bool

	mu      sync.RWMutex
	phase   Phase
	changed chan struct{}
}

// New builds a sequencer and starts the image prefetch immediately.
func New(ctx context.Context, gate ColdStart, intro Intro, prefetcher Prefetcher, images *state.ImageStore, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Sequencer{
		gate:    gate,
		intro:   intro,
		images:  images,
		logger:  logger.With("component", "sequence"),
		phase:   AwaitingColdStart,
		changed: make(chan struct{}, 1),
	}
	if prefetcher != nil {
		prefetcher.Start(ctx)
	}
	return s
}

// Run drives the reveal until content is shown or ctx is cancelled. Failed
// cold start attempts keep the sequence waiting until a Retry succeeds.
func (s *Sequencer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := s.gate.Start(ctx); err != nil && !errors.Is(err, coldstart.ErrAlreadyReady) {
		return err
	}
	select {
	case <-s.gate.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.advance(PlayingIntro)

	s.intro.Play(ctx)
	select {
	case <-s.intro.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.advance(ContentShown)
	return nil
}

// Retry asks the gate for a fresh cold start attempt.
func (s *Sequencer) Retry() error {
	if s.Phase() != AwaitingColdStart {
		return coldstart.ErrAlreadyReady
	}
	return s.gate.Retry()
}

// Phase returns the current reveal phase.
func (s *Sequencer) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Snapshot returns the phase together with the gate and image state.
func (s *Sequencer) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     s.Phase(),
		ColdStart: s.gate.Snapshot(),
	}
	if s.images != nil {
		snap.Image = s.images.Snapshot()
	}
	return snap
}

// Changed receives a value after every phase transition.
func (s *Sequencer) Changed() <-chan struct{} {
	return s.changed
}

func (s *Sequencer) advance(to Phase) {
	s.mu.Lock()
	if to <= s.phase {
		s.mu.Unlock()
		return
	}
	from := s.phase
	s.phase = to
	s.mu.Unlock()

	s.logger.Info("reveal phase changed", "from", from, "to", to)
	select {
	case s.changed <- struct{}{}:
	default:
	}
}
