package intro

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// StageOptions configure a Stage.
type StageOptions struct {
	// Timeout completes the stage if the player never reports completion.
	// Zero waits forever.
	Timeout time.Duration
	// OnComplete runs exactly once when the stage finishes.
	OnComplete func()
	Logger     *slog.Logger
}

// Stage plays an intro animation once and signals completion once.
type Stage struct {
	player     Player
	timeout    time.Duration
	onComplete func()
	logger     *slog.Logger

	playOnce sync.Once
	doneOnce sync.Once
	done     chan struct{}
	timedOut atomic.Bool
}

// NewStage wraps a player.
func NewStage(player Player, opts StageOptions) *Stage {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stage{
		player:     player,
		timeout:    opts.Timeout,
		onComplete: opts.OnComplete,
		logger:     logger.With("component", "intro"),
		done:       make(chan struct{}),
	}
}

// Play starts the animation. Calls after the first are no-ops.
func (s *Stage) Play(ctx context.Context) {
	s.playOnce.Do(func() {
		s.logger.Debug("intro started", "timeout", s.timeout)
		s.player.Play(ctx, func() { s.finish(false) })
		if s.timeout > 0 {
			go s.watchdog(ctx)
		}
	})
}

// Done is closed when the stage finishes.
func (s *Stage) Done() <-chan struct{} {
	return s.done
}

// TimedOut reports whether the stage was completed by the fallback timeout
// rather than the player.
func (s *Stage) TimedOut() bool {
	return s.timedOut.Load()
}

func (s *Stage) watchdog(ctx context.Context) {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		s.finish(true)
	case <-s.done:
	case <-ctx.Done():
	}
}

func (s *Stage) finish(timedOut bool) {
	s.doneOnce.Do(func() {
		s.timedOut.Store(timedOut)
		if timedOut {
			s.logger.Warn("intro animation never reported completion; continuing", "timeout", s.timeout)
		} else {
			s.logger.Debug("intro finished")
		}
		close(s.done)
		if s.onComplete != nil {
			s.onComplete()
		}
	})
}
