package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/lantern/internal/coldstart"
	"github.com/five82/lantern/internal/sequence"
	"github.com/five82/lantern/internal/state"
)

const (
	reportEvery = time.Second
	imageWait   = 5 * time.Second
)

// ErrColdStartFailed is returned by a headless run whose cold start attempt
// failed. There is no one to press retry.
var ErrColdStartFailed = errors.New("cold start failed")

type headlessDeps struct {
	seq    *sequence.Sequencer
	gate   *coldstart.Gate
	images *state.ImageStore
	logger *slog.Logger
	out    io.Writer
	every  time.Duration
}

// runHeadless drives the sequence without a TUI, logging status changes as
// they happen and progress at a fixed cadence.
func runHeadless(ctx context.Context, d headlessDeps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	every := d.every
	if every <= 0 {
		every = reportEvery
	}
	logger := d.logger.With("component", "headless")

	errCh := make(chan error, 1)
	go func() { errCh <- d.seq.Run(ctx) }()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var lastStatus coldstart.Status = -1
	lastPhase := d.seq.Phase()
	check := func(verbose bool) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cs := d.gate.Snapshot()
		if failed, ok := cs.(coldstart.Failed); ok {
			logger.Error("cold start failed", "attempt", failed.Attempt.ID, "error", failed.Err)
			return fmt.Errorf("%w: %w", ErrColdStartFailed, failed.Err)
		}
		if cs.Status() != lastStatus || verbose {
			lastStatus = cs.Status()
			if d.seq.Phase() == sequence.AwaitingColdStart {
				logger.Info("cold start progress",
					"status", cs.Status(),
					"progress", fmt.Sprintf("%.0f%%", cs.Progress()),
					"message", cs.Message(),
				)
			}
		}
		if phase := d.seq.Phase(); phase != lastPhase {
			lastPhase = phase
			logger.Info("reveal phase", "phase", phase)
		}
		return nil
	}

	for {
		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
			return d.reportContent(ctx, logger)
		case <-d.gate.Changed():
			if err := check(false); err != nil {
				return err
			}
		case <-d.seq.Changed():
			if err := check(false); err != nil {
				return err
			}
		case <-ticker.C:
			if err := check(true); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// reportContent prints what the content screen shows. It gives the prefetch
// a short grace period; an unsettled prefetch reports the placeholder.
func (d headlessDeps) reportContent(ctx context.Context, logger *slog.Logger) error {
	timer := time.NewTimer(imageWait)
	defer timer.Stop()
	select {
	case <-d.images.Done():
	case <-timer.C:
		logger.Warn("hero image still loading; showing placeholder", "waited", imageWait)
	case <-ctx.Done():
		return ctx.Err()
	}

	img := d.images.Snapshot()
	logger.Info("content ready", "hero_outcome", img.Outcome, "hero_url", img.URL)

	hero := "(placeholder)"
	if img.HasURL() {
		hero = img.URL
	}
	if succeeded, ok := d.gate.Snapshot().(coldstart.Succeeded); ok {
		_, _ = fmt.Fprintf(d.out, "ready in %s\n", succeeded.ResponseTime.Round(time.Millisecond))
	}
	_, err := fmt.Fprintf(d.out, "hero: %s\n", hero)
	return err
}
