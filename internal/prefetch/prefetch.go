// Package prefetch fetches the hero image URL in the background so it is ready
// by the time content is shown.
package prefetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/lantern/internal/cms"
	"github.com/five82/lantern/internal/state"
)

// Loader fills an ImageStore from the CMS media listing.
type Loader struct {
	lister  cms.FileLister
	resolve func(string) string
	store   *state.ImageStore
	logger  *slog.Logger
}

// NewLoader builds a Loader. resolve may be nil, in which case URLs are
// stored as returned by the CMS.
func NewLoader(lister cms.FileLister, resolve func(string) string, store *state.ImageStore, logger *slog.Logger) *Loader {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		lister:  lister,
		resolve: resolve,
		store:   store,
		logger:  logger.With("component", "prefetch"),
	}
}

// Load runs the prefetch once. Failures degrade to an empty image slot and
// are logged, never returned; the only error is a second call.
func (l *Loader) Load(ctx context.Context) error {
	if err := l.store.Begin(); err != nil {
		return fmt.Errorf("begin prefetch: %w", err)
	}

	url, outcome, err := l.fetch(ctx)
	switch outcome {
	case state.OutcomeLoaded:
		l.logger.Debug("hero image ready", "url", url)
	case state.OutcomeEmpty:
		l.logger.Info("no hero image in media library")
	case state.OutcomeFailed:
		l.logger.Warn("hero image prefetch failed", "error", err)
	}
	if finishErr := l.store.Finish(url, outcome, err); finishErr != nil {
		return fmt.Errorf("finish prefetch: %w", finishErr)
	}
	return nil
}

// Start runs Load on its own goroutine and returns immediately.
func (l *Loader) Start(ctx context.Context) {
	go func() {
		if err := l.Load(ctx); err != nil {
			l.logger.Error("prefetch misuse", "error", err)
		}
	}()
}

func (l *Loader) fetch(ctx context.Context) (string, state.Outcome, error) {
	files, err := l.lister.ListFiles(ctx)
	if err != nil {
		return "", state.OutcomeFailed, fmt.Errorf("list files: %w", err)
	}
	if len(files) == 0 {
		return "", state.OutcomeEmpty, nil
	}
	raw, ok := files[0].LargeURL()
	if !ok {
		return "", state.OutcomeEmpty, nil
	}
	return l.resolve(raw), state.OutcomeLoaded, nil
}
