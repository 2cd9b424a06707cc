package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/five82/lantern/internal/cms"
	"github.com/five82/lantern/internal/coldstart"
	"github.com/five82/lantern/internal/config"
	"github.com/five82/lantern/internal/intro"
	"github.com/five82/lantern/internal/logging"
	"github.com/five82/lantern/internal/prefetch"
	"github.com/five82/lantern/internal/prefs"
	"github.com/five82/lantern/internal/sequence"
	"github.com/five82/lantern/internal/state"
	"github.com/five82/lantern/internal/ui"
)

// Options configure the lantern application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lantern/prefs.toml
	// Headless runs without the TUI and reports progress as log lines. It is
	// implied when stdout is not a terminal.
	Headless bool
	// Stdout receives the headless summary; nil uses os.Stdout.
	Stdout io.Writer
	// LogOutput overrides the log destination; nil picks the log file in TUI
	// mode and stderr in headless mode.
	LogOutput io.Writer
}

// Run boots lantern until the startup sequence finishes (headless), the user
// quits (TUI), or ctx is cancelled. Configuration problems are returned
// before any network call is made.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	headless := opts.Headless || !stdoutIsTerminal()

	logger, closeLog, err := buildLogger(cfg, headless, opts.LogOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := cms.NewClient(cfg.APIURL, cfg.APIToken)
	if err != nil {
		return fmt.Errorf("init cms client: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	images := state.NewImageStore()
	loader := prefetch.NewLoader(client, client.ResolveURL, images, logger)

	gate := coldstart.New(client, coldstart.Options{
		ExpectedResponse: cfg.ExpectedResponse,
		Logger:           logger,
	})
	defer gate.Close()

	player := intro.Bundled()
	stage := intro.NewStage(player, intro.StageOptions{
		Timeout: cfg.IntroTimeout,
		Logger:  logger,
	})

	seq := sequence.New(ctx, gate, stage, loader, images, logger)
	logger.Info("lantern starting",
		"api_url", cfg.APIURL,
		"expected_response", cfg.ExpectedResponse,
		"headless", headless,
	)

	if headless {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		err := runHeadless(ctx, headlessDeps{
			seq:    seq,
			gate:   gate,
			images: images,
			logger: logger,
			out:    out,
		})
		return ignoreCancel(err)
	}

	go func() {
		if err := seq.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("startup sequence stopped", "error", err)
		}
	}()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed; using defaults", "error", err)
	}

	logPath := ""
	if opts.LogOutput == nil {
		logPath = cfg.LogPath()
	}

	return ignoreCancel(ui.Run(ui.Options{
		Context:   ctx,
		Sequence:  seq,
		Intro:     player,
		Signals:   []<-chan struct{}{gate.Changed()},
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   logPath,
		Logger:    logger,
	}))
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// buildLogger writes to the log file in TUI mode so records never tear the
// screen, and to stderr in headless mode.
func buildLogger(cfg config.Config, headless bool, override io.Writer) (*slog.Logger, func(), error) {
	out := override
	closeFn := func() {}
	if out == nil {
		if headless {
			out = os.Stderr
		} else {
			file, err := logging.OpenFile(cfg.LogPath())
			if err != nil {
				return nil, nil, err
			}
			out = file
			closeFn = func() { _ = file.Close() }
		}
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: out})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closeFn, nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
