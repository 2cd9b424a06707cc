package coldstart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/lantern/internal/cms"
)

var (
	// ErrNotRetryable is returned by Retry when the current attempt has not failed.
	ErrNotRetryable = errors.New("cold start: retry is only allowed after a failed attempt")
	// ErrAlreadyReady is returned once an attempt has succeeded.
	ErrAlreadyReady = errors.New("cold start: server already ready")
)

const (
	DefaultExpectedResponse = 60 * time.Second
	DefaultTickEvery        = 100 * time.Millisecond
	DefaultSettleDelay      = 800 * time.Millisecond
)

// Options tune the gate. Zero values use the defaults.
type Options struct {
	ExpectedResponse time.Duration
	TickEvery        time.Duration
	SettleDelay      time.Duration
	Logger           *slog.Logger
}

// Gate runs cold start attempts: a simulated progress ticker racing a single
// health check. At most one attempt is live; starting a new one supersedes the
// previous attempt and every late callback from it is ignored.
type Gate struct {
	pinger cms.Pinger
	opts   Options
	logger *slog.Logger

	// startMu serializes Start and Retry so supersession is atomic.
	startMu sync.Mutex

	mu      sync.Mutex
	parent  context.Context
	current *attempt
	state   State

	changed   chan struct{}
	ready     chan struct{}
	readyOnce sync.Once
}

type attempt struct {
	Attempt
	ctx      context.Context
	cancel   context.CancelFunc
	tickDone chan struct{}
}

// New builds an idle gate.
func New(pinger cms.Pinger, opts Options) *Gate {
	if opts.ExpectedResponse <= 0 {
		opts.ExpectedResponse = DefaultExpectedResponse
	}
	if opts.TickEvery <= 0 {
		opts.TickEvery = DefaultTickEvery
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{
		pinger:  pinger,
		opts:    opts,
		logger:  logger.With("component", "coldstart"),
		parent:  context.Background(),
		state:   Idle{},
		changed: make(chan struct{}, 1),
		ready:   make(chan struct{}),
	}
}

// Start begins a new attempt, superseding any live one. The previous
// attempt's ticker has exited by the time the new ticker starts.
func (g *Gate) Start(ctx context.Context) error {
	g.startMu.Lock()
	defer g.startMu.Unlock()
	return g.start(ctx)
}

// Retry starts a fresh attempt with the same configuration. It is only
// allowed while the current attempt is Failed.
func (g *Gate) Retry() error {
	g.startMu.Lock()
	defer g.startMu.Unlock()

	g.mu.Lock()
	st, parent := g.state, g.parent
	g.mu.Unlock()

	switch st.(type) {
	case Failed:
		return g.start(parent)
	case Succeeded:
		return ErrAlreadyReady
	default:
		return ErrNotRetryable
	}
}

// Snapshot returns the current state.
func (g *Gate) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Changed receives a value after state changes. Notifications coalesce;
// readers should call Snapshot after each receive.
func (g *Gate) Changed() <-chan struct{} {
	return g.changed
}

// Ready is closed once an attempt succeeds and its settle delay has passed.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// Close stops the live attempt, if any, and waits for its ticker to exit.
func (g *Gate) Close() {
	g.startMu.Lock()
	defer g.startMu.Unlock()

	g.mu.Lock()
	prev := g.current
	g.current = nil
	g.mu.Unlock()
	retire(prev)
}

func (g *Gate) start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	g.mu.Lock()
	if _, ok := g.state.(Succeeded); ok {
		g.mu.Unlock()
		return ErrAlreadyReady
	}
	prev := g.current
	g.current = nil
	g.mu.Unlock()

	retire(prev)

	attemptCtx, cancel := context.WithCancel(ctx)
	a := &attempt{
		Attempt:  Attempt{ID: uuid.New(), StartedAt: time.Now()},
		ctx:      attemptCtx,
		cancel:   cancel,
		tickDone: make(chan struct{}),
	}

	g.mu.Lock()
	g.parent = ctx
	g.current = a
	g.setState(Pinging{Attempt: a.Attempt})
	g.mu.Unlock()
	g.notify()

	g.logger.Info("cold start attempt started",
		"attempt", a.ID,
		"expected_response", g.opts.ExpectedResponse,
		"superseded", prev != nil,
	)

	go g.tick(a)
	go g.ping(a)
	return nil
}

// retire cancels an attempt's token and waits for its ticker to exit.
func retire(a *attempt) {
	if a == nil {
		return
	}
	a.cancel()
	<-a.tickDone
}

func (g *Gate) tick(a *attempt) {
	defer close(a.tickDone)

	ticker := time.NewTicker(g.opts.TickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			if !g.advance(a) {
				return
			}
		}
	}
}

// advance applies one progress tick. It reports false once the attempt is no
// longer live so the ticker can exit.
func (g *Gate) advance(a *attempt) bool {
	g.mu.Lock()
	if g.current != a {
		g.mu.Unlock()
		return false
	}
	cur, ok := g.state.(Pinging)
	if !ok {
		g.mu.Unlock()
		return false
	}
	elapsed := time.Since(a.StartedAt)
	g.setState(Pinging{
		Attempt: a.Attempt,
		Elapsed: elapsed,
		Percent: max(cur.Percent, estimateProgress(elapsed, g.opts.ExpectedResponse)),
	})
	g.mu.Unlock()
	g.notify()
	return true
}

func (g *Gate) ping(a *attempt) {
	res, err := g.pinger.Ping(a.ctx)
	if err == nil && !res.OK() {
		err = fmt.Errorf("server responded with status %d", res.StatusCode)
	}

	g.mu.Lock()
	if g.current != a {
		g.mu.Unlock()
		g.logger.Debug("ignoring superseded ping", "attempt", a.ID)
		return
	}
	if err != nil && a.ctx.Err() != nil {
		// Shutdown, not a failed health check.
		g.mu.Unlock()
		g.logger.Debug("cold start attempt cancelled", "attempt", a.ID)
		return
	}
	a.cancel()
	responseTime := time.Since(a.StartedAt)
	if err != nil {
		g.setState(Failed{Attempt: a.Attempt, Err: err})
		g.mu.Unlock()
		g.notify()
		g.logger.Warn("cold start attempt failed",
			"attempt", a.ID,
			"error", err,
			"elapsed", responseTime,
		)
		return
	}
	g.setState(Succeeded{Attempt: a.Attempt, Ping: res, ResponseTime: responseTime})
	g.mu.Unlock()
	g.notify()
	g.logger.Info("cold start attempt succeeded",
		"attempt", a.ID,
		"response_time", responseTime,
	)

	time.AfterFunc(g.opts.SettleDelay, func() { g.complete(a) })
}

func (g *Gate) complete(a *attempt) {
	g.mu.Lock()
	s, ok := g.state.(Succeeded)
	if g.current != a || !ok {
		g.mu.Unlock()
		return
	}
	s.Completed = true
	g.setState(s)
	g.mu.Unlock()

	g.readyOnce.Do(func() { close(g.ready) })
	g.notify()
}

// setState must be called with mu held.
func (g *Gate) setState(s State) {
	g.state = s
}

func (g *Gate) notify() {
	select {
	case g.changed <- struct{}{}:
	default:
	}
}
