package coldstart

import (
	"time"

	"github.com/google/uuid"

	"github.com/five82/lantern/internal/cms"
)

// Status is the user-facing step of a cold start attempt.
type Status int

const (
	StatusInitializing Status = iota
	StatusWakingUp
	StatusEstablishing
	StatusAlmostReady
	StatusReady
	StatusFailed
)

// FailureMessage is shown when an attempt fails, whatever the cause.
const FailureMessage = "Whoops! Looks like the server took too long to respond. Please try again."

// ProgressCap is the highest simulated progress shown before the ping succeeds.
const ProgressCap = 95.0

// Message returns the text shown for the status.
func (s Status) Message() string {
	switch s {
	case StatusInitializing:
		return "Initializing connection..."
	case StatusWakingUp:
		return "Waking up server..."
	case StatusEstablishing:
		return "Establishing connection..."
	case StatusAlmostReady:
		return "Almost ready, grabbing the last bit of things..."
	case StatusReady:
		return "Ready!"
	case StatusFailed:
		return FailureMessage
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusWakingUp:
		return "waking_up"
	case StatusEstablishing:
		return "establishing"
	case StatusAlmostReady:
		return "almost_ready"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// statusFor maps elapsed attempt time onto the waiting steps.
func statusFor(elapsed time.Duration) Status {
	switch {
	case elapsed < time.Second:
		return StatusInitializing
	case elapsed < 2*time.Second:
		return StatusWakingUp
	case elapsed < 3*time.Second:
		return StatusEstablishing
	default:
		return StatusAlmostReady
	}
}

// estimateProgress is elapsed/expected as a percentage, capped at ProgressCap.
func estimateProgress(elapsed, expected time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if expected <= 0 {
		return ProgressCap
	}
	return min(float64(elapsed)/float64(expected)*100, ProgressCap)
}

// Attempt identifies one cold start try.
type Attempt struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// State is the gate's current state. The concrete type is one of Idle,
// Pinging, Succeeded or Failed; each carries only the fields valid for it.
type State interface {
	Progress() float64
	Status() Status
	Message() string
	Errored() bool
	isState()
}

// Idle is the state before the first attempt starts.
type Idle struct{}

func (Idle) Progress() float64 { return 0 }
func (Idle) Status() Status    { return StatusInitializing }
func (Idle) Message() string   { return StatusInitializing.Message() }
func (Idle) Errored() bool     { return false }
func (Idle) isState()          {}

// Pinging is a live attempt waiting on its ping.
type Pinging struct {
	Attempt Attempt
	Elapsed time.Duration
	Percent float64
}

func (p Pinging) Progress() float64 { return p.Percent }
func (p Pinging) Status() Status    { return statusFor(p.Elapsed) }
func (p Pinging) Message() string   { return p.Status().Message() }
func (Pinging) Errored() bool       { return false }
func (Pinging) isState()            {}

// Succeeded is an attempt whose ping returned 200. Completed turns true once
// the settle delay has passed.
type Succeeded struct {
	Attempt      Attempt
	Ping         cms.PingResult
	ResponseTime time.Duration
	Completed    bool
}

func (Succeeded) Progress() float64 { return 100 }
func (Succeeded) Status() Status    { return StatusReady }
func (Succeeded) Message() string   { return StatusReady.Message() }
func (Succeeded) Errored() bool     { return false }
func (Succeeded) isState()          {}

// Failed is an attempt whose ping errored or returned a non-200 status.
type Failed struct {
	Attempt Attempt
	Err     error
}

func (Failed) Progress() float64 { return 0 }
func (Failed) Status() Status    { return StatusFailed }
func (Failed) Message() string   { return FailureMessage }
func (Failed) Errored() bool     { return true }
func (Failed) isState()          {}
