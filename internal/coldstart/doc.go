// Package coldstart detects whether the CMS has woken up from an idle
// scale-down before lantern shows any content.
//
// # Overview
//
// A Gate runs attempts. Each attempt starts a 100ms ticker that turns elapsed
// time into a simulated progress estimate and a status message, and issues
// exactly one ping. The ping always decides the terminal state; the ticker
// never does.
//
//	Start() ──> Pinging ──ping 200──> Succeeded ──800ms──> Succeeded{Completed}
//	               │                                         (Ready() closed)
//	               └──error / non-200──> Failed ──Retry()──> Pinging (new attempt)
//
// # Progress
//
// progress = min(elapsed / expected * 100, 95) while pinging, 100 after
// success, 0 after failure. Status steps by elapsed time:
//
//	[0s, 1s)  Initializing connection...
//	[1s, 2s)  Waking up server...
//	[2s, 3s)  Establishing connection...
//	[3s, ∞)   Almost ready, grabbing the last bit of things...
//
// # Supersession
//
// Every attempt owns a context and an identity. Tick and ping continuations
// check that their attempt is still current under the gate mutex before they
// write; late callbacks from a superseded attempt are dropped. Start cancels
// the previous attempt and waits for its ticker goroutine to exit before the
// new ticker starts.
//
// Retry is only valid in the Failed state. There is no automatic retry.
//
// # Observing
//
// Snapshot returns the current State (Idle, Pinging, Succeeded or Failed).
// Changed is a one-slot coalescing notification channel so writers never
// block on slow readers. Ready closes once, after the settle delay of the
// successful attempt.
package coldstart
