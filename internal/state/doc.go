// Package state holds the hero image slot shared across lantern.
//
// # Overview
//
// The ImageStore is created once at the composition root and handed to the
// prefetcher (the only writer) and the UI (readers). It lives for the whole
// process and is never torn down or reset.
//
//	Writer (prefetch.Loader):       Readers (UI, headless reporter):
//	┌──────────────────┐            ┌──────────────────┐
//	│ store.Begin()    │            │                  │
//	│ ListFiles()      │            │                  │
//	│ store.Finish()   │───────────→│ store.Snapshot() │
//	└──────────────────┘  (RWMutex) └──────────────────┘
//
// # Write Discipline
//
// The store accepts exactly two writes: Begin (loading=true) and one terminal
// Finish (loading=false plus an Outcome). Further writes return
// ErrAlreadyStarted or ErrAlreadySettled.
//
// # Outcomes
//
// Outcome separates "still pending" from "permanently no image":
//
//   - OutcomePending: Finish not called yet
//   - OutcomeLoaded: URL is set
//   - OutcomeEmpty: the listing had no usable large image
//   - OutcomeFailed: the listing request failed; Err holds the cause
//
// Renderers should show a placeholder whenever HasURL is false, whatever the
// Loading flag says. Done is closed on the terminal write for callers that
// want to wait.
package state
