// Package app is lantern's composition root.
//
// Run loads and validates the configuration (a missing base URL or token
// stops the process before any network call), builds the logger, CMS client,
// image store, prefetcher, cold start gate, intro stage and sequencer, and
// then hands over to one of two front ends:
//
//   - the Bubble Tea UI when stdout is a terminal; the sequence runs on its
//     own goroutine and the UI renders its snapshots
//   - the headless reporter otherwise (or with -headless); progress is
//     logged to stderr and a failed cold start ends the run with
//     ErrColdStartFailed, since nobody is there to retry
//
//	Run()
//	  ├─> config.Load() + Validate()
//	  ├─> logging.New()           file in TUI mode, stderr headless
//	  ├─> cms.NewClient()
//	  ├─> prefetch.NewLoader()    started by sequence.New
//	  ├─> coldstart.New()
//	  ├─> intro.NewStage(intro.Bundled())
//	  ├─> sequence.New()
//	  └─> ui.Run() | runHeadless()
package app
