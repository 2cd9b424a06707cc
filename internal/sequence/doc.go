// Package sequence orders lantern's startup reveal.
//
// The Sequencer moves through three phases and never back:
//
//	AwaitingColdStart ──gate Ready──> PlayingIntro ──intro Done──> ContentShown
//
// A failed cold start keeps the sequence in AwaitingColdStart until the user
// retries and a later attempt succeeds. The hero image prefetch is started
// when the Sequencer is built and runs independently of the phases.
package sequence
