// Package intro plays the one-shot intro animation shown between a successful
// cold start and the content screen.
//
// A Player owns the asset and reports its native "finished" signal. Stage
// wraps a Player so that playback starts once and completion is signalled
// once, through both Done and the OnComplete callback. An optional timeout
// completes the stage if the player never reports back; TimedOut tells the
// two paths apart.
//
// The bundled asset is a text frame animation embedded from frames.txt and
// played by FramePlayer without looping.
package intro
