// Package ui renders lantern's startup sequence as a Bubble Tea program.
//
// The model never drives the sequence itself. It reads snapshots from the
// sequencer whenever one of its change signals fires (and on a short tick as
// a backstop) and renders one of three screens:
//
//   - cold start: status message, waiting spinner and the simulated progress
//     bar; a failed attempt shows the failure message and enables "r"
//   - intro: the current animation frame
//   - content: the hero image slot (URL or placeholder) and a banner
//
// "T" cycles the theme and persists it to the preferences file, "l" toggles
// a pane with the tail of the log file, "h" or "?" opens the key help, and
// "e" or ctrl+c quits.
package ui
