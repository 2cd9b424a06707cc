// Package logtail reads the end of lantern's log file for the in-app log
// pane. Tail keeps a ring of the last N lines so large files are scanned
// once in O(N) memory; Level classifies console-format lines for coloring.
package logtail
