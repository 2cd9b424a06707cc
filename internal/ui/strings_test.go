package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "12345", 5, "12345"},
		{"ascii", "abcdefghij", 5, "abcd…"},
		{"multibyte kept whole", "café au lait", 5, "café…"},
		{"cut before multibyte", strings.Repeat("a", 18) + "ézzzzz", 19, strings.Repeat("a", 18) + "…"},
		{"no limit", "anything", 0, "anything"},
		{"tiny limit", "ééé", 1, "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.value, tt.limit)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) produced invalid UTF-8", tt.value, tt.limit)
			}
		})
	}
}

func TestRenderLogs_NonASCIILineStaysValidUTF8(t *testing.T) {
	m := newTestModel(t, newFakeSequence(failedSnapshot()))
	m.width = 28
	m.logPath = "lantern.log"
	m.logLines = []string{strings.Repeat("a", 18) + "ézzzzz" + strings.Repeat("é", 10)}

	out := m.renderLogs()
	if !utf8.ValidString(out) {
		t.Fatalf("log pane contains invalid UTF-8: %q", out)
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("long line not truncated: %q", out)
	}
}
