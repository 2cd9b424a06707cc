package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Slate" {
		t.Fatalf("ThemeNames()[0] = %q, want Slate", names[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Kanagawa"); got != "Slate" {
		t.Fatalf("NextTheme(Kanagawa) = %q, want Slate", got)
	}
	if got := NextTheme("Unknown"); got != "Slate" {
		t.Fatalf("NextTheme(Unknown) = %q, want Slate", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, th.Name)
		}
		if th.GradientFrom == "" || th.GradientTo == "" {
			t.Fatalf("theme %s has no progress gradient", name)
		}
	}

	if unknown := GetTheme("Unknown"); unknown.Name != "Slate" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Slate (fallback)", unknown.Name)
	}
}
