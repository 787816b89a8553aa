package ui

import "testing"

func TestGetTheme_UnknownNameFallsBack(t *testing.T) {
	theme := GetTheme("NoSuchTheme")
	if theme.Name != themes[0].Name {
		t.Fatalf("theme = %q, want default %q", theme.Name, themes[0].Name)
	}
}

func TestNextTheme_CyclesThroughAll(t *testing.T) {
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = NextTheme(name)
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycled %d themes, want %d", len(seen), len(themes))
	}
	if name != themes[0].Name {
		t.Fatalf("cycle did not wrap: ended at %q", name)
	}
}
