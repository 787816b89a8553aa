package ui

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Rice", 10, "Rice"},
		{"A very long product name", 10, "A very lo…"},
		{"ab", 2, "ab"},
		{"Feijão carioca tipo 1", 6, "Feijã…"},
		{"Açúcar refinado união", 7, "Açúcar…"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncate_NeverSplitsARune(t *testing.T) {
	for limit := 2; limit <= 11; limit++ {
		got := truncate("Feijão carioca tipo 1", limit)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(limit=%d) produced invalid UTF-8: %q", limit, got)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Name", 8); got != "Name    " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("LongLabel", 4); got != "LongLabel" {
		t.Fatalf("padRight must not cut: %q", got)
	}
	// Width is measured in runes, so accented names align with ASCII ones.
	if got := padRight("Feijão", 8); got != "Feijão  " {
		t.Fatalf("padRight(%q, 8) = %q, want two trailing spaces", "Feijão", got)
	}
	if utf8.RuneCountInString(padRight("Açúcar", 10)) != utf8.RuneCountInString(padRight("Rice", 10)) {
		t.Fatalf("padded widths differ between accented and ASCII input")
	}
}
