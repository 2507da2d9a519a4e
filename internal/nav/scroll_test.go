package nav

import (
	"strings"
	"testing"
)

func TestIntercepts(t *testing.T) {
	cases := map[string]bool{
		"#messages":           true,
		"#":                   false,
		"/about":              false,
		"https://example.com": false,
		"":                    false,
	}
	for href, want := range cases {
		if got := Intercepts(href); got != want {
			t.Errorf("Intercepts(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestScrollTarget(t *testing.T) {
	layout := LayoutMap{"messages": 1200, "home": 0}

	top, ok := ScrollTarget("#messages", layout, DefaultHeaderOffset)
	if !ok || top != 1120 {
		t.Errorf("expected 1120, got %d ok=%v", top, ok)
	}

	top, ok = ScrollTarget("#home", layout, DefaultHeaderOffset)
	if !ok || top != -80 {
		t.Errorf("expected -80 for top section, got %d ok=%v", top, ok)
	}

	if _, ok := ScrollTarget("#missing", layout, DefaultHeaderOffset); ok {
		t.Error("expected no target for a missing element")
	}
	if _, ok := ScrollTarget("#", layout, DefaultHeaderOffset); ok {
		t.Error("bare # must not scroll")
	}
}

func TestScript_EmbedsOffset(t *testing.T) {
	js, err := Script(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(js), "var headerOffset = 64;") {
		t.Errorf("expected offset in script, got %s", js)
	}
	if !strings.Contains(string(js), `href === "#"`) {
		t.Error("expected bare # guard in script")
	}
}
