package view

import (
	"regexp"
	"strings"
	"testing"

	tuitheme "github.com/bitemap/bitemap-cli/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar(ScreenFeed, false); !strings.Contains(got, "space play/pause") {
		t.Fatalf("unexpected feed toolbar: %q", got)
	}
	if got := Toolbar(ScreenSaved, false); !strings.Contains(got, "b unsave") {
		t.Fatalf("unexpected saved toolbar: %q", got)
	}
	if got := Toolbar(ScreenSearch, true); !strings.Contains(got, "type to search") {
		t.Fatalf("unexpected search-input toolbar: %q", got)
	}
}

func TestTabBar(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(TabBar(ScreenSaved, th))
	for _, want := range []string{"Feed", "Search", "Saved", "Orders", "Profile"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in tab bar, got %q", want, got)
		}
	}
}

func TestFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(Footer(ScreenFeed, 2, 8, "cache", th))
	for _, want := range []string{"screen feed", "3 of 8", "source cache"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}

	empty := stripANSI(Footer(ScreenFeed, 0, 0, "", th))
	if !strings.Contains(empty, "empty") {
		t.Fatalf("expected empty marker, got %q", empty)
	}
}

func TestMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(Message(false, false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle message: %q", got)
	}
	if got := stripANSI(Message(true, false, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading message: %q", got)
	}
	if got := stripANSI(Message(false, true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning message: %q", got)
	}
	if got := stripANSI(Message(false, false, "Liked", "", th)); !strings.Contains(got, "Liked") {
		t.Fatalf("unexpected status message: %q", got)
	}
}
