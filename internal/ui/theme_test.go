package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" {
		t.Fatalf("ThemeNames = %v, want Nightfox first of 3", names)
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames returned the internal slice")
	}
}

func TestNextThemeCycles(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Dracula", "Nightfox"},
		{"", "Nightfox"},
	}
	for _, tc := range tests {
		if got := NextTheme(tc.current); got != tc.want {
			t.Errorf("NextTheme(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope).Name = %q, want Nightfox", got)
	}
}

func TestThemesDefineEveryStatus(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range []string{statusOK, statusDue, statusOverdue, statusExpired, statusMissing, statusDone} {
			if th.StatusColors[status] == "" {
				t.Errorf("theme %s has no color for %q", name, status)
			}
		}
	}
}

func TestStatusStyleFallsBackToMuted(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	got := styles.StatusStyle("unknown").GetBackground()
	if got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(unknown) background = %v, want %v", got, th.Muted)
	}
	got = styles.StatusStyle(statusExpired).GetBackground()
	if got != lipgloss.Color(th.StatusColors[statusExpired]) {
		t.Fatalf("StatusStyle(expired) background = %v, want %v", got, th.StatusColors[statusExpired])
	}
}
