package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Error("InitTheme(true) should disable colors")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("color accessors should be empty without colors")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}

	os.Unsetenv("NO_COLOR")
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("default theme = %q, want dark", GetCurrentTheme().Name)
	}
	if ColorReset() != "\033[0m" {
		t.Errorf("ColorReset() = %q", ColorReset())
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetTheme("none")
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should map to NoColorTUITheme")
	}
	SetTheme("dark")
	if GetCurrentTUITheme().Accent != DarkTUITheme.Accent {
		t.Error("dark theme should map to DarkTUITheme")
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}
