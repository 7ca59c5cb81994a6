package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if strings.Contains(Version, "\x1b") {
		t.Error("Version itself must stay free of escape codes")
	}
}

func TestPrettyWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := Pretty(); got != Version {
		t.Errorf("Pretty() = %q, want plain %q", got, Version)
	}
}

func TestPrettyWithColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	got := Pretty()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Pretty() = %q, expected escape codes", got)
	}
	// Точки между сегментами не раскрашиваются.
	if strings.Count(got, ".") != strings.Count(Version, ".") {
		t.Errorf("Pretty() changed the segment structure: %q", got)
	}
}
