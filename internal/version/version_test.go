package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Plain == "" {
		t.Error("Plain should have a default value")
	}
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if strings.Contains(Plain, "\x1b[") {
		t.Errorf("Plain must not carry ANSI escapes, got %q", Plain)
	}

	// GitCommit, GitMessage and BuildDate can be empty (optional).
	_ = GitCommit
	_ = GitMessage
	_ = BuildDate
}

func TestColorize_DisabledIsIdentity(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	for _, v := range []string{"0.1.0-dev", "1.2.3", "2.0.0-rc.1+build.7"} {
		if got := Colorize(v); got != v {
			t.Errorf("Colorize(%q) = %q with color disabled", v, got)
		}
	}
}

func TestColorize_PassThroughOddShapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = orig }()

	// Not major.minor.patch: returned untouched, no styling applied.
	for _, v := range []string{"", "dev", "1.2", "1.2.3.4"} {
		got := Colorize(v)
		if got != v {
			t.Errorf("Colorize(%q) = %q, want unchanged", v, got)
		}
	}
}

func TestColorize_StylesThreeSegments(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = orig }()

	got := Colorize("1.2.3-dev")
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Errorf("pre-release suffix must stay unstyled, got %q", got)
	}
	for _, seg := range []string{"1", "2", "3"} {
		if !strings.Contains(got, seg) {
			t.Errorf("segment %q missing from %q", seg, got)
		}
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origPlain := Plain
	origCommit := GitCommit
	origDate := BuildDate
	defer func() {
		Plain = origPlain
		GitCommit = origCommit
		BuildDate = origDate
	}()

	// Simulate build-time ldflags.
	Plain = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Plain != "1.2.3" {
		t.Errorf("Plain = %q, want %q", Plain, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2024-01-15T10:30:00Z")
	}
}
