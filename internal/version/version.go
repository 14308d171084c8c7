package version

import "github.com/fatih/color"

// Build metadata for the elx CLI. The plain variables can be overridden
// at build time via -ldflags; the colored Version is derived from Plain.

var (
	majorColor = color.New(color.FgMagenta, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgCyan, color.Bold)

	// Plain is the semantic version without ANSI escapes. Use this for
	// JSON output and log lines.
	Plain = "0.1.0-dev"

	// Version is the colorized form shown in terminal banners.
	Version = Colorize(Plain)

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colorize renders a dotted semantic version with one color per segment.
// Segments beyond the third, or inputs without dots, pass through unstyled.
func Colorize(v string) string {
	rest := ""
	core := v
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '-' || c == '+' {
			core, rest = v[:i], v[i:]
			break
		}
	}

	var parts []string
	start := 0
	for i := 0; i <= len(core); i++ {
		if i == len(core) || core[i] == '.' {
			parts = append(parts, core[start:i])
			start = i + 1
		}
	}
	if len(parts) != 3 {
		return v
	}
	return majorColor.Sprint(parts[0]) + "." +
		minorColor.Sprint(parts[1]) + "." +
		patchColor.Sprint(parts[2]) + rest
}
