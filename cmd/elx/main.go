// Package main implements the elx CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "elx",
	Short: "Elixir front end: tokenize, parse and lower source files",
	Long:  "elx drives the compiler front end, turning Elixir source into lowered core trees.",
}

func main() {
	rootCmd.Version = version.Plain

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("times", false, "report per-stage timings")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor merges the persistent --color flag over the project
// configuration and answers whether the given stream gets ANSI codes.
// It also flips the global color switch so fatih/color output agrees.
func resolveColor(cmd *cobra.Command, cfg project.Config, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	if mode == "" {
		mode = cfg.Color
	}
	if mode == "" {
		mode = "auto"
	}
	if err := project.ValidateColorMode(mode); err != nil {
		return false, err
	}

	var on bool
	switch mode {
	case "always":
		on = true
	case "never":
		on = false
	default:
		on = isTerminal(f)
	}
	color.NoColor = !on
	return on, nil
}
