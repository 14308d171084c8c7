package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/diagfmt"
	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.ex",
	Short: "Tokenize an Elixir source file",
	Long:  "Tokenize breaks a source file into its token stream, comments and whitespace attached as trivia.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportDiagnostics renders the bag to stderr when it holds anything,
// sorted by position, colored per the resolved mode.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	cfg, _, err := project.Load(".")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(cmd, cfg, os.Stderr)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	})
	return nil
}
