package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/syntax"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ex",
	Short: "Parse an Elixir source file into its surface term",
	Long:  "Parse reads a source file and prints the uniform surface term the lowering stage consumes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Incomplete {
		fmt.Fprintln(os.Stderr, "note: input ends inside an open construct")
	}
	if result.Term == nil {
		return fmt.Errorf("no parse tree produced")
	}

	switch format {
	case "pretty":
		_, err := fmt.Fprintln(os.Stdout, syntax.String(result.Term))
		return err
	case "json":
		data, err := syntax.ToJSON(result.Term)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
