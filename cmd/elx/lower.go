package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/prof"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/treewire"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] file.ex",
	Short: "Lower an Elixir source file to core trees",
	Long: "Lower runs the full front end on a source file: tokenize, parse, then\n" +
		"translate every module body to the core tree form, scheduled module\n" +
		"bodies lowered concurrently.",
	Args: cobra.ExactArgs(1),
	RunE: runLower,
}

func init() {
	lowerCmd.Flags().String("emit", "text", "output encoding (text|json|msgpack)")
	lowerCmd.Flags().Int("jobs", 0, "max parallel workers for scheduled modules (0=config)")
	lowerCmd.Flags().Bool("internal", false, "bootstrap mode: drop documentation attributes")
	lowerCmd.Flags().Bool("no-cache", false, "bypass the lowered-tree disk cache")
	lowerCmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
	lowerCmd.Flags().String("cpu-profile", "", "write a CPU profile to this path")
	lowerCmd.Flags().String("mem-profile", "", "write a heap profile to this path")
	lowerCmd.Flags().String("trace-out", "", "write a runtime trace to this path")
}

func runLower(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return err
	}
	switch emit {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("unknown emit format: %s", emit)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	times, err := cmd.Root().PersistentFlags().GetBool("times")
	if err != nil {
		return err
	}

	cfg, _, err := project.Load(".")
	if err != nil {
		return err
	}
	opts, err := lowerOptions(cmd, cfg, maxDiagnostics)
	if err != nil {
		return err
	}

	cpuProfile, _ := cmd.Flags().GetString("cpu-profile")
	memProfile, _ := cmd.Flags().GetString("mem-profile")
	traceOut, _ := cmd.Flags().GetString("trace-out")
	session, err := prof.Start(cpuProfile, traceOut)
	if err != nil {
		return err
	}
	defer session.Stop()

	// The progress UI owns stdout while the pipeline runs; emitted trees
	// follow once it exits. Machine formats skip the UI in auto mode so
	// piped output stays clean.
	useTUI := shouldUseTUI(uiModeValue) && (emit == "text" || uiModeValue == uiModeOn)

	var result *driver.Result
	if useTUI {
		result, err = runLowerWithUI(cmd.Context(), "elx lower", filePath, opts)
	} else {
		result, err = driver.Lower(cmd.Context(), filePath, opts)
	}
	if err != nil {
		return err
	}
	session.Stop()
	if memProfile != "" {
		if err := prof.WriteMem(memProfile); err != nil {
			return err
		}
	}

	if times {
		driver.AppendTimingDiagnostic(result.Bag, result.Timings, result.File.Path)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	if err := emitUnits(os.Stdout, result, emit, quiet); err != nil {
		return err
	}

	if n := errorCount(result.Bag); n > 0 {
		return fmt.Errorf("lowering failed with %d error(s)", n)
	}
	return nil
}

// lowerOptions resolves driver options from the project configuration,
// explicit flags overriding it.
func lowerOptions(cmd *cobra.Command, cfg project.Config, maxDiagnostics int) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           cfg.Jobs,
		Internal:       cfg.Internal,
	}

	if cmd.Flags().Changed("jobs") {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, err
		}
		if jobs > 0 {
			opts.Jobs = jobs
		}
	}
	if cmd.Flags().Changed("internal") {
		internal, err := cmd.Flags().GetBool("internal")
		if err != nil {
			return opts, err
		}
		opts.Internal = internal
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, err
	}
	if !noCache && cfg.Cache {
		cache, err := driver.OpenDiskCache("elx")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// emitUnits writes the lowered units to w in the requested encoding.
// Units that failed to lower carry no statements and are skipped.
func emitUnits(w io.Writer, result *driver.Result, emit string, quiet bool) error {
	units := result.Units

	switch emit {
	case "text":
		for _, u := range units {
			if u.Stmts == nil {
				continue
			}
			if !quiet && len(units) > 1 {
				label := u.Module
				if label == "" {
					label = result.File.Path
				}
				if _, err := fmt.Fprintf(w, "== %s ==\n", label); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, core.PrintStmts(u.Stmts)); err != nil {
				return err
			}
		}
		return nil

	case "json":
		trees := make([]*treewire.Tree, 0, len(units))
		for _, u := range units {
			if u.Stmts == nil {
				continue
			}
			trees = append(trees, treewire.FromCore(result.File.Path, u.Module, u.Stmts))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(trees)

	case "msgpack":
		for _, u := range units {
			if u.Stmts == nil {
				continue
			}
			tree := treewire.FromCore(result.File.Path, u.Module, u.Stmts)
			if err := treewire.WriteMsgpack(w, tree); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown emit format: %s", emit)
}

func errorCount(bag *diag.Bag) int {
	if bag == nil {
		return 0
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}
