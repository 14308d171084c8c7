package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/version"
)

const (
	replPromptMain = "elx> "
	replPromptCont = "...> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively lower Elixir snippets",
	Long: "Repl reads expressions line by line, keeps reading while a construct is\n" +
		"open, and prints the lowered core tree of each complete input.",
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	cfg, _, err := project.Load(".")
	if err != nil {
		return err
	}

	fmt.Printf("elx %s (:quit to exit)\n", version.Version)

	histPath := historyPath(cfg)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           cfg.Jobs,
		Internal:       cfg.Internal,
	}

	for {
		code, ok := readCompleteInput(ln, maxDiagnostics)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if isReplCommand(trimmed) {
			switch trimmed {
			case ":quit", ":q", ":exit":
				return nil
			case ":help":
				fmt.Println("commands: :quit exits, :help prints this; anything else is lowered")
			}
			continue
		}

		result, err := driver.LowerSource(cmd.Context(), "repl", []byte(code), opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if rerr := reportDiagnostics(cmd, result.Bag, result.FileSet); rerr != nil {
			return rerr
		}
		for _, u := range result.Units {
			if u.Stmts == nil {
				continue
			}
			fmt.Println(core.PrintStmts(u.Stmts))
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readCompleteInput keeps prompting while the accumulated text still
// ends inside an open construct. Hard parse errors end the read too;
// the lowering pass reports them.
func readCompleteInput(ln *liner.State, maxDiagnostics int) (string, bool) {
	var b strings.Builder

	for {
		prompt := replPromptMain
		if b.Len() > 0 {
			prompt = replPromptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending input and starts over.
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		probe := driver.ParseSource("repl", []byte(src), maxDiagnostics)
		if probe.Incomplete {
			continue
		}
		return src, true
	}
}

// isReplCommand reports whether the input is a repl directive rather
// than an atom expression such as `:ok`.
func isReplCommand(s string) bool {
	switch s {
	case ":quit", ":q", ":exit", ":help":
		return true
	}
	return false
}

func historyPath(cfg project.Config) string {
	path := cfg.HistoryFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".elx_history")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
