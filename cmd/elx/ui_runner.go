package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/l4u/elixir/internal/buildpipeline"
	"github.com/l4u/elixir/internal/driver"
	"github.com/l4u/elixir/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type lowerOutcome struct {
	result *driver.Result
	err    error
}

// runLowerWithUI runs the lowering pipeline behind a progress display.
// Pipeline events stream into the model over a channel; the outcome is
// collected once the program exits.
func runLowerWithUI(ctx context.Context, title, path string, opts driver.Options) (*driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan lowerOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Lower(ctx, path, optsCopy)
		outcomeCh <- lowerOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
