// Package app wires configuration, assets and the directory listing into
// the Bubble Tea program.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/artex/internal/config"
	"github.com/kyaoi/artex/internal/ui"
)

// Options are the command line inputs of a session.
type Options struct {
	Dir        string
	ConfigPath string
}

// Run loads everything the browser needs and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	state, err := LoadInitialState(ctx, cfg, dir)
	if err != nil {
		return err
	}
	state.Watch = true
	return runProgram(ctx, state)
}

func runProgram(ctx context.Context, state ui.State) error {
	program := tea.NewProgram(ui.NewModel(state), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
