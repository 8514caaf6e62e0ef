// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui renders flow forms in the terminal with bubbletea.
package tui // import "github.com/svj/nbeconnect/internal/tui"

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/svj/nbeconnect/internal/flow"
	"github.com/svj/nbeconnect/internal/logging"
)

// ErrCancelled is returned by Run when the user leaves the form.
var ErrCancelled = errors.New("cancelled by user")

// Options tweak how Run drives the terminal. Zero values use the process's
// stdin and stdout.
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// Run shows start, the first result of a flow, and drives the flow until it
// terminates. It returns the terminal result.
func Run(ctx context.Context, d Driver, start flow.Result, opts Options) (flow.Result, error) {
	var popts []tea.ProgramOption
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	popts = append(popts, tea.WithContext(ctx))

	final, err := tea.NewProgram(newFormModel(ctx, d, start), popts...).Run()
	if err != nil {
		logging.Errorf("TUI run error: %v", err)
		d.Abort(start.FlowID)
		return flow.Result{}, fmt.Errorf("form failed: %w", err)
	}

	m, ok := final.(formModel)
	if !ok {
		return flow.Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	if !m.done {
		if !m.cancelled {
			d.Abort(start.FlowID)
		}
		return flow.Result{}, ErrCancelled
	}
	return m.res, nil
}
