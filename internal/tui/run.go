package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"tarediiran-industries.com/bus-eta-services/internal/session"
)

type RunOptions struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	Logger    *slog.Logger
}

// Run drives controller from the terminal until the user quits or ctx ends.
func Run(ctx context.Context, controller *session.Controller, options RunOptions) error {
	model := NewModel(ctx, controller, options.Logger)

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if options.Input != nil {
		programOptions = append(programOptions, tea.WithInput(options.Input))
	}
	if options.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(options.Output))
	}
	if options.AltScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}

	defer controller.Close()
	_, err := tea.NewProgram(model, programOptions...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
