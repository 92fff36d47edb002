package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/config"
	"tarediiran-industries.com/bus-eta-services/internal/session"
	"tarediiran-industries.com/bus-eta-services/internal/tui"
)

type TuiOptions struct {
	LogFile   string
	AltScreen bool
}

func NewTuiCmd(app *BusCtlApp) *cobra.Command {
	options := &TuiOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Look up arrival times interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			// Anything logged to the terminal would tear the screen.
			var logOut io.Writer = io.Discard
			if options.LogFile != "" {
				file, err := os.OpenFile(options.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer file.Close()
				logOut = file
			}
			logger := config.NewLogger(app.Config.Log.Level, logOut)

			controller := session.NewController(client, logger)
			return tui.Run(cmd.Context(), controller, tui.RunOptions{
				Input:     cmd.InOrStdin(),
				Output:    cmd.OutOrStdout(),
				AltScreen: options.AltScreen,
				Logger:    logger,
			})
		},
	}

	cmd.Flags().StringVar(&options.LogFile, "log-file", "", "Write logs to this file while the screen is up")
	cmd.Flags().BoolVar(&options.AltScreen, "alt-screen", true, "Draw on the terminal's alternate screen")

	return cmd
}
