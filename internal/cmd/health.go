package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/common"
)

func NewHealthCmd(app *BusCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the bus API answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			status, err := common.RuntimeBenchmark(app.benchOut(cmd), "health", func() (int, error) {
				return client.Health(cmd.Context())
			})
			if err != nil {
				return fmt.Errorf("%s unreachable: %w", client.BaseURL(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: HTTP %d\n", client.BaseURL(), status)
			if status >= 500 {
				return fmt.Errorf("%s is unhealthy (HTTP %d)", client.BaseURL(), status)
			}
			return nil
		},
	}

	return cmd
}
