package cmd

import (
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func NewEtaCmd(app *BusCtlApp) *cobra.Command {
	var (
		routeName string
		direction int
	)

	cmd := &cobra.Command{
		Use:   "eta <plate>",
		Short: "Show the position of a bus and its upcoming stops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if routeName == "" || !cmd.Flags().Changed("direction") {
				message := &session.Message{Kind: session.MessageError, Text: session.TextEtaIncompleteRoute}
				printMessage(out, message)
				return failure(message)
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			response, err := common.RuntimeBenchmark(app.benchOut(cmd), "bus_info", func() (*api.BusInfoResponse, error) {
				return client.BusInfo(cmd.Context(), args[0], routeName, direction)
			})

			if err != nil {
				message, results := session.PresentEtaFailure(err, response)
				printResults(out, results)
				printMessage(out, message)
				return failure(message)
			}

			printResults(out, session.PresentBusInfo(response))
			return nil
		},
	}

	cmd.Flags().StringVar(&routeName, "route", "", "Route name keyword, e.g. 307")
	cmd.Flags().IntVar(&direction, "direction", 0, "0 outbound, 1 inbound")

	return cmd
}
