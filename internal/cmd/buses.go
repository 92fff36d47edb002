package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func NewBusesCmd(app *BusCtlApp) *cobra.Command {
	var (
		direction   string
		routeUID    string
		subRouteUID string
		displayName string
	)

	cmd := &cobra.Command{
		Use:   "buses <route-keyword>",
		Short: "List the buses running on one route variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := api.Route{
				TdxRouteNameKeyword: args[0],
				RouteUID:            routeUID,
				SubRouteUID:         subRouteUID,
				DisplayName:         displayName,
			}
			if direction != "" {
				value, err := strconv.Atoi(direction)
				if err != nil {
					return fmt.Errorf("--direction must be an integer: %w", err)
				}
				route.Direction = &value
			}
			if route.DisplayName == "" {
				route.DisplayName = route.TdxRouteNameKeyword
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			response, err := common.RuntimeBenchmark(app.benchOut(cmd), "buses_for_route", func() (*api.BusesResponse, error) {
				return client.BusesForRoute(cmd.Context(), route)
			})

			out := cmd.OutOrStdout()
			if err != nil {
				message := &session.Message{Kind: session.MessageError, Text: session.TextBusesErrorPrefix + session.Describe(err, session.TextBusesHTTP)}
				printMessage(out, message)
				return failure(message)
			}

			if response.NoBusesAvailable || len(response.Buses) == 0 {
				text := response.Message
				if text == "" {
					text = session.TextNoBuses
				}
				printMessage(out, &session.Message{Kind: session.MessageInfo, Text: text})
				return nil
			}

			labels := make([]string, 0, len(response.Buses))
			for _, bus := range response.Buses {
				labels = append(labels, session.BusLabel(bus))
			}
			fmt.Fprintln(out, strings.Join(labels, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "", "0 outbound, 1 inbound (empty sends no direction)")
	cmd.Flags().StringVar(&routeUID, "route-uid", "", "Route UID from the route search")
	cmd.Flags().StringVar(&subRouteUID, "sub-route-uid", "", "Sub-route UID from the route search")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name of the route variant")

	return cmd
}
