package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func NewRoutesCmd(app *BusCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes <keyword>",
		Short: "Search the route variants matching a keyword",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			controller := session.NewController(client, app.Logger)
			defer controller.Close()

			keyword := strings.Join(args, " ")
			view, _ := common.RuntimeBenchmark(app.benchOut(cmd), "routes", func() (session.View, error) {
				view := controller.Search(cmd.Context(), keyword)
				return view, controller.LastError()
			})

			out := cmd.OutOrStdout()
			printMessage(out, view.Message)

			if len(view.Routes.Options) > 0 {
				writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(writer, "ROUTE\tDIRECTION\tROUTE_UID\tSUB_ROUTE_UID\tKEYWORD")
				for _, option := range view.Routes.Options {
					route, _ := controller.RouteFor(option.Value)
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
						route.DisplayName,
						orDash(route.DirectionParam()),
						orDash(route.RouteUID),
						orDash(route.SubRouteUID),
						route.TdxRouteNameKeyword,
					)
				}
				writer.Flush()
			}

			return failure(view.Message)
		},
	}

	return cmd
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
