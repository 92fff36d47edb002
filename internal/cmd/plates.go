package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/plates"
)

func NewPlatesCmd(app *BusCtlApp) *cobra.Command {
	var (
		source       string
		format       string
		dump         bool
		watchSeconds float64
	)

	cmd := &cobra.Command{
		Use:   "plates",
		Short: "List the valid plates of the static plate source",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = app.Config.Plates.Source
			}
			if format == "" {
				format = app.Config.Plates.Format
			}
			if source == "" {
				return fmt.Errorf("Missing required argument: source")
			}

			loader := plates.NewLoader(source, format)
			loader.Logger = app.Logger
			out := cmd.OutOrStdout()

			if dump {
				return dumpFeed(cmd.Context(), out, loader)
			}

			if watchSeconds > 0 {
				watcher, err := plates.NewWatcher(loader, time.Duration(watchSeconds*float64(time.Second)))
				if err != nil {
					return fmt.Errorf("--watch: %w", err)
				}
				defer watcher.Close()

				err = watcher.Watch(cmd.Context(), func(view plates.ListView) {
					fmt.Fprintf(out, "# %s\n", time.Now().Format("15:04:05"))
					printPlates(out, view)
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), plates.LoadingView().Message)
			view, _ := common.RuntimeBenchmark(app.benchOut(cmd), "plates", func() (plates.ListView, error) {
				return plates.Present(loader.Load(cmd.Context())), nil
			})
			printPlates(out, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Plate list file path or URL (defaults to the configuration)")
	cmd.Flags().StringVar(&format, "format", "", "json or gtfsrt")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the decoded GTFS-RT feed as JSON")
	cmd.Flags().Float64Var(&watchSeconds, "watch", 0, "Reload the source every N seconds until interrupted")

	return cmd
}

func printPlates(out io.Writer, view plates.ListView) {
	if !view.HasPlates() {
		fmt.Fprintln(out, view.Message)
		return
	}
	for _, plate := range view.Plates {
		fmt.Fprintln(out, plate)
	}
}

func dumpFeed(ctx context.Context, out io.Writer, loader *plates.Loader) error {
	if loader.Format != plates.FormatGtfsRt {
		return fmt.Errorf("--dump needs --format %s", plates.FormatGtfsRt)
	}

	data, err := loader.Fetch(ctx)
	if err != nil {
		return err
	}
	feedMessage, err := plates.DecodeFeed(data)
	if err != nil {
		return err
	}
	text, err := plates.DumpFeed(feedMessage)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
