package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/config"
)

type BusCtlApp struct {
	ConfigPath string
	APIBaseURL string
	LogLevel   string
	Bench      bool

	Config config.ConfigFile
	Logger *slog.Logger
}

func NewRootCmd(app *BusCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bus-ctl",
		Short:         "CLI tool used to look up bus routes, buses and arrival times",
		Version:       fmt.Sprintf("%s (%s)", common.Version, common.GitCommit),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"",
		"Path to configuration file (.toml, .yaml or .yml)",
	)
	cmd.PersistentFlags().StringVar(
		&app.APIBaseURL,
		"api",
		"",
		"Base URL of the bus API (overrides the configuration file)",
	)
	cmd.PersistentFlags().StringVar(
		&app.LogLevel,
		"log-level",
		"",
		"debug, info, warn or error",
	)
	cmd.PersistentFlags().BoolVar(
		&app.Bench,
		"bench",
		false,
		"Print how long each remote call took",
	)

	cmd.AddCommand(NewRoutesCmd(app))
	cmd.AddCommand(NewBusesCmd(app))
	cmd.AddCommand(NewEtaCmd(app))
	cmd.AddCommand(NewPlatesCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewTuiCmd(app))

	return cmd
}

func (app *BusCtlApp) load(errOut io.Writer) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	if app.APIBaseURL != "" {
		cfg.API.BaseURL = app.APIBaseURL
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app.Config = cfg
	if app.Logger == nil {
		app.Logger = config.NewLogger(cfg.Log.Level, errOut)
	}
	return nil
}

func (app *BusCtlApp) client() (*api.Client, error) {
	if app.Config.API.BaseURL == "" {
		return nil, fmt.Errorf("Missing required argument: api")
	}
	return api.NewClient(
		app.Config.API.BaseURL,
		api.WithLogger(app.Logger),
		api.WithTimeout(app.Config.Timeout()),
	)
}

// benchOut is where timing lines go; nil unless --bench.
func (app *BusCtlApp) benchOut(cmd *cobra.Command) io.Writer {
	if !app.Bench {
		return nil
	}
	return cmd.ErrOrStderr()
}

// Main runs bus-ctl with args and returns the exit code.
func Main(args []string, out, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &BusCtlApp{}
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

