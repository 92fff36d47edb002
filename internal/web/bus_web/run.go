package bus_web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/config"
	"tarediiran-industries.com/bus-eta-services/internal/mockapi"
	"tarediiran-industries.com/bus-eta-services/internal/plates"
)

// selfURL is the address this process can reach its own listener at.
func selfURL(listenAddress string) (string, error) {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return "", err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}

func Run(cfg Config, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := config.NewLogger(cfg.File.Log.Level, errOut)

	var registry *prometheus.Registry
	if cfg.TelemetryAddress != "" {
		telemetry := common.NewTelemetryServer(cfg.TelemetryAddress)
		if err := telemetry.Start(); err != nil {
			fmt.Fprintln(errOut, "Error:", err)
			return -1
		}
		defer telemetry.Stop()
		registry = telemetry.GetRegistry()
	}

	apiBaseURL := cfg.APIBaseURL
	platesSource := cfg.PlatesSource
	var mock *mockapi.Handler
	if cfg.Mock {
		self, err := selfURL(cfg.ListenAddress)
		if err != nil {
			fmt.Fprintln(errOut, "Error:", err)
			return -1
		}
		mock = mockapi.NewHandler(mockapi.DefaultFixtures(), logger)
		apiBaseURL = self + MockPrefix
		if platesSource == "" {
			platesSource = apiBaseURL + "/plates.json"
		}
		log.Printf("mock API enabled at %s", apiBaseURL)
	}

	options := []api.Option{api.WithLogger(logger), api.WithTimeout(cfg.File.Timeout())}
	if registry != nil {
		options = append(options, api.WithMetrics(common.NewMetrics(registry)))
	}
	client, err := api.NewClient(apiBaseURL, options...)
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	var loader *plates.Loader
	if platesSource != "" {
		loader = plates.NewLoader(platesSource, cfg.File.Plates.Format)
		loader.Logger = logger
	}

	server, err := NewBusWebServer(ServerOptions{
		ListenAddress: cfg.ListenAddress,
		Backend:       client,
		Plates:        loader,
		SessionTTL:    cfg.File.SessionTTL(),
		Registry:      registry,
		Logger:        logger,
		Mock:          mock,
	})
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}
	defer server.Close()

	server.Serve(ctx)
	return 0
}
