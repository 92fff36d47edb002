package bus_web

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"tarediiran-industries.com/bus-eta-services/internal/common"
	"tarediiran-industries.com/bus-eta-services/internal/config"
)

type Config struct {
	Version bool

	// Config file (.toml, .yaml or .yml). Flags set on the command line win.
	TomlConfigPath string

	ListenAddress    string
	APIBaseURL       string
	PlatesSource     string
	TelemetryAddress string

	// Serve the fixture API under /mock and point the front end at it.
	Mock bool

	File config.ConfigFile
}

func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Version, "version", false, "Prints CLI version")
	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Configuration file")
	fs.StringVar(&cfg.ListenAddress, "listen", config.DefaultListenAddress, "Address to serve the web front end on")
	fs.StringVar(&cfg.APIBaseURL, "api", config.DefaultAPIBaseURL, "Base URL of the bus API")
	fs.StringVar(&cfg.PlatesSource, "plates", "", "Static plate list, file path or URL")
	fs.StringVar(&cfg.TelemetryAddress, "telemetry", "", "If set, serve /metrics and pprof on this address")
	fs.BoolVar(&cfg.Mock, "mock", false, "Serve fixture data under /mock and use it as the bus API")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return Config{}, flag.ErrHelp
	}

	file, err := config.Load(cfg.TomlConfigPath)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if explicit["listen"] {
		file.Web.Listen = cfg.ListenAddress
	}
	if explicit["api"] {
		file.API.BaseURL = cfg.APIBaseURL
	}
	if explicit["plates"] {
		file.Plates.Source = cfg.PlatesSource
	}
	if explicit["telemetry"] {
		file.Telemetry.Listen = cfg.TelemetryAddress
	}

	cfg.File = file
	cfg.ListenAddress = file.Web.Listen
	cfg.APIBaseURL = file.API.BaseURL
	cfg.PlatesSource = file.Plates.Source
	cfg.TelemetryAddress = file.Telemetry.Listen

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.APIBaseURL == "" && !cfg.Mock {
		return fmt.Errorf("Missing required argument: api (or use -mock)")
	}
	return cfg.File.Validate()
}

func Main(programName string, args []string, out, errOut io.Writer) int {
	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	return Run(cfg, errOut)
}
