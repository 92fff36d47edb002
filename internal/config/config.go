package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL        = "https://mybus-htsa.onrender.com"
	DefaultListenAddress     = ":8080"
	DefaultTimeoutSeconds    = 15
	DefaultSessionTTLMinutes = 30
	DefaultPlatesFormat      = "json"
	DefaultLogLevel          = "info"
)

// Environment overrides, applied after the config file.
const (
	EnvAPIBaseURL   = "BUS_ETA_API_BASE_URL"
	EnvListen       = "BUS_ETA_LISTEN"
	EnvPlatesSource = "BUS_ETA_PLATES_SOURCE"
	EnvLogLevel     = "BUS_ETA_LOG_LEVEL"
	EnvPort         = "PORT"
)

type APIConfig struct {
	BaseURL        string `toml:"base_url" yaml:"base_url" validate:"omitempty,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=0"`
}

type WebConfig struct {
	Listen            string `toml:"listen" yaml:"listen" validate:"required"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes" yaml:"session_ttl_minutes" validate:"gte=0"`
}

type PlatesConfig struct {
	Source string `toml:"source" yaml:"source"`
	Format string `toml:"format" yaml:"format" validate:"oneof=json gtfsrt"`
}

type TelemetryConfig struct {
	Listen string `toml:"listen" yaml:"listen"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// ConfigFile is the shared configuration of bus-web and bus-ctl.
type ConfigFile struct {
	API       APIConfig       `toml:"api" yaml:"api"`
	Web       WebConfig       `toml:"web" yaml:"web"`
	Plates    PlatesConfig    `toml:"plates" yaml:"plates"`
	Telemetry TelemetryConfig `toml:"telemetry" yaml:"telemetry"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

func Default() ConfigFile {
	return ConfigFile{
		API:    APIConfig{BaseURL: DefaultAPIBaseURL, TimeoutSeconds: DefaultTimeoutSeconds},
		Web:    WebConfig{Listen: DefaultListenAddress, SessionTTLMinutes: DefaultSessionTTLMinutes},
		Plates: PlatesConfig{Format: DefaultPlatesFormat},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// LoadFile reads path over the defaults. The decoder is picked by
// extension: .yaml and .yml are YAML, anything else is TOML.
func LoadFile(path string) (ConfigFile, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return ConfigFile{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ConfigFile{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return ConfigFile{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Load is LoadFile when path is set and Default otherwise, with .env and the
// environment applied on top.
func Load(path string) (ConfigFile, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return ConfigFile{}, err
		}
	}

	if err := LoadDotEnv(); err != nil {
		return ConfigFile{}, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are fine; variables already set win.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", filename, err)
		}
	}
	return nil
}

func (cfg *ConfigFile) ApplyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvAPIBaseURL); ok && value != "" {
		cfg.API.BaseURL = value
	}
	if value, ok := lookup(EnvPort); ok && value != "" {
		cfg.Web.Listen = ":" + value
	}
	if value, ok := lookup(EnvListen); ok && value != "" {
		cfg.Web.Listen = value
	}
	if value, ok := lookup(EnvPlatesSource); ok && value != "" {
		cfg.Plates.Source = value
	}
	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		cfg.Log.Level = strings.ToLower(value)
	}
}

func (cfg ConfigFile) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Telemetry.Listen != "" && cfg.Telemetry.Listen == cfg.Web.Listen {
		return fmt.Errorf("telemetry and web cannot share %s", cfg.Web.Listen)
	}
	return nil
}

func (cfg ConfigFile) Timeout() time.Duration {
	if cfg.API.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(cfg.API.TimeoutSeconds) * time.Second
}

func (cfg ConfigFile) SessionTTL() time.Duration {
	if cfg.Web.SessionTTLMinutes <= 0 {
		return DefaultSessionTTLMinutes * time.Minute
	}
	return time.Duration(cfg.Web.SessionTTLMinutes) * time.Minute
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n), nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// NewLogger builds the text logger handed to components.
func NewLogger(level string, w io.Writer) *slog.Logger {
	parsed, err := ParseLevel(level)
	if err != nil {
		parsed = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parsed}))
}
