package plates

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

const (
	FormatJSON   = "json"
	FormatGtfsRt = "gtfsrt"
)

// Loader reads the static plate source. Source is a local path or an
// http(s) URL; Format selects the JSON list or a GTFS-RT VehiclePositions
// feed.
type Loader struct {
	Source string
	Format string
	Client *http.Client
	Logger *slog.Logger
}

func NewLoader(source, format string) *Loader {
	if format == "" {
		format = FormatJSON
	}
	return &Loader{
		Source: source,
		Format: format,
		Client: &http.Client{},
		Logger: slog.Default(),
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch returns the raw bytes of the source.
func (loader *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if loader.Source == "" {
		return nil, fmt.Errorf("no plate source configured")
	}

	if !isRemote(loader.Source) {
		data, err := os.ReadFile(loader.Source)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loader.Source, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loader.Source, nil)
	if err != nil {
		return nil, err
	}

	client := loader.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loader.Source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, loader.Source)
	}

	return io.ReadAll(resp.Body)
}

// Records fetches and decodes the source without filtering.
func (loader *Loader) Records(ctx context.Context) ([]*Record, error) {
	data, err := loader.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	switch loader.Format {
	case "", FormatJSON:
		return DecodeJSON(data)
	case FormatGtfsRt:
		feedMessage, err := DecodeFeed(data)
		if err != nil {
			return nil, err
		}
		return RecordsFromFeed(feedMessage), nil
	default:
		return nil, fmt.Errorf("unknown plate source format %q", loader.Format)
	}
}

// Load returns the plates to display.
func (loader *Loader) Load(ctx context.Context) ([]string, error) {
	records, err := loader.Records(ctx)
	if err != nil {
		loader.logger().Warn("plate source failed", "source", loader.Source, "error", err)
		return nil, err
	}

	plates := Filter(records)
	loader.logger().Debug("plate source loaded", "source", loader.Source, "records", len(records), "plates", len(plates))
	return plates, nil
}

func (loader *Loader) logger() *slog.Logger {
	if loader.Logger == nil {
		return slog.Default()
	}
	return loader.Logger
}
