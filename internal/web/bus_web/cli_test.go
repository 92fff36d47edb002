package bus_web

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseArgsFlagsBeatConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.toml")
	os.WriteFile(path, []byte(`
[api]
base_url = "http://from-file:9000"

[web]
listen = ":9090"
`), 0o644)

	cfg, err := ParseArgs("bus-web", []string{"-toml", path, "-listen", ":7070"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if cfg.ListenAddress != ":7070" {
		t.Errorf("listen = %q", cfg.ListenAddress)
	}
	if cfg.APIBaseURL != "http://from-file:9000" {
		t.Errorf("api = %q", cfg.APIBaseURL)
	}
}

func TestParseArgsVersion(t *testing.T) {
	var errOut strings.Builder
	_, err := ParseArgs("bus-web", []string{"-version"}, &errOut)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(errOut.String(), "version") {
		t.Errorf("output = %q", errOut.String())
	}
}

func TestParseArgsRejectsBadAPI(t *testing.T) {
	if _, err := ParseArgs("bus-web", []string{"-api", "not a url"}, io.Discard); err == nil {
		t.Error("bad api url accepted")
	}
	if _, err := ParseArgs("bus-web", []string{"-api", ""}, io.Discard); err == nil {
		t.Error("empty api accepted without -mock")
	}
	if _, err := ParseArgs("bus-web", []string{"-api", "", "-mock"}, io.Discard); err != nil {
		t.Errorf("mock without api rejected: %v", err)
	}
}

func TestMainVersionExitsZero(t *testing.T) {
	if code := Main("bus-web", []string{"-version"}, io.Discard, io.Discard); code != 0 {
		t.Errorf("exit = %d", code)
	}
	if code := Main("bus-web", []string{"-no-such-flag"}, io.Discard, io.Discard); code == 0 {
		t.Error("unknown flag exited 0")
	}
}
