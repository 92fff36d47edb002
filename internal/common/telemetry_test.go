package common

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegisterAndCount(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.HttpBytesTotal.WithLabelValues("routes").Add(128)
	metrics.HttpErrorsTotal.WithLabelValues("bus_info", "status").Inc()

	if got := testutil.ToFloat64(metrics.HttpBytesTotal.WithLabelValues("routes")); got != 128 {
		t.Errorf("bytes total = %v, want 128", got)
	}
	if got := testutil.ToFloat64(metrics.HttpErrorsTotal.WithLabelValues("bus_info", "status")); got != 1 {
		t.Errorf("errors total = %v, want 1", got)
	}
}

func TestTelemetryServerStopBeforeStart(t *testing.T) {
	telemetry := NewTelemetryServer("127.0.0.1:0")
	if err := telemetry.Stop(); err != nil {
		t.Fatalf("Stop before Start: %v", err)
	}
	if telemetry.GetRegistry() == nil {
		t.Fatal("registry should be initialised")
	}
}
