package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRuntimeBenchmarkReportsTiming(t *testing.T) {
	var out bytes.Buffer
	value, err := RuntimeBenchmark(&out, "routes", func() (int, error) {
		return 7, nil
	})
	if err != nil || value != 7 {
		t.Fatalf("got %d, %v", value, err)
	}
	if !strings.HasPrefix(out.String(), "[BENCH] routes took ") {
		t.Errorf("out = %q", out.String())
	}
}

func TestRuntimeBenchmarkNilWriterPassesErrorThrough(t *testing.T) {
	want := errors.New("boom")
	_, err := RuntimeBenchmark(nil, "routes", func() (string, error) {
		return "", want
	})
	if !errors.Is(err, want) {
		t.Errorf("err = %v", err)
	}
}
