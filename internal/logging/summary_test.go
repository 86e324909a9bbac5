package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLog redirects the global logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decodeEvent(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var evt map[string]any
	if err := json.Unmarshal(buf.Bytes(), &evt); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return evt
}

func TestRunSummaryLog(t *testing.T) {
	buf := captureLog(t)

	NewRunSummary("framesheet").
		CommitHash("abc1234").
		BuildTime("2026-01-02T03:04:05Z").
		RunID("run-1").
		Config("rows", "10").
		Config("columns", "4").
		Result("frames", 40).
		Result("bytes", 123456).
		Elapsed(1500 * time.Millisecond).
		Log()

	evt := decodeEvent(t, buf)
	if evt["level"] != "info" {
		t.Errorf("level = %v, want info", evt["level"])
	}
	if evt["message"] != "Framesheet run complete" {
		t.Errorf("message = %v", evt["message"])
	}
	if evt["runId"] != "run-1" {
		t.Errorf("runId = %v, want run-1", evt["runId"])
	}

	tool, ok := evt["tool"].(map[string]any)
	if !ok {
		t.Fatalf("tool missing from event: %v", evt)
	}
	if tool["name"] != "framesheet" || tool["commitHash"] != "abc1234" || tool["buildTime"] != "2026-01-02T03:04:05Z" {
		t.Errorf("tool = %v", tool)
	}

	config, _ := evt["config"].(map[string]any)
	if config["rows"] != "10" || config["columns"] != "4" {
		t.Errorf("config = %v", config)
	}
	results, _ := evt["results"].(map[string]any)
	if results["frames"] != float64(40) || results["bytes"] != float64(123456) {
		t.Errorf("results = %v", results)
	}
	if _, ok := evt["elapsed"]; !ok {
		t.Error("elapsed missing from event")
	}
}

func TestRunSummaryFailed(t *testing.T) {
	buf := captureLog(t)

	NewRunSummary("framesheet").Failed(errors.New("insufficient frames")).Log()

	evt := decodeEvent(t, buf)
	if evt["level"] != "error" {
		t.Errorf("level = %v, want error", evt["level"])
	}
	if evt["error"] != "insufficient frames" {
		t.Errorf("error = %v", evt["error"])
	}
	if _, ok := evt["config"]; ok {
		t.Error("empty config should be omitted")
	}
	if _, ok := evt["runId"]; ok {
		t.Error("empty runId should be omitted")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
