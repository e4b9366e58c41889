package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"linguistica/internal/logging"
	"linguistica/internal/testsupport"
)

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "warn"

	logger, err := logging.NewFromConfig(cfg, "run-42")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("below threshold")
	logger.Warn("stage finished with warnings", logging.String("stage", "trie"))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one JSON line, got %d: %q", len(lines), content)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["level"] != "warn" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["run_id"] != "run-42" {
		t.Fatalf("expected run_id, got %v", record["run_id"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.String(logging.FieldComponent, "registry"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if strings.Contains(text, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", text)
	}
	if !strings.Contains(text, "INFO registry: message without caller") {
		t.Fatalf("expected component prefix, got %q", text)
	}
	if strings.Contains(text, "\x1b[") {
		t.Fatalf("expected no color codes when writing to a file, got %q", text)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		" WARN ":  "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for input, want := range tests {
		if got := logging.ParseLevel(input).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestForStageAppliesOverride(t *testing.T) {
	var buf bytes.Buffer
	base := slogJSON(&buf)
	stageLogger := logging.ForStage(base, map[string]string{"Manifold": "error"}, "manifold")
	stageLogger.Warn("suppressed")
	stageLogger.Error("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("expected warn to be filtered by stage override, got %q", out)
	}
	if !strings.Contains(out, `"stage":"manifold"`) {
		t.Fatalf("expected stage attribute, got %q", out)
	}

	buf.Reset()
	other := logging.ForStage(base, map[string]string{"manifold": "error"}, "ngram")
	other.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected other stages to keep base level, got %q", buf.String())
	}
}

func TestForContextUsesStageFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := slogJSON(&buf)

	ctx := logging.WithStage(context.Background(), "trie")
	logger := logging.ForContext(ctx, base, map[string]string{"trie": "error"})
	logger.Warn("hidden")
	logger.Error("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"stage":"trie"`) {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	plain := logging.ForContext(context.Background(), base, nil)
	plain.Info("no stage")
	if strings.Contains(buf.String(), `"stage"`) {
		t.Fatalf("expected no stage attribute, got %q", buf.String())
	}
}
