package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestJSONHandlerStampsStageFromContext(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, lvl, false))

	ctx := WithStage(context.Background(), "trie")
	logger.InfoContext(ctx, "tries built")
	logger.Info("no context stage")
	logger.InfoContext(ctx, "explicit", slog.String(FieldStage, "phon"))

	records := decodeLines(t, &buf)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][FieldStage] != "trie" {
		t.Errorf("expected stage from context, got %v", records[0])
	}
	if _, ok := records[1][FieldStage]; ok {
		t.Errorf("expected no stage without context, got %v", records[1])
	}
	if records[2][FieldStage] != "phon" {
		t.Errorf("expected record attribute to win, got %v", records[2])
	}
	if records[0]["level"] != "info" {
		t.Errorf("expected lowercase level, got %v", records[0]["level"])
	}
	if _, ok := records[0]["ts"]; !ok {
		t.Errorf("expected ts key, got %v", records[0])
	}
}

func TestJSONHandlerKeepsStageAttachedWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar), false)).With(FieldStage, "manifold")

	logger.InfoContext(WithStage(context.Background(), "trie"), "neighbors computed")

	out := buf.String()
	if strings.Count(out, `"stage"`) != 1 || !strings.Contains(out, `"stage":"manifold"`) {
		t.Fatalf("expected the attached stage only, got %q", out)
	}
}
