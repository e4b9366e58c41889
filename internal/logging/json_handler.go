package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// jsonHandler writes one JSON object per record with a "ts" key in UTC and
// lowercase levels. Records logged with a context from WithStage carry the
// stage even when the logger itself was not derived with ForStage.
type jsonHandler struct {
	next slog.Handler
	// hasStage is set once a stage attribute is attached through WithAttrs.
	hasStage bool
	grouped  bool
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return &jsonHandler{next: slog.NewJSONHandler(w, &opts)}
}

func (h *jsonHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *jsonHandler) Handle(ctx context.Context, record slog.Record) error {
	if !h.hasStage && !h.grouped {
		if stage, ok := StageFromContext(ctx); ok && !recordHasKey(record, FieldStage) {
			record = record.Clone()
			record.AddAttrs(slog.String(FieldStage, stage))
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &jsonHandler{
		next:     h.next.WithAttrs(attrs),
		hasStage: h.hasStage || (!h.grouped && HasAttrKey(attrs, FieldStage)),
		grouped:  h.grouped,
	}
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &jsonHandler{next: h.next.WithGroup(name), hasStage: h.hasStage, grouped: true}
}

func recordHasKey(record slog.Record, key string) bool {
	found := false
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
