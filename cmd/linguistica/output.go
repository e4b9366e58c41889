package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"linguistica/internal/config"
	"linguistica/internal/fileutil"
	"linguistica/internal/report"
	"linguistica/internal/serialize"
)

type outputFormat string

const (
	formatTable    outputFormat = "table"
	formatMarkdown outputFormat = "markdown"
	formatLaTeX    outputFormat = "latex"
	formatJSON     outputFormat = "json"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return formatTable, nil
	case formatTable, formatMarkdown, formatLaTeX, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, markdown, latex, or json)", value)
	}
}

// renderRows writes rows in the requested format. JSON output encodes payload
// rather than the table cells so that values keep their types.
func renderRows[T any](w io.Writer, format outputFormat, rows []T, tbl report.Table[T], payload any) error {
	switch format {
	case formatJSON:
		return serialize.Encode(w, payload)
	case formatLaTeX:
		return report.RenderLaTeX(w, rows, tbl)
	case formatMarkdown:
		return report.RenderMarkdown(w, rows, tbl)
	default:
		return report.RenderConsole(w, rows, tbl)
	}
}

// writeJSON encodes v as canonical JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return serialize.Encode(cmd.OutOrStdout(), v)
}

// writeOutput sends write's output to the command's stdout, or atomically
// replaces target when one is given.
func writeOutput(ctx context.Context, cmd *cobra.Command, target string, write func(io.Writer) error) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return write(cmd.OutOrStdout())
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := fileutil.WriteAtomic(ctx, expanded, 0o644, write); err != nil {
		return fmt.Errorf("write %s: %w", expanded, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", expanded)
	return nil
}
