package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrMismatchedColumns is returned when a table has a different number of
// headers and cell functions.
var ErrMismatchedColumns = errors.New("headers and cell functions differ in length")

const (
	defaultTitle  = "Untitled table"
	defaultHeader = "header"
	indexHeader   = "Index"
)

// Table describes how rows of type T become table cells. Zero fields take
// defaults: the title "Untitled table", a single "header" column, and a single
// cell holding fmt.Sprint of the row. Unless HideIndex is set, an Index column
// numbered from 1 is prepended.
type Table[T any] struct {
	Title     string
	Headers   []string
	Cells     []func(T) string
	HideIndex bool
}

// resolved returns the title, headers (index column included) and cell
// functions after applying defaults.
func (t Table[T]) resolved() (string, []string, []func(T) string, error) {
	title := t.Title
	if title == "" {
		title = defaultTitle
	}
	headers := t.Headers
	if len(headers) == 0 {
		headers = []string{defaultHeader}
	}
	cells := t.Cells
	if len(cells) == 0 {
		cells = []func(T) string{func(row T) string { return fmt.Sprint(row) }}
	}
	if len(headers) != len(cells) {
		return "", nil, nil, fmt.Errorf("%w: %d headers, %d cell functions", ErrMismatchedColumns, len(headers), len(cells))
	}
	if !t.HideIndex {
		headers = append([]string{indexHeader}, headers...)
	}
	return title, headers, cells, nil
}

func (t Table[T]) row(index int, item T, cells []func(T) string) []string {
	out := make([]string, 0, len(cells)+1)
	if !t.HideIndex {
		out = append(out, strconv.Itoa(index))
	}
	for _, cell := range cells {
		out = append(out, cell(item))
	}
	return out
}

// RenderLaTeX writes rows as a booktabs tabular block preceded by the title
// line and followed by a blank line. Cell text is written as is. The block is
// built in memory and written with a single call; w is never closed.
func RenderLaTeX[T any](w io.Writer, rows []T, tbl Table[T]) error {
	title, headers, cells, err := tbl.resolved()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "\\begin{tabular}{%s}\n", strings.Repeat("l", len(headers)))
	b.WriteString("\\toprule\n")
	writeLaTeXRow(&b, headers)
	b.WriteString("\\midrule\n")
	for i, item := range rows {
		writeLaTeXRow(&b, tbl.row(i+1, item, cells))
	}
	b.WriteString("\\bottomrule\n")
	b.WriteString("\\end{tabular}\n\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write latex table: %w", err)
	}
	return nil
}

func writeLaTeXRow(b *strings.Builder, cells []string) {
	b.WriteString(strings.Join(cells, " & "))
	b.WriteString(" \\\\\n")
}

// RenderConsole writes rows as a rounded terminal table with the title on top.
func RenderConsole[T any](w io.Writer, rows []T, tbl Table[T]) error {
	tw, err := tableWriter(rows, tbl)
	if err != nil {
		return err
	}
	tw.SetStyle(table.StyleRounded)
	if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// RenderMarkdown writes rows as a GitHub-flavored markdown table.
func RenderMarkdown[T any](w io.Writer, rows []T, tbl Table[T]) error {
	tw, err := tableWriter(rows, tbl)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, tw.RenderMarkdown()+"\n"); err != nil {
		return fmt.Errorf("write markdown table: %w", err)
	}
	return nil
}

func tableWriter[T any](rows []T, tbl Table[T]) (table.Writer, error) {
	title, headers, cells, err := tbl.resolved()
	if err != nil {
		return nil, err
	}

	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.AppendHeader(toRow(headers))
	for i, item := range rows {
		tw.AppendRow(toRow(tbl.row(i+1, item, cells)))
	}
	return tw, nil
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
