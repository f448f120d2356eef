// Package render writes result tables as markdown pipe tables.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/olekukonko/tablewriter"
)

// Table is a titled grid with footnotes.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string
}

// AddRow appends a row, padding or trimming it to the header width.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// AddSection appends a row with only a bold label.
func (t *Table) AddSection(label string) {
	t.AddRow(fmt.Sprintf("**%s**", label))
}

// Markdown writes the title, the pipe table and the notes to w.
func Markdown(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", t.Title); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(t.Header)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(t.Rows)
	table.Render()
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	if len(t.Notes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", strings.Join(t.Notes, "\n\n")); err != nil {
		return err
	}
	return nil
}

// String renders t, for logging and tests.
func String(t Table) string {
	var sb strings.Builder
	_ = Markdown(&sb, t)
	return sb.String()
}

// Number formats v with the given decimals, "." when missing.
func Number(v survey.Value, decimals int) string {
	if !v.Valid {
		return "."
	}
	return fmt.Sprintf("%.*f", decimals, v.V)
}

// MeanSE formats "mean (se)". A missing mean renders "."; a mean without an SE
// renders the mean alone.
func MeanSE(mean, se survey.Value, decimals int) string {
	if !mean.Valid {
		return "."
	}
	if !se.Valid {
		return Number(mean, decimals)
	}
	return fmt.Sprintf("%.*f (%.*f)", decimals, mean.V, decimals, se.V)
}

// YesNo is the control-indicator cell used in regression tables.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Sup wraps a footnote marker.
func Sup(marker string) string {
	return "<sup>" + marker + "</sup>"
}
