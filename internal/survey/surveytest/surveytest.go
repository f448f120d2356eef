// Package surveytest builds synthetic extract lines for tests.
package surveytest

import (
	"fmt"
	"strings"

	"github.com/farxc/fastfood_minwage/internal/survey"
)

// Fields maps column names to raw text. Unset columns are written as ".".
type Fields map[string]string

// With returns a copy of f with the overrides applied.
func (f Fields) With(overrides Fields) Fields {
	out := make(Fields, len(f)+len(overrides))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Line renders f as a whitespace-delimited extract line.
func Line(f Fields) string {
	parts := make([]string, len(survey.Layout))
	for i, col := range survey.Layout {
		v, ok := f[col.Name]
		if !ok || v == "" {
			v = "."
		}
		parts[i] = v
	}
	return strings.Join(parts, " ")
}

// CSVLine renders f as a comma-separated extract line.
func CSVLine(f Fields) string {
	return strings.Replace(Line(f), " ", ",", -1)
}

// FixedLine renders f in the fixed-width layout, right-aligning each value in its slot.
func FixedLine(f Fields) string {
	last := survey.Layout[len(survey.Layout)-1]
	buf := []byte(strings.Repeat(" ", last.End))
	for _, col := range survey.Layout {
		v, ok := f[col.Name]
		if !ok {
			v = "."
		}
		width := col.End - col.Start
		if len(v) > width {
			panic(fmt.Sprintf("surveytest: value %q does not fit column %s (width %d)", v, col.Name, width))
		}
		copy(buf[col.End-len(v):col.End], v)
	}
	return string(buf)
}

// Extract joins rendered lines into file content.
func Extract(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Store returns the fields of a completed two-wave interview with stable
// employment, for the given state code ("1" NJ, "0" PA) and wave-1 wage.
func Store(sheet int, state, wage string) Fields {
	f := Fields{
		"SHEET":    fmt.Sprint(sheet),
		"CHAINr":   "1",
		"CO_OWNED": "0",
		"STATEr":   state,
		"SOUTHJ":   "0",
		"CENTRALJ": "0",
		"NORTHJ":   "0",
		"PA1":      "0",
		"PA2":      "0",
		"SHORE":    "0",
		"NCALLS":   "0",
		"EMPFT":    "10",
		"EMPPT":    "4",
		"NMGRS":    "1",
		"WAGE_ST":  wage,
		"INCTIME":  "19",
		"FIRSTINC": "0.25",
		"BONUS":    "0",
		"PCTAFF":   "30",
		"MEAL":     "2",
		"OPEN":     "10.5",
		"HRSOPEN":  "15",
		"PSODA":    "1.03",
		"PFRY":     "1.03",
		"PENTREE":  "0.52",
		"NREGS":    "3",
		"NREGS11":  "3",
		"TYPE2":    "1",
		"STATUS2":  "1",
		"DATE2":    "111792",
		"NCALLS2":  "1",
		"EMPFT2":   "10",
		"EMPPT2":   "4",
		"NMGRS2":   "1",
		"WAGE_ST2": "5.05",
		"INCTIME2": "18",
		"FIRSTIN2": "0.25",
		"SPECIAL2": "0",
		"MEALS2":   "2",
		"OPEN2R":   "10.5",
		"HRSOPEN2": "15",
		"PSODA2":   "1.05",
		"PFRY2":    "1.05",
		"PENTREE2": "0.55",
		"NREGS2":   "3",
		"NREGS112": "3",
	}
	if state == "1" {
		f["CENTRALJ"] = "1"
	} else {
		f["PA1"] = "1"
	}
	return f
}

