package survey

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

// Format selects how a line of the extract is split into fields.
type Format int

const (
	FormatWhitespace Format = iota
	FormatFixed
	// FormatCSV is a comma-separated extract without a header row.
	FormatCSV
)

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "whitespace", "ws":
		return FormatWhitespace, nil
	case "fixed", "fixed-width":
		return FormatFixed, nil
	case "csv", "comma":
		return FormatCSV, nil
	}
	return FormatWhitespace, fmt.Errorf("unknown extract format %q", name)
}

func (f Format) String() string {
	switch f {
	case FormatFixed:
		return "fixed"
	case FormatCSV:
		return "csv"
	}
	return "whitespace"
}

// missingTokens are the spellings of an absent field in the extract.
var missingTokens = []string{".", "", "NA", "NaN"}

// Note is a data-quality observation made while reading. The offending field
// has already been coerced to missing.
type Note struct {
	Line   int
	Sheet  int
	Column string
	Raw    string
	Reason string
}

func (n Note) String() string {
	if n.Column == "" {
		return fmt.Sprintf("line=%d sheet=%d reason=%s", n.Line, n.Sheet, n.Reason)
	}
	return fmt.Sprintf("line=%d sheet=%d column=%s raw=%q reason=%s", n.Line, n.Sheet, n.Column, n.Raw, n.Reason)
}

// Load opens the extract at path and reads every record.
func Load(path string, format Format, appLogger *logger.Logger) ([]Record, error) {
	const component = "ExtractReader"

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extract %s: %w", path, err)
	}
	defer file.Close()

	appLogger.Debug(component, "Reading extract: path=%s format=%s", path, format)
	records, err := Read(file, format, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to read extract %s: %w", path, err)
	}
	return records, nil
}

// Read decodes records from r and logs each data-quality note.
func Read(r io.Reader, format Format, appLogger *logger.Logger) ([]Record, error) {
	const component = "ExtractReader"

	records, notes, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		appLogger.Warn(component, "Malformed field coerced to missing: %s", n)
	}
	appLogger.Info(component, "Extract loaded: rows=%d notes=%d format=%s", len(records), len(notes), format)
	return records, nil
}

// Decode is Read without logging.
func Decode(r io.Reader, format Format) ([]Record, []Note, error) {
	df, lines, notes, err := Frame(r, format)
	if err != nil {
		return nil, nil, err
	}

	records, rowNotes := DfToRecords(df)
	for i, rn := range rowNotes {
		for _, n := range rn {
			n.Line = lines[i]
			notes = append(notes, n)
		}
	}
	return records, notes, nil
}

// Frame loads the extract into a string-typed dataframe named after Layout.
// lines holds the source line number of each dataframe row.
func Frame(r io.Reader, format Format) (df dataframe.DataFrame, lines []int, notes []Note, err error) {
	// The extract is Windows-1252, not UTF-8.
	decoded := charmap.Windows1252.NewDecoder().Reader(r)
	scanner := bufio.NewScanner(decoded)

	names := ColumnNames()
	rows := [][]string{names}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitLine(line, format)
		if len(fields) != len(names) {
			notes = append(notes, Note{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(names), len(fields)),
			})
			fields = fitWidth(fields, len(names))
		}
		rows = append(rows, fields)
		lines = append(lines, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return dataframe.DataFrame{}, nil, nil, fmt.Errorf("failed to scan extract: %w", err)
	}
	if len(rows) == 1 {
		return dataframe.DataFrame{}, nil, nil, fmt.Errorf("extract is empty")
	}

	df = dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, nil, nil, fmt.Errorf("failed to build dataframe: %w", df.Error())
	}
	return df, lines, notes, nil
}

func splitLine(line string, format Format) []string {
	switch format {
	case FormatWhitespace:
		return strings.Fields(line)
	case FormatCSV:
		fields, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil {
			// Unparseable quoting leaves the row empty; the width check reports it.
			return nil
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}

	fields := make([]string, len(Layout))
	for i, f := range Layout {
		if f.Start >= len(line) {
			continue
		}
		end := f.End
		if end > len(line) {
			end = len(line)
		}
		fields[i] = strings.TrimSpace(line[f.Start:end])
	}
	return fields
}

// fitWidth pads short rows with missing fields and drops trailing extras.
func fitWidth(fields []string, width int) []string {
	out := make([]string, width)
	copy(out, fields)
	for i := len(fields); i < width; i++ {
		out[i] = "."
	}
	return out
}
