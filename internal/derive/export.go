package derive

import (
	"fmt"
	"io"
	"strconv"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type exportColumn struct {
	name string
	get  func(Record) string
}

func valueColumn(name string, get func(Record) survey.Value) exportColumn {
	return exportColumn{name: name, get: func(r Record) string { return get(r).String() }}
}

var exportColumns = []exportColumn{
	{"SHEET", func(r Record) string { return strconv.Itoa(r.Sheet) }},
	{"STATE", func(r Record) string { return r.State.String() }},
	{"CHAIN", func(r Record) string { return r.Chain.String() }},
	{"STATUS2", func(r Record) string { return r.Status2.String() }},
	valueColumn("FTE1", func(r Record) survey.Value { return r.FTE1 }),
	valueColumn("FTE2", func(r Record) survey.Value { return r.FTE2 }),
	valueColumn("DEMP", func(r Record) survey.Value { return r.EmploymentChange }),
	valueColumn("PCHEMPC", func(r Record) survey.Value { return r.ProportionalChange }),
	valueColumn("GAP", func(r Record) survey.Value { return r.WageGap }),
	valueColumn("DWAGE", func(r Record) survey.Value { return r.WageChange }),
	{"WAGE_GROUP", func(r Record) string { return r.WageGroup.String() }},
	valueColumn("PMEAL", func(r Record) survey.Value { return r.MealPrice1 }),
	valueColumn("PMEAL2", func(r Record) survey.Value { return r.MealPrice2 }),
	valueColumn("DPMEAL", func(r Record) survey.Value { return r.PriceChange }),
	valueColumn("DLOG_PMEAL", func(r Record) survey.Value { return r.LogPriceChange }),
	valueColumn("FRACFT", func(r Record) survey.Value { return r.FractionFullTime1 }),
	valueColumn("FRACFT2", func(r Record) survey.Value { return r.FractionFullTime2 }),
	{"CLOSED", func(r Record) string { return strconv.FormatBool(r.Closed) }},
	{"ANALYSIS", func(r Record) string { return strconv.FormatBool(InAnalysisSample(r)) }},
}

// Frame lays the derived records out as a string-typed dataframe, "." for missing.
func Frame(rows []Record) dataframe.DataFrame {
	cols := make([]series.Series, len(exportColumns))
	for i, c := range exportColumns {
		vals := make([]string, len(rows))
		for j, r := range rows {
			vals[j] = c.get(r)
		}
		cols[i] = series.New(vals, series.String, c.name)
	}
	return dataframe.New(cols...)
}

// WriteCSV writes the derived dataset with a header row.
func WriteCSV(w io.Writer, rows []Record) error {
	df := Frame(rows)
	if df.Error() != nil {
		return fmt.Errorf("failed to build derived dataframe: %w", df.Error())
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write derived csv: %w", err)
	}
	return nil
}
