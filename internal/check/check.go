// Package check builds the data-check report of an extract: code
// frequencies, descriptive statistics of raw and derived variables, the same
// statistics split by state and wage group, and the list of closed stores.
package check

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type variable struct {
	name string
	get  func(derive.Record) survey.Value
}

func wave1(name string, get func(survey.Wave) survey.Value) variable {
	return variable{name, func(r derive.Record) survey.Value { return get(r.Wave1) }}
}

func wave2(name string, get func(survey.Wave) survey.Value) variable {
	return variable{name, func(r derive.Record) survey.Value { return get(r.Wave2) }}
}

func flag(name string, pick func(survey.Region) bool) variable {
	return variable{name, func(r derive.Record) survey.Value { return survey.Bool(pick(r.Region)) }}
}

func chain(name string, c survey.Chain) variable {
	return variable{name, func(r derive.Record) survey.Value {
		if r.Chain == survey.ChainUnknown {
			return survey.Missing
		}
		return survey.Bool(r.Chain == c)
	}}
}

var (
	fullTime      = func(w survey.Wave) survey.Value { return w.FullTime }
	partTime      = func(w survey.Wave) survey.Value { return w.PartTime }
	managers      = func(w survey.Wave) survey.Value { return w.Managers }
	wage          = func(w survey.Wave) survey.Value { return w.StartingWage }
	hoursOpen     = func(w survey.Wave) survey.Value { return w.HoursOpen }
	bonus         = func(w survey.Wave) survey.Value { return w.Bonus }
	priceSoda     = func(w survey.Wave) survey.Value { return w.PriceSoda }
	priceFries    = func(w survey.Wave) survey.Value { return w.PriceFries }
	priceEntree   = func(w survey.Wave) survey.Value { return w.PriceEntree }
	registers     = func(w survey.Wave) survey.Value { return w.Registers }
	registersAt11 = func(w survey.Wave) survey.Value { return w.RegistersAt11 }
	openHour      = func(w survey.Wave) survey.Value { return w.OpenHour }
	calls         = func(w survey.Wave) survey.Value { return w.Calls }
	monthsToRaise = func(w survey.Wave) survey.Value { return w.MonthsToRaise }
	firstRaise    = func(w survey.Wave) survey.Value { return w.FirstRaise }

	emptot  = variable{"EMPTOT", func(r derive.Record) survey.Value { return r.FTE1 }}
	emptot2 = variable{"EMPTOT2", func(r derive.Record) survey.Value { return r.FTE2 }}
	demp    = variable{"DEMP", func(r derive.Record) survey.Value { return r.EmploymentChange }}
	pchempc = variable{"PCHEMPC", func(r derive.Record) survey.Value { return r.ProportionalChange }}
	gap     = variable{"GAP", func(r derive.Record) survey.Value { return r.WageGap }}
	pmeal   = variable{"PMEAL", func(r derive.Record) survey.Value { return r.MealPrice1 }}
	pmeal2  = variable{"PMEAL2", func(r derive.Record) survey.Value { return r.MealPrice2 }}
	dpmeal  = variable{"DPMEAL", func(r derive.Record) survey.Value { return r.PriceChange }}
)

// rawVariables are the numeric extract fields, with their missing counts.
var rawVariables = []variable{
	wave1("NCALLS", calls), wave2("NCALLS2", calls),
	wave1("EMPFT", fullTime), wave1("EMPPT", partTime), wave1("NMGRS", managers),
	wave2("EMPFT2", fullTime), wave2("EMPPT2", partTime), wave2("NMGRS2", managers),
	wave1("WAGE_ST", wage), wave2("WAGE_ST2", wage),
	wave1("INCTIME", monthsToRaise), wave2("INCTIME2", monthsToRaise),
	wave1("FIRSTINC", firstRaise), wave2("FIRSTIN2", firstRaise),
	wave1("BONUS", bonus), wave2("SPECIAL2", bonus),
	wave1("PCTAFF", func(w survey.Wave) survey.Value { return w.PctAffected }),
	wave1("OPEN", openHour), wave2("OPEN2R", openHour),
	wave1("HRSOPEN", hoursOpen), wave2("HRSOPEN2", hoursOpen),
	wave1("PSODA", priceSoda), wave1("PFRY", priceFries), wave1("PENTREE", priceEntree),
	wave2("PSODA2", priceSoda), wave2("PFRY2", priceFries), wave2("PENTREE2", priceEntree),
	wave1("NREGS", registers), wave1("NREGS11", registersAt11),
	wave2("NREGS2", registers), wave2("NREGS112", registersAt11),
	{"TYPE2", func(r derive.Record) survey.Value { return r.Type2 }},
	{"DATE2", func(r derive.Record) survey.Value { return r.InterviewDate }},
	flag("SOUTHJ", func(g survey.Region) bool { return g.SouthJ }),
	flag("CENTRALJ", func(g survey.Region) bool { return g.CentralJ }),
	flag("NORTHJ", func(g survey.Region) bool { return g.NorthJ }),
	flag("PA1", func(g survey.Region) bool { return g.PA1 }),
	flag("PA2", func(g survey.Region) bool { return g.PA2 }),
	flag("SHORE", func(g survey.Region) bool { return g.Shore }),
}

var derivedVariables = []variable{emptot, emptot2, demp, pchempc, gap, pmeal, pmeal2, dpmeal}

// stateVariables are the Table 2 characteristics compared across states.
var stateVariables = []variable{
	chain("BK", survey.BurgerKing), chain("KFC", survey.KFC),
	chain("ROYS", survey.RoyRogers), chain("WENDYS", survey.Wendys),
	{"CO_OWNED", func(r derive.Record) survey.Value { return survey.Bool(r.CompanyOwned) }},
	emptot,
	{"FRACFT", func(r derive.Record) survey.Value { return r.FractionFullTime1 }},
	wave1("WAGE_ST", wage),
	{"ATMIN", func(r derive.Record) survey.Value {
		return derive.BinaryWageIndicator(r.Wave1.StartingWage, derive.OldMinimum, derive.CentTolerance)
	}},
	{"NEWMIN", func(r derive.Record) survey.Value {
		return derive.BinaryWageIndicator(r.Wave2.StartingWage, derive.NewMinimum, derive.CentTolerance)
	}},
	pmeal, wave1("HRSOPEN", hoursOpen), wave1("BONUS", bonus),
	emptot2,
	{"FRACFT2", func(r derive.Record) survey.Value { return r.FractionFullTime2 }},
	wave2("WAGE_ST2", wage), pmeal2, wave2("HRSOPEN2", hoursOpen), wave2("SPECIAL2", bonus),
	demp, pchempc, gap, dpmeal,
}

var changeVariables = []variable{emptot, emptot2, demp, pchempc, gap, pmeal, pmeal2, dpmeal}

// codeColumn is a categorical extract field, as text.
type codeColumn struct {
	name string
	get  func(survey.Record) string
}

func known(ok bool, s string) string {
	if !ok {
		return "."
	}
	return s
}

var codeColumns = []codeColumn{
	{"CHAINr", func(r survey.Record) string { return known(r.Chain != survey.ChainUnknown, r.Chain.String()) }},
	{"STATEr", func(r survey.Record) string { return known(r.State != survey.StateUnknown, r.State.String()) }},
	{"TYPE2", func(r survey.Record) string { return r.Type2.String() }},
	{"STATUS2", func(r survey.Record) string { return known(r.Status2.Known(), r.Status2.String()) }},
	{"BONUS", func(r survey.Record) string { return r.Wave1.Bonus.String() }},
	{"SPECIAL2", func(r survey.Record) string { return r.Wave2.Bonus.String() }},
	{"CO_OWNED", func(r survey.Record) string { return survey.Bool(r.CompanyOwned).String() }},
	{"MEAL", func(r survey.Record) string { return known(r.Wave1.MealPlan.Known(), r.Wave1.MealPlan.String()) }},
	{"MEALS2", func(r survey.Record) string { return known(r.Wave2.MealPlan.Known(), r.Wave2.MealPlan.String()) }},
}

// codeFrame lays the categorical fields out as string columns, "." for missing.
func codeFrame(recs []survey.Record) dataframe.DataFrame {
	cols := make([]series.Series, len(codeColumns))
	for i, c := range codeColumns {
		vals := make([]string, len(recs))
		for j, r := range recs {
			vals[j] = c.get(r)
		}
		cols[i] = series.New(vals, series.String, c.name)
	}
	return dataframe.New(cols...)
}

// valueFrame holds one float column per variable, NaN for missing, plus the
// grouping columns.
func valueFrame(rows []derive.Record, vars []variable) dataframe.DataFrame {
	states := make([]string, len(rows))
	groups := make([]string, len(rows))
	for i, r := range rows {
		states[i] = r.State.String()
		groups[i] = r.WageGroup.String()
	}
	cols := []series.Series{
		series.New(states, series.String, "STATE"),
		series.New(groups, series.String, "WAGE_GROUP"),
	}
	for _, v := range vars {
		vals := make([]float64, len(rows))
		for i, r := range rows {
			vals[i] = math.NaN()
			if x, ok := v.get(r).Float(); ok {
				vals[i] = x
			}
		}
		cols = append(cols, series.New(vals, series.Float, v.name))
	}
	return dataframe.New(cols...)
}

// counts tallies df by the text of one column.
func counts(df dataframe.DataFrame, col string) (map[string]int, error) {
	out := make(map[string]int)
	if df.Nrow() == 0 {
		return out, nil
	}
	groups := df.GroupBy(col)
	if groups.Err != nil {
		return nil, fmt.Errorf("group by %s: %w", col, groups.Err)
	}
	agg := groups.Aggregation([]dataframe.AggregationType{dataframe.Aggregation_COUNT}, []string{col})
	if agg.Err != nil {
		return nil, fmt.Errorf("count by %s: %w", col, agg.Err)
	}
	keys := agg.Col(col).Records()
	n := agg.Col(col + "_" + dataframe.Aggregation_COUNT.String()).Float()
	for i, k := range keys {
		out[k] = int(n[i])
	}
	return out, nil
}

// sortedKeys orders keys with "." last.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == ".") != (keys[j] == ".") {
			return keys[j] == "."
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Summary is what a check run found, for logging.
type Summary struct {
	Stores            int
	NJ                int
	PA                int
	PermanentlyClosed int
	TemporarilyClosed int
	Chains            map[string]int
}

func summarize(rows []derive.Record) (Summary, error) {
	df := derive.Frame(rows)
	if df.Error() != nil {
		return Summary{}, fmt.Errorf("failed to build derived dataframe: %w", df.Error())
	}
	byState, err := counts(df, "STATE")
	if err != nil {
		return Summary{}, err
	}
	byChain, err := counts(df, "CHAIN")
	if err != nil {
		return Summary{}, err
	}
	byStatus, err := counts(df, "STATUS2")
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Stores:            len(rows),
		NJ:                byState[survey.StateNJ.String()],
		PA:                byState[survey.StatePA.String()],
		PermanentlyClosed: byStatus[survey.StatusClosedPermanently.String()],
		Chains:            byChain,
	}
	for _, st := range []survey.Status2{survey.StatusClosedRenovation, survey.StatusClosedRoad, survey.StatusClosedFire} {
		s.TemporarilyClosed += byStatus[st.String()]
	}
	return s, nil
}

func summaryTable(s Summary) render.Table {
	tbl := render.Table{Title: "DATA CHECK-SUMMARY", Header: []string{"Item", "Stores"}}
	tbl.AddRow("Stores in extract", fmt.Sprint(s.Stores))
	tbl.AddRow("New Jersey", fmt.Sprint(s.NJ))
	tbl.AddRow("Pennsylvania", fmt.Sprint(s.PA))
	if other := s.Stores - s.NJ - s.PA; other > 0 {
		tbl.AddRow("Unknown state", fmt.Sprint(other))
	}
	tbl.AddRow("Permanently closed", fmt.Sprint(s.PermanentlyClosed))
	tbl.AddRow("Temporarily closed", fmt.Sprint(s.TemporarilyClosed))
	tbl.AddSection("Chain:")
	for _, c := range survey.Chains {
		tbl.AddRow(c.String(), fmt.Sprint(s.Chains[c.String()]))
	}
	if n := s.Chains[survey.ChainUnknown.String()]; n > 0 {
		tbl.AddRow("Unknown chain", fmt.Sprint(n))
	}
	return tbl
}

func frequencyTable(recs []survey.Record) (render.Table, error) {
	tbl := render.Table{Title: "DATA CHECK-FREQUENCIES", Header: []string{"Variable", "Value", "Stores"}}
	df := codeFrame(recs)
	if df.Error() != nil {
		return tbl, fmt.Errorf("failed to build code dataframe: %w", df.Error())
	}
	for _, c := range codeColumns {
		freq, err := counts(df, c.name)
		if err != nil {
			return tbl, err
		}
		for _, k := range sortedKeys(freq) {
			tbl.AddRow(c.name, k, fmt.Sprint(freq[k]))
		}
	}
	tbl.Notes = []string{`Notes: "." counts stores with the field missing.`}
	return tbl, nil
}

var statsHeader = []string{"N", "Missing", "Mean", "Std. dev.", "Min", "25%", "Median", "75%", "Max"}

// describe summarizes the present values of s with gota's Describe.
func describe(s series.Series) []string {
	var present []float64
	for i, na := range s.IsNaN() {
		if !na {
			present = append(present, s.Elem(i).Float())
		}
	}
	cells := []string{fmt.Sprint(len(present)), fmt.Sprint(s.Len() - len(present))}
	if len(present) == 0 {
		for range statsHeader[2:] {
			cells = append(cells, ".")
		}
		return cells
	}

	desc := dataframe.New(series.New(present, series.Float, s.Name)).Describe()
	d := desc.Col(s.Name).Float()
	// Describe rows: mean, median, stddev, min, 25%, 50%, 75%, max.
	for _, i := range []int{0, 2, 3, 4, 1, 6, 7} {
		cells = append(cells, render.Number(survey.Of(d[i]), 3))
	}
	return cells
}

func describeTable(title string, df dataframe.DataFrame, vars []variable) render.Table {
	tbl := render.Table{Title: title, Header: append([]string{"Variable"}, statsHeader...)}
	for _, v := range vars {
		tbl.AddRow(append([]string{v.name}, describe(df.Col(v.name))...)...)
	}
	return tbl
}

// splitTable describes vars within each level of the by column.
func splitTable(title string, df dataframe.DataFrame, by string, vars []variable) (render.Table, error) {
	tbl := render.Table{Title: title, Header: append([]string{"Variable", by}, statsHeader...)}
	if df.Nrow() == 0 {
		return tbl, nil
	}
	groups := df.GroupBy(by)
	if groups.Err != nil {
		return tbl, fmt.Errorf("group by %s: %w", by, groups.Err)
	}
	split := groups.GetGroups()
	levels := make([]string, 0, len(split))
	for k := range split {
		levels = append(levels, k)
	}
	sort.Strings(levels)

	for _, v := range vars {
		for _, level := range levels {
			tbl.AddRow(append([]string{v.name, level}, describe(split[level].Col(v.name))...)...)
		}
	}
	return tbl, nil
}

func closedTable(rows []derive.Record) render.Table {
	tbl := render.Table{
		Title:  "DATA CHECK-CLOSED STORES",
		Header: []string{"Sheet", "State", "EMPTOT", "EMPTOT2", "STATUS2"},
	}
	for _, r := range rows {
		if !r.Status2.PermanentlyClosed() && !r.Status2.TemporarilyClosed() {
			continue
		}
		tbl.AddRow(fmt.Sprint(r.Sheet), r.State.String(), r.FTE1.String(), r.FTE2.String(), r.Status2.String())
	}
	if len(tbl.Rows) == 0 {
		tbl.Notes = []string{"No closed stores found."}
	}
	return tbl
}

// Report is the data-check report of one extract.
type Report struct {
	Summary Summary
	Tables  []render.Table
}

// Build derives recs under the default policy (temporarily closed stores
// missing) and assembles the check tables.
func Build(recs []survey.Record, appLogger *logger.Logger) (Report, error) {
	const component = "Check"

	rows, err := derive.DeriveAll(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return Report{}, fmt.Errorf("check derive: %w", err)
	}
	summary, err := summarize(rows)
	if err != nil {
		return Report{}, err
	}
	freq, err := frequencyTable(recs)
	if err != nil {
		return Report{}, err
	}

	raw := valueFrame(rows, rawVariables)
	derived := valueFrame(rows, derivedVariables)
	byState, err := splitTable("DATA CHECK-BY STATE", valueFrame(rows, stateVariables), "STATE", stateVariables)
	if err != nil {
		return Report{}, err
	}
	byWage, err := splitTable("DATA CHECK-EMPLOYMENT CHANGES BY WAGE GROUP", valueFrame(rows, changeVariables), "WAGE_GROUP", changeVariables)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Summary: summary,
		Tables: []render.Table{
			summaryTable(summary),
			freq,
			describeTable("DATA CHECK-RAW VARIABLES", raw, rawVariables),
			describeTable("DATA CHECK-DERIVED VARIABLES", derived, derivedVariables),
			byState,
			byWage,
			closedTable(rows),
		},
	}
	appLogger.Info(component, "Check built: stores=%d nj=%d pa=%d permanentlyClosed=%d temporarilyClosed=%d",
		summary.Stores, summary.NJ, summary.PA, summary.PermanentlyClosed, summary.TemporarilyClosed)
	return rep, nil
}

// Markdown writes every table of the report, separated by blank lines.
func (r Report) Markdown(w io.Writer) error {
	for i, tbl := range r.Tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := render.Markdown(w, tbl); err != nil {
			return fmt.Errorf("render %s: %w", tbl.Title, err)
		}
	}
	return nil
}

// WriteFile renders the report to path, creating its directory.
func (r Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create check directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Markdown(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
