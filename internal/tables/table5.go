package tables

import (
	"fmt"
	"sort"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/regress"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
	"gonum.org/v1/gonum/stat"
)

// minSubsample is the smallest area subsample worth a regression.
const minSubsample = 10

var (
	pchempc = term{name: "PCHEMPC", get: func(r derive.Record) survey.Value { return r.ProportionalChange }}
	gapTerm = term{name: "gap", get: regressors["gap"]}
	njTerm  = term{name: "nj", get: regressors["nj"]}
	// paGap measures Pennsylvania stores against the New Jersey minimum.
	paGap = term{name: "gap_pa", get: func(r derive.Record) survey.Value {
		return derive.WageGap(survey.StateNJ, r.Wave1.StartingWage, derive.NewMinimum)
	}}
)

// specification is one row of Table 5.
type specification struct {
	label string
	rows  []derive.Record
	extra []term
	gap   term
	// subsample rows get gap models only, and only above minSubsample stores.
	subsample bool
	// propOnly blanks the change-in-employment columns.
	propOnly bool
	opts      []regress.Option
}

// Table5 re-estimates the Table 4 models under alternative samples,
// employment measures and estimators.
func Table5(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table5"

	sampleWith := func(cfg derive.Config) ([]derive.Record, error) {
		rows, err := derived(recs, cfg)
		if err != nil {
			return nil, err
		}
		return derive.AnalysisSample(rows), nil
	}
	variant := func(edit func(*derive.Config)) ([]derive.Record, error) {
		cfg := derive.DefaultConfig(derive.TreatAsMissing)
		edit(&cfg)
		return sampleWith(cfg)
	}

	base, err := variant(func(*derive.Config) {})
	if err != nil {
		return render.Table{}, err
	}
	tempClosed, err := variant(func(c *derive.Config) { c.Closure = derive.TreatAsClosed })
	if err != nil {
		return render.Table{}, err
	}
	noManagersCfg := derive.DefaultConfig(derive.TreatAsMissing)
	noManagersCfg.ExcludeManagers = true
	noManagersAll, err := derived(recs, noManagersCfg)
	if err != nil {
		return render.Table{}, err
	}
	// Same stores as the base sample, only the employment count changes.
	noManagers := derive.SameStores(noManagersAll, base)
	weight04, err := variant(func(c *derive.Config) { c.PartTimeWeight = 0.4 })
	if err != nil {
		return render.Table{}, err
	}
	weight06, err := variant(func(c *derive.Config) { c.PartTimeWeight = 0.6 })
	if err != nil {
		return render.Table{}, err
	}

	noShore := derive.Filter(base, func(r derive.Record) bool { return !r.Region.Shore })
	fewCalls := derive.Filter(base, func(r derive.Record) bool {
		return r.Wave1.Calls.Valid && r.Wave1.Calls.V <= 2
	})
	newark := derive.Filter(base, func(r derive.Record) bool { return r.Region.NorthJ || r.Region.CentralJ })
	camden := derive.Filter(base, func(r derive.Record) bool { return r.Region.SouthJ })
	paOnly := derive.Filter(base, func(r derive.Record) bool { return r.State == survey.StatePA })

	specs := []specification{
		{label: "1. Base specification", rows: base, gap: gapTerm},
		{label: "2. Treat temporarily closed stores as permanently closed" + render.Sup("a"), rows: tempClosed, gap: gapTerm},
		{label: "3. Exclude managers in employment count" + render.Sup("b"), rows: noManagers, gap: gapTerm},
		{label: "4. Weight part-time as 0.4 x full-time" + render.Sup("c"), rows: weight04, gap: gapTerm},
		{label: "5. Weight part-time as 0.6 x full-time" + render.Sup("d"), rows: weight06, gap: gapTerm},
		{label: "6. Exclude stores in NJ shore area" + render.Sup("e"), rows: noShore, gap: gapTerm},
		{label: "7. Add controls for wave-2 interview date" + render.Sup("f"), rows: base, gap: gapTerm, extra: interviewWeeks(base)},
		{label: "8. Exclude stores called more than twice in wave 1" + render.Sup("g"), rows: fewCalls, gap: gapTerm},
		{label: "9. Weight by initial employment" + render.Sup("h"), rows: base, gap: gapTerm, propOnly: true,
			opts: []regress.Option{regress.WithWeights(stats.Column(base, fte1))}},
		{label: "10. Stores in towns around Newark" + render.Sup("i"), rows: newark, gap: gapTerm, subsample: true},
		{label: "11. Stores in towns around Camden" + render.Sup("j"), rows: camden, gap: gapTerm, subsample: true},
		{label: "12. Pennsylvania stores only" + render.Sup("k"), rows: paOnly, gap: paGap, subsample: true},
	}

	tbl := render.Table{
		Title: "TABLE 5-SPECIFICATION TESTS OF REDUCED-FORM EMPLOYMENT MODELS",
		Header: []string{
			"Specification",
			"Change in employment: NJ dummy (i)",
			"Change in employment: Gap measure (ii)",
			"Proportional change in employment: NJ dummy (iii)",
			"Proportional change in employment: Gap measure (iv)",
		},
	}

	f := fitter{table: "5", appLogger: appLogger}
	for _, s := range specs {
		appLogger.Debug(component, "Specification: label=%q stores=%d", s.label, len(s.rows))
		if s.subsample && len(s.rows) <= minSubsample {
			appLogger.Warn(component, "Subsample too small: label=%q stores=%d", s.label, len(s.rows))
			tbl.AddRow(s.label, "", ".", "", ".")
			continue
		}

		cell := func(y, x term, skip bool) string {
			if skip {
				return ""
			}
			regs := append([]term{x}, s.extra...)
			regs = append(regs, named(chainControls...)...)
			m := f.fit(s.label+" "+y.name+"~"+x.name, s.rows, y, regs, s.opts...)
			return coefCell(m, x.name, 2)
		}
		tbl.AddRow(s.label,
			cell(demp, njTerm, s.subsample || s.propOnly),
			cell(demp, s.gap, s.propOnly),
			cell(pchempc, njTerm, s.subsample),
			cell(pchempc, s.gap, false),
		)
	}

	tbl.Notes = []string{
		"Notes: Standard errors are given in parentheses. Entries represent estimated coefficient of New Jersey dummy [columns (i) and (iii)] or initial wage gap [columns (ii) and (iv)] in regression models for the change in employment or the percentage change in employment. All models also include chain dummies and an indicator for company-owned stores.",
		render.Sup("a") + " Wave-2 employment at temporarily closed stores is set to 0 (rather than missing).",
		render.Sup("b") + " Full-time equivalent employment excludes managers and assistant managers.",
		render.Sup("c") + " Full-time equivalent employment equals number of managers, assistant managers, and full-time nonmanagement workers, plus 0.4 times the number of part-time nonmanagement workers.",
		render.Sup("d") + " Full-time equivalent employment equals number of managers, assistant managers, and full-time nonmanagement workers, plus 0.6 times the number of part-time nonmanagement workers.",
		render.Sup("e") + fmt.Sprintf(" Sample excludes %d stores located in towns along the New Jersey shore.", len(base)-len(noShore)),
		render.Sup("f") + " Models include dummy variables identifying week of wave-2 interview in November-December 1992.",
		render.Sup("g") + fmt.Sprintf(" Sample excludes %d stores that were contacted three or more times before obtaining the wave-1 interview.", len(base)-len(fewCalls)),
		render.Sup("h") + " Regression model is estimated by weighted least squares, using employment in wave 1 as a weight.",
		render.Sup("i") + fmt.Sprintf(" Subsample of %d stores in towns around Newark.", len(newark)),
		render.Sup("j") + fmt.Sprintf(" Subsample of %d stores in towns around Camden.", len(camden)),
		render.Sup("k") + " Subsample of Pennsylvania stores only. Wage gap is defined as percentage increase in starting wage necessary to raise starting wage to $5.05.",
	}

	appLogger.Info(component, "Table built: specifications=%d baseStores=%d", len(specs), len(base))
	return tbl, nil
}

// interviewWeeks splits the wave-2 interview dates of rows into terciles and
// returns dummies for the first two. A store without a date gets 0 for both.
func interviewWeeks(rows []derive.Record) []term {
	var days []float64
	for _, r := range rows {
		if d := interviewDay(r.InterviewDate); d.Valid {
			days = append(days, d.V)
		}
	}
	if len(days) == 0 {
		return nil
	}
	sort.Float64s(days)
	q1 := stat.Quantile(0.33, stat.Empirical, days, nil)
	q2 := stat.Quantile(0.67, stat.Empirical, days, nil)

	week := func(lo, hi float64, first bool) getter {
		return func(r derive.Record) survey.Value {
			d := interviewDay(r.InterviewDate)
			if !d.Valid {
				return survey.Of(0)
			}
			if first {
				return survey.Bool(d.V <= hi)
			}
			return survey.Bool(d.V > lo && d.V <= hi)
		}
	}
	return []term{
		{name: "week1", get: week(0, q1, true)},
		{name: "week2", get: week(q1, q2, false)},
	}
}

// interviewDay orders an MMDDYY interview date as a day count.
func interviewDay(date survey.Value) survey.Value {
	if !date.Valid || date.V <= 0 {
		return survey.Missing
	}
	n := int(date.V)
	month, day, year := n/10000, (n/100)%100, n%100
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return survey.Missing
	}
	return survey.Of(float64((year*12+month-1)*31 + day))
}
