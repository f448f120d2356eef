package tables

import (
	"strconv"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

type outcome struct {
	label  string
	change getter
}

func waveChange(get func(survey.Wave) survey.Value) getter {
	return func(r derive.Record) survey.Value { return derive.Difference(get(r.Wave2), get(r.Wave1)) }
}

func mealChange(kind derive.MealProgramKind) getter {
	return func(r derive.Record) survey.Value {
		return derive.Difference(derive.MealProgram(r.Wave2.MealPlan, kind), derive.MealProgram(r.Wave1.MealPlan, kind))
	}
}

// Table6 reports the change in store characteristics, meal programs and the
// wage profile, as mean changes and as regressions on the NJ dummy or gap.
func Table6(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table6"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	nj, pa := byState(rows)

	tbl := render.Table{
		Title: "TABLE 6-EFFECTS OF MINIMUM-WAGE INCREASE ON OTHER OUTCOMES",
		Header: []string{
			"Outcome measure",
			"Mean change: NJ (i)",
			"Mean change: PA (ii)",
			"Mean change: NJ-PA (iii)",
			"Regression: NJ dummy (iv)",
			"Regression: Wage gap" + render.Sup("a") + " (v)",
			"Regression: Wage gap" + render.Sup("b") + " (vi)",
		},
		Notes: []string{
			"Notes: Entries in columns (i) and (ii) represent mean changes in the outcome variable indicated by the row heading for stores with available data on the outcome in waves 1 and 2. Entries in columns (iv)-(vi) represent estimated regression coefficients of indicated variable (NJ dummy or initial wage gap) in models for the change in the outcome variable. Regression models include chain dummies and an indicator for company-owned stores.",
			render.Sup("a") + " The wage gap is the proportional increase in starting wage necessary to raise the wage to the new minimum rate. For stores in Pennsylvania, the wage gap is zero.",
			render.Sup("b") + " Models in column (vi) include dummies for two regions of New Jersey and two regions of eastern Pennsylvania.",
			render.Sup("c") + " Fraction of full-time employees in total full-time-equivalent employment.",
		},
	}

	f := fitter{table: "6", appLogger: appLogger}
	addOutcome := func(n int, o outcome) {
		y := term{name: "change", get: o.change}
		gNJ, gPA := stats.MeanOf(nj, o.change), stats.MeanOf(pa, o.change)
		label := strconv.Itoa(n) + ". " + o.label
		mNJ := f.fit(label+" nj", rows, y, named(concat([]string{"nj"}, chainControls)...))
		mGap := f.fit(label+" gap", rows, y, named(concat([]string{"gap"}, chainControls)...))
		mRegion := f.fit(label+" gap+regions", rows, y, named(concat([]string{"gap"}, chainControls, regionControls)...))
		tbl.AddRow(label,
			groupCell(gNJ, 2),
			groupCell(gPA, 2),
			diffCell(stats.IndependentDifference(gNJ, gPA), 2),
			coefCell(mNJ, "nj", 2),
			coefCell(mGap, "gap", 2),
			coefCell(mRegion, "gap", 2),
		)
		appLogger.Debug(component, "Outcome computed: outcome=%q nj=%d pa=%d", o.label, gNJ.N, gPA.N)
	}

	n := 0
	section := func(name string, outcomes ...outcome) {
		tbl.AddSection(name)
		for _, o := range outcomes {
			n++
			addOutcome(n, o)
		}
	}

	section("Store Characteristics:",
		outcome{"Fraction full-time workers (percentage)" + render.Sup("c"), func(r derive.Record) survey.Value {
			return derive.Difference(r.FractionFullTime2, r.FractionFullTime1)
		}},
		outcome{"Number of hours open per weekday", waveChange(func(w survey.Wave) survey.Value { return w.HoursOpen })},
		outcome{"Number of cash registers", waveChange(func(w survey.Wave) survey.Value { return w.Registers })},
		outcome{"Number of cash registers open at 11:00 A.M.", waveChange(func(w survey.Wave) survey.Value { return w.RegistersAt11 })},
	)
	section("Employee Meal Programs:",
		outcome{"Low-price meal program (percentage)", mealChange(derive.LowPriceMeal)},
		outcome{"Free meal program (percentage)", mealChange(derive.FreeMeal)},
		outcome{"Combination of low-price and free meals (percentage)", mealChange(derive.CombinationMeal)},
	)
	section("Wage Profile:",
		outcome{"Time to first raise (weeks)", waveChange(func(w survey.Wave) survey.Value { return derive.MonthsToWeeks(w.MonthsToRaise) })},
		outcome{"Usual amount of first raise (cents)", waveChange(func(w survey.Wave) survey.Value {
			if !w.FirstRaise.Valid {
				return survey.Missing
			}
			return survey.Of(w.FirstRaise.V * 100)
		})},
		outcome{"Slope of wage profile (percent per week)", func(r derive.Record) survey.Value {
			return derive.Difference(r.WageSlope2, r.WageSlope1)
		}},
	)

	appLogger.Info(component, "Table built: outcomes=%d nj=%d pa=%d", n, len(nj), len(pa))
	return tbl, nil
}
