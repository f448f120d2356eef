package tables

import (
	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

// Table2 compares store characteristics and wave means across the states.
func Table2(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table2"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	nj, pa := byState(rows)
	appLogger.Debug(component, "Groups split: nj=%d pa=%d", len(nj), len(pa))

	tbl := render.Table{
		Title:  "TABLE 2-MEANS OF KEY VARIABLES",
		Header: []string{"Variable", "NJ", "PA", "t" + render.Sup("a")},
		Notes: []string{
			"Notes: See text for definitions. Standard errors are given in parentheses.",
			render.Sup("a") + " Test of equality of means in New Jersey and Pennsylvania.",
		},
	}

	share := func(label string, has func(derive.Record) bool) {
		cNJ := len(derive.Filter(nj, has))
		cPA := len(derive.Filter(pa, has))
		pNJ := stats.Proportion(cNJ, len(nj))
		pPA := stats.Proportion(cPA, len(pa))
		tbl.AddRow(label,
			render.Number(pNJ.Mean, 1),
			render.Number(pPA.Mean, 1),
			render.Number(stats.ProportionDifference(cNJ, len(nj), cPA, len(pa)), 1),
		)
	}
	mean := func(label string, njRows, paRows []derive.Record, get getter) {
		a, b := stats.Column(njRows, get), stats.Column(paRows, get)
		gNJ, gPA := stats.MeanSE(a), stats.MeanSE(b)
		tbl.AddRow(label,
			groupCell(gNJ, 2),
			groupCell(gPA, 2),
			render.Number(stats.PooledDifference(a, b).T, 1),
		)
	}
	proportion := func(label string, njRows, paRows []derive.Record, get getter) {
		cNJ, nNJ := stats.Tally(stats.Column(njRows, get))
		cPA, nPA := stats.Tally(stats.Column(paRows, get))
		tbl.AddRow(label,
			groupCell(stats.Proportion(cNJ, nNJ), 1),
			groupCell(stats.Proportion(cPA, nPA), 1),
			render.Number(stats.ProportionDifference(cNJ, nNJ, cPA, nPA), 1),
		)
	}

	tbl.AddSection("1. Distribution of Store Types (percentages)")
	for i, c := range survey.Chains {
		share(string(rune('a'+i))+". "+c.String(), func(r derive.Record) bool { return r.Chain == c })
	}
	share("e. Company-owned", func(r derive.Record) bool { return r.CompanyOwned })

	tbl.AddSection("2. Means in Wave 1")
	mean("a. FTE employment", nj, pa, func(r derive.Record) survey.Value { return r.FTE1 })
	mean("b. Percentage full-time employees", nj, pa, func(r derive.Record) survey.Value { return r.FractionFullTime1 })
	mean("c. Starting wage", nj, pa, func(r derive.Record) survey.Value { return r.Wave1.StartingWage })
	mean("d. Wage = $4.25 (percentage)", nj, pa, wageAt(1, derive.OldMinimum))
	mean("e. Price of full meal", nj, pa, func(r derive.Record) survey.Value { return r.MealPrice1 })
	mean("f. Hours open (weekday)", nj, pa, func(r derive.Record) survey.Value { return r.Wave1.HoursOpen })
	proportion("g. Recruiting bonus", nj, pa, func(r derive.Record) survey.Value { return r.Wave1.Bonus })

	interviewed := func(r derive.Record) bool { return r.Status2.Known() }
	nj2, pa2 := derive.Filter(nj, interviewed), derive.Filter(pa, interviewed)

	tbl.AddSection("3. Means in Wave 2")
	mean("a. FTE employment", nj2, pa2, func(r derive.Record) survey.Value { return r.FTE2 })
	mean("b. Percentage full-time employees", nj2, pa2, func(r derive.Record) survey.Value { return r.FractionFullTime2 })
	mean("c. Starting wage", nj2, pa2, func(r derive.Record) survey.Value { return r.Wave2.StartingWage })
	mean("d. Wage = $4.25 (percentage)", nj2, pa2, wageAt(2, derive.OldMinimum))
	mean("e. Wage = $5.05 (percentage)", nj2, pa2, wageAt(2, derive.NewMinimum))
	mean("f. Price of full meal", nj2, pa2, func(r derive.Record) survey.Value { return r.MealPrice2 })
	mean("g. Hours open (weekday)", nj2, pa2, func(r derive.Record) survey.Value { return r.Wave2.HoursOpen })
	proportion("h. Special program for new workers", nj2, pa2, func(r derive.Record) survey.Value { return r.Wave2.Bonus })

	appLogger.Info(component, "Table built: rows=%d nj=%d pa=%d", len(tbl.Rows), len(nj), len(pa))
	return tbl, nil
}

// wageAt is 100 when the starting wage of the given wave is target to the
// cent, 0 otherwise.
func wageAt(wave int, target float64) getter {
	return func(r derive.Record) survey.Value {
		w := r.Wave1.StartingWage
		if wave == 2 {
			w = r.Wave2.StartingWage
		}
		return derive.BinaryWageIndicator(w, target, derive.CentTolerance)
	}
}
