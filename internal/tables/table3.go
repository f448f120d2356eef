package tables

import (
	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

func fte1(r derive.Record) survey.Value { return r.FTE1 }
func fte2(r derive.Record) survey.Value { return r.FTE2 }

// Table3 reports average FTE employment per store before and after the
// increase, by state and by the wave-1 wage of New Jersey stores.
func Table3(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table3"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	closedRows, err := derived(recs, derive.DefaultConfig(derive.TreatAsClosed))
	if err != nil {
		return render.Table{}, err
	}

	tbl := render.Table{
		Title: "TABLE 3-AVERAGE EMPLOYMENT PER STORE BEFORE AND AFTER THE RISE IN NEW JERSEY MINIMUM WAGE",
		Header: []string{
			"Variable",
			"NJ (i)",
			"PA (ii)",
			"Difference, NJ-PA (iii)",
			"NJ Wage = $4.25 (iv)",
			"NJ Wage = $4.26-$4.99 (v)",
			"NJ Wage >= $5.00 (vi)",
			"Diff Low-high (vii)" + render.Sup("b"),
			"Diff Midrange-high (viii)" + render.Sup("b"),
		},
		Notes: []string{
			"Notes: Standard errors are shown in parentheses. The sample consists of all stores with available data on employment.",
			render.Sup("a") + " FTE (full-time-equivalent) employment counts each part-time worker as half a full-time worker. Employment at permanently closed stores is set to zero. Employment at temporarily closed stores is treated as missing.",
			render.Sup("b") + " Stores in New Jersey were classified by whether starting wage in wave 1 equals $4.25 per hour, is between $4.26 and $4.99 per hour, or is $5.00 per hour or higher. Difference in employment between low-wage ($4.25 per hour) and high-wage (>= $5.00 per hour) stores; and difference in employment between midrange ($4.26-$4.99 per hour) and high-wage stores.",
			render.Sup("c") + " Subset of stores with available employment data in wave 1 and wave 2.",
			render.Sup("d") + " In this row only, wave-2 employment at temporarily closed stores is set to 0. Employment changes are based on the subset of stores with available employment data in wave 1 and wave 2.",
		},
	}

	addRow := func(label string, rows []derive.Record, stat func([]derive.Record) stats.Group) {
		nj, pa := byState(rows)
		byWage := stats.Split(nj, func(r derive.Record) derive.WageGroup { return r.WageGroup })
		gNJ, gPA := stat(nj), stat(pa)
		low, mid, high := stat(byWage[derive.WageLow]), stat(byWage[derive.WageMid]), stat(byWage[derive.WageHigh])
		tbl.AddRow(label,
			groupCell(gNJ, 2),
			groupCell(gPA, 2),
			diffCell(stats.IndependentDifference(gNJ, gPA), 2),
			groupCell(low, 2),
			groupCell(mid, 2),
			groupCell(high, 2),
			diffCell(stats.IndependentDifference(low, high), 2),
			diffCell(stats.IndependentDifference(mid, high), 2),
		)
		appLogger.Debug(component, "Row computed: row=%q nj=%d pa=%d low=%d mid=%d high=%d", label, gNJ.N, gPA.N, low.N, mid.N, high.N)
	}

	before := func(rs []derive.Record) stats.Group { return stats.MeanOf(rs, fte1) }
	after := func(rs []derive.Record) stats.Group { return stats.MeanOf(rs, fte2) }
	changeInMeans := func(rs []derive.Record) stats.Group {
		return asGroup(stats.IndependentDifference(after(rs), before(rs)))
	}
	paired := func(rs []derive.Record) stats.Group { return stats.PairedOf(rs, fte1, fte2) }

	addRow("1. FTE employment before, all available observations"+render.Sup("a"), rows, before)
	addRow("2. FTE employment after, all available observations"+render.Sup("a"), rows, after)
	addRow("3. Change in mean FTE employment", rows, changeInMeans)
	addRow("4. Change in mean FTE employment, balanced sample of stores"+render.Sup("c"), derive.BalancedSample(rows), paired)
	addRow("5. Change in mean FTE employment, setting FTE at temporarily closed stores to 0"+render.Sup("d"), derive.BalancedSample(closedRows), paired)

	appLogger.Info(component, "Table built: rows=%d stores=%d", len(tbl.Rows), len(rows))
	return tbl, nil
}
