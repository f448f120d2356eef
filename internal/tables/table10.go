package tables

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

type priceItem struct {
	name          string
	before, after getter
}

func wavePrice(pick func(survey.Wave) survey.Value) (before, after getter) {
	return func(r derive.Record) survey.Value { return pick(r.Wave1) },
		func(r derive.Record) survey.Value { return pick(r.Wave2) }
}

func priceItems() []priceItem {
	item := func(name string, pick func(survey.Wave) survey.Value) priceItem {
		b, a := wavePrice(pick)
		return priceItem{name: name, before: b, after: a}
	}
	return []priceItem{
		item("PSODA", func(w survey.Wave) survey.Value { return w.PriceSoda }),
		item("PFRY", func(w survey.Wave) survey.Value { return w.PriceFries }),
		item("PENTREE", func(w survey.Wave) survey.Value { return w.PriceEntree }),
		{
			name:   "PTOTAL",
			before: func(r derive.Record) survey.Value { return r.MealPrice1 },
			after:  func(r derive.Record) survey.Value { return r.MealPrice2 },
		},
	}
}

// Table10 compares item and meal prices across states and waves.
func Table10(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table10"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	nj, pa := byState(rows)

	// The balanced sample has every item priced in both waves.
	balanced := func(rs []derive.Record) []derive.Record {
		return derive.Complete(rs,
			func(r derive.Record) survey.Value { return r.MealPrice1 },
			func(r derive.Record) survey.Value { return r.MealPrice2 },
		)
	}
	njBal, paBal := balanced(nj), balanced(pa)

	tbl := render.Table{
		Title:  "PRICE CHANGES BEFORE AND AFTER THE RISE IN NEW JERSEY MINIMUM WAGE",
		Header: []string{"Variable", "Period", "PA (i)", "NJ (ii)", "Difference, NJ-PA (iii)"},
	}
	add := func(period string, gPA, gNJ stats.Group) {
		tbl.AddRow("", period, groupCell(gPA, 3), groupCell(gNJ, 3), diffCell(stats.IndependentDifference(gNJ, gPA), 3))
	}

	for _, it := range priceItems() {
		tbl.AddSection(it.name)
		bPA, bNJ := stats.MeanOf(pa, it.before), stats.MeanOf(nj, it.before)
		aPA, aNJ := stats.MeanOf(pa, it.after), stats.MeanOf(nj, it.after)
		add("Before", bPA, bNJ)
		add("After", aPA, aNJ)
		add("Change (all stores)",
			asGroup(stats.IndependentDifference(aPA, bPA)),
			asGroup(stats.IndependentDifference(aNJ, bNJ)))
		add("Change (balanced sample)",
			stats.PairedOf(paBal, it.before, it.after),
			stats.PairedOf(njBal, it.before, it.after))
		appLogger.Debug(component, "Item computed: item=%s pa=%d nj=%d", it.name, bPA.N, bNJ.N)
	}

	tbl.Notes = []string{
		"Notes: Standard errors are shown in parentheses. Before refers to the wave-1 interview (February-March 1992) and After to the wave-2 interview (November-December 1992).",
		"Change (all stores) is the difference of wave means using all available data, with independent standard errors. Change (balanced sample) is the mean of store-level changes for stores with every price in both waves.",
		fmt.Sprintf("Sample sizes: PA (n=%d), NJ (n=%d); balanced PA (n=%d), NJ (n=%d). PTOTAL = PSODA + PFRY + PENTREE.", len(pa), len(nj), len(paBal), len(njBal)),
	}

	appLogger.Info(component, "Table built: nj=%d pa=%d balancedNJ=%d balancedPA=%d", len(nj), len(pa), len(njBal), len(paBal))
	return tbl, nil
}
