package tables

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/regress"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

// priceControls omits Burger King as the base chain.
var priceControls = []string{"kfc", "roys", "wendys", "CO_OWNED"}

var dlogMeal = term{name: "DLOG_PMEAL", get: func(r derive.Record) survey.Value { return r.LogPriceChange }}

// priceSample keeps completed wave-2 interviews with positive meal prices,
// employment and starting wages in both waves.
func priceSample(rows []derive.Record) []derive.Record {
	completed := derive.Filter(rows, func(r derive.Record) bool { return r.Status2 == survey.StatusCompleted })
	return derive.Complete(completed,
		func(r derive.Record) survey.Value { return r.LogPriceChange },
		fte1,
		fte2,
		func(r derive.Record) survey.Value { return r.Wave1.StartingWage },
		func(r derive.Record) survey.Value { return r.Wave2.StartingWage },
	)
}

// Table7 fits reduced-form models for the change in the log price of a full meal.
func Table7(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table7"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	sample := priceSample(rows)
	appLogger.Debug(component, "Price sample: stores=%d of=%d", len(sample), len(rows))

	f := fitter{table: "7", appLogger: appLogger}
	models := []*regress.Model{
		f.fit("i", sample, dlogMeal, named("nj")),
		f.fit("ii", sample, dlogMeal, named(concat([]string{"nj"}, priceControls)...)),
		f.fit("iii", sample, dlogMeal, named("gap")),
		f.fit("iv", sample, dlogMeal, named(concat([]string{"gap"}, priceControls)...)),
		f.fit("v", sample, dlogMeal, named(concat([]string{"gap"}, priceControls, regionControls)...)),
	}
	chains := []bool{false, true, false, true, true}
	regions := []bool{false, false, false, false, true}

	tbl := render.Table{
		Title:  "TABLE 7-REDUCED-FORM MODELS FOR CHANGE IN THE PRICE OF A FULL MEAL",
		Header: []string{"Independent variable", "(i)", "(ii)", "(iii)", "(iv)", "(v)"},
	}
	njRow, gapRow := []string{"1. New Jersey dummy"}, []string{"2. Initial wage gap" + render.Sup("a")}
	chainRow := []string{"3. Controls for chain and ownership" + render.Sup("b")}
	regionRow := []string{"4. Controls for region" + render.Sup("c")}
	serRow := []string{"5. Standard error of regression"}
	for i, m := range models {
		if i < 2 {
			njRow = append(njRow, coefCell(m, "nj", 3))
			gapRow = append(gapRow, "")
		} else {
			njRow = append(njRow, "")
			gapRow = append(gapRow, coefCell(m, "gap", 3))
		}
		chainRow = append(chainRow, render.YesNo(chains[i]))
		regionRow = append(regionRow, render.YesNo(regions[i]))
		serRow = append(serRow, serCell(m, 3))
	}
	for _, r := range [][]string{njRow, gapRow, chainRow, regionRow, serRow} {
		tbl.AddRow(r...)
	}

	summary := "Notes: Standard errors are given in parentheses. Entries are estimated regression coefficients for models fit to the change in the log price of a full meal (entree, medium soda, small fries)."
	if base := models[0]; base != nil {
		summary += fmt.Sprintf(" The sample contains %d stores with valid data on prices, wages, and employment for waves 1 and 2. The mean and standard deviation of the dependent variable are %.4f and %.4f, respectively.",
			base.N, base.ResponseMean, base.ResponseStd)
	}
	tbl.Notes = []string{
		summary,
		render.Sup("a") + " Proportional increase in starting wage necessary to raise the wage to the new minimum-wage rate. For stores in Pennsylvania the wage gap is 0.",
		render.Sup("b") + " Three dummy variables for chain type and whether or not the store is company-owned are included.",
		render.Sup("c") + " Dummy variables for two regions of New Jersey and two regions of eastern Pennsylvania are included.",
	}

	appLogger.Info(component, "Table built: stores=%d", len(sample))
	return tbl, nil
}
