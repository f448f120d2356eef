package tables

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/regress"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

var demp = term{name: "DEMP", get: func(r derive.Record) survey.Value { return r.EmploymentChange }}

// Table4 fits the reduced-form models for the change in FTE employment.
func Table4(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table4"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	sample := derive.AnalysisSample(rows)
	appLogger.Debug(component, "Analysis sample: stores=%d of=%d", len(sample), len(rows))

	f := fitter{table: "4", appLogger: appLogger}
	allControls := concat(chainControls, regionControls)
	models := []*regress.Model{
		f.fit("i", sample, demp, named("nj")),
		f.fit("ii", sample, demp, named(concat([]string{"nj"}, chainControls)...)),
		f.fit("iii", sample, demp, named("gap")),
		f.fit("iv", sample, demp, named(concat([]string{"gap"}, chainControls)...)),
		f.fit("v", sample, demp, named(concat([]string{"gap"}, allControls)...)),
	}
	chains := []bool{false, true, false, true, true}
	regions := []bool{false, false, false, false, true}

	tbl := render.Table{
		Title:  "TABLE 4-REDUCED-FORM MODELS FOR CHANGE IN EMPLOYMENT",
		Header: []string{"Independent variable", "(i)", "(ii)", "(iii)", "(iv)", "(v)"},
	}

	row := func(label string, cell func(i int, m *regress.Model) string) {
		cells := []string{label}
		for i, m := range models {
			cells = append(cells, cell(i, m))
		}
		tbl.AddRow(cells...)
	}
	row("1. New Jersey dummy", func(i int, m *regress.Model) string {
		if i >= 2 {
			return ""
		}
		return coefCell(m, "nj", 2)
	})
	row("2. Initial wage gap"+render.Sup("a"), func(i int, m *regress.Model) string {
		if i < 2 {
			return ""
		}
		return coefCell(m, "gap", 2)
	})
	row("3. Controls for chain and ownership"+render.Sup("b"), func(i int, _ *regress.Model) string { return render.YesNo(chains[i]) })
	row("4. Controls for region"+render.Sup("c"), func(i int, _ *regress.Model) string { return render.YesNo(regions[i]) })
	row("5. Standard error of regression", func(_ int, m *regress.Model) string { return serCell(m, 2) })
	row("6. Probability value for controls"+render.Sup("d"), func(i int, m *regress.Model) string {
		switch {
		case regions[i]:
			return jointCell(m, allControls)
		case chains[i]:
			return jointCell(m, chainControls)
		}
		return ""
	})

	summary := "Notes: Standard errors are given in parentheses."
	if base := models[0]; base != nil {
		summary = fmt.Sprintf("Notes: Standard errors are given in parentheses. The sample consists of %d stores with available data on employment and starting wages in waves 1 and 2. The dependent variable in all models is change in FTE employment. The mean and standard deviation of the dependent variable are %.3f and %.3f, respectively. All models include an unrestricted constant (not reported).",
			base.N, base.ResponseMean, base.ResponseStd)
	}
	tbl.Notes = []string{
		summary,
		render.Sup("a") + " Proportional increase in starting wage necessary to raise starting wage to new minimum rate. For stores in Pennsylvania the wage gap is 0.",
		render.Sup("b") + " Three dummy variables for chain type and whether or not the store is company-owned are included.",
		render.Sup("c") + " Dummy variables for two regions of New Jersey and two regions of eastern Pennsylvania are included.",
		render.Sup("d") + " Probability value of joint F test for exclusion of all control variables.",
	}

	appLogger.Info(component, "Table built: stores=%d", len(sample))
	return tbl, nil
}
