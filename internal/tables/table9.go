package tables

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/regress"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

var (
	// njAtOldMinimum flags New Jersey stores paying exactly $4.25 in wave 1.
	njAtOldMinimum = term{name: "nj_wage425", get: func(r derive.Record) survey.Value {
		switch r.State {
		case survey.StatePA:
			return survey.Of(0)
		case survey.StateNJ:
			ind := derive.BinaryWageIndicator(r.Wave1.StartingWage, derive.OldMinimum, derive.CentTolerance)
			if !ind.Valid {
				return survey.Missing
			}
			return survey.Bool(ind.V > 0)
		}
		return survey.Missing
	}}
	gapSquared = term{name: "gap_squared", get: func(r derive.Record) survey.Value {
		if !r.WageGap.Valid {
			return survey.Missing
		}
		return survey.Of(r.WageGap.V * r.WageGap.V)
	}}
)

// GapBenchmark is the wage gap of a New Jersey store paying the old minimum.
const GapBenchmark = (derive.NewMinimum - derive.OldMinimum) / derive.OldMinimum

// TurningPoint is -b1/(2*b2) for the quadratic in the wage gap, missing when
// the model lacks either term or the square has a zero coefficient.
func TurningPoint(m *regress.Model) survey.Value {
	if m == nil {
		return survey.Missing
	}
	b1, _ := m.Coef(gapTerm.name)
	b2, _ := m.Coef(gapSquared.name)
	if !survey.AllValid(b1, b2) || b2.V == 0 {
		return survey.Missing
	}
	return survey.Of(-b1.V / (2 * b2.V))
}

// Table9 extends the gap model with a $4.25 dummy and a squared gap.
func Table9(recs []survey.Record, appLogger *logger.Logger) (render.Table, error) {
	const component = "Table9"
	rows, err := derived(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return render.Table{}, err
	}
	sample := derive.AnalysisSample(rows)

	f := fitter{table: "9", appLogger: appLogger}
	controls := named(chainControls...)
	models := []*regress.Model{
		f.fit("i", sample, demp, append([]term{gapTerm}, controls...)),
		f.fit("ii", sample, demp, append([]term{gapTerm, njAtOldMinimum}, controls...)),
		f.fit("iii", sample, demp, append([]term{gapTerm, gapSquared}, controls...)),
	}
	// additional names the variable each model adds to the base gap model.
	additional := []string{"", njAtOldMinimum.name, gapSquared.name}

	tbl := render.Table{
		Title:  "TABLE 9-EXTENDED MODELS FOR CHANGE IN EMPLOYMENT",
		Header: []string{"Independent variable", "Model (i)", "Model (ii)", "Model (iii)"},
	}
	row := func(label string, cell func(i int, m *regress.Model) string) {
		cells := []string{label}
		for i, m := range models {
			cells = append(cells, cell(i, m))
		}
		tbl.AddRow(cells...)
	}
	only := func(idx int, name string) func(int, *regress.Model) string {
		return func(i int, m *regress.Model) string {
			if i != idx {
				return ""
			}
			return coefCell(m, name, 2)
		}
	}

	row("1. Initial wage gap"+render.Sup("a"), func(_ int, m *regress.Model) string { return coefCell(m, gapTerm.name, 2) })
	row("2. NJ dummy for $4.25 starting wage"+render.Sup("b"), only(1, njAtOldMinimum.name))
	row("3. Initial wage gap squared"+render.Sup("c"), only(2, gapSquared.name))
	row("4. Controls for chain and ownership"+render.Sup("d"), func(int, *regress.Model) string { return render.YesNo(true) })
	row("5. R-squared", func(_ int, m *regress.Model) string {
		if m == nil {
			return "."
		}
		return render.Number(m.R2(), 3)
	})
	row("6. Standard error of regression", func(_ int, m *regress.Model) string { return serCell(m, 2) })
	row("7. Probability value for controls"+render.Sup("e"), func(_ int, m *regress.Model) string { return jointCell(m, chainControls) })
	row("8. Probability value for additional variable"+render.Sup("f"), func(i int, m *regress.Model) string {
		if additional[i] == "" {
			return ""
		}
		if m == nil {
			return "."
		}
		return render.Number(m.PValue(additional[i]), 2)
	})

	summary := "Notes: Standard errors are given in parentheses. The dependent variable in all models is change in FTE employment."
	if base := models[0]; base != nil {
		summary = fmt.Sprintf("Notes: Standard errors are given in parentheses. The sample consists of %d stores with available data on employment and starting wages in waves 1 and 2. The dependent variable in all models is change in FTE employment. The mean and standard deviation of the dependent variable are %.3f and %.3f, respectively.",
			base.N, base.ResponseMean, base.ResponseStd)
	}
	tp := TurningPoint(models[2])
	turning := fmt.Sprintf("The quadratic in model (iii) turns at a wage gap of %s, against %.4f for a store paying $%.2f.",
		render.Number(tp, 4), GapBenchmark, derive.OldMinimum)
	tbl.Notes = []string{
		summary,
		turning,
		render.Sup("a") + " Proportional increase in starting wage necessary to raise starting wage to new minimum rate. For stores in Pennsylvania the wage gap is 0.",
		render.Sup("b") + " Dummy variable equals 1 for New Jersey stores with starting wage of $4.25 in wave 1, 0 otherwise.",
		render.Sup("c") + " Square of the initial wage gap variable.",
		render.Sup("d") + " Three dummy variables for chain type and whether or not the store is company-owned are included.",
		render.Sup("e") + " Probability value of joint F test for exclusion of chain and ownership control variables.",
		render.Sup("f") + " Probability value for t-test of the additional variable.",
	}

	appLogger.Info(component, "Table built: stores=%d turningPoint=%s benchmark=%.4f", len(sample), tp, GapBenchmark)
	return tbl, nil
}
