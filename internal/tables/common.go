// Package tables builds the replication tables from survey records. Every
// builder derives its own view of the data under an explicit closure policy,
// so builders never share mutable state.
package tables

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/regress"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/stats"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

type getter func(derive.Record) survey.Value

// term is a named model variable.
type term struct {
	name string
	get  getter
}

func chainDummy(c survey.Chain) getter {
	return func(r derive.Record) survey.Value {
		if r.Chain == survey.ChainUnknown {
			return survey.Missing
		}
		return survey.Bool(r.Chain == c)
	}
}

func regionDummy(pick func(survey.Region) bool) getter {
	return func(r derive.Record) survey.Value { return survey.Bool(pick(r.Region)) }
}

var regressors = map[string]getter{
	"nj":       func(r derive.Record) survey.Value { return r.NJ() },
	"gap":      func(r derive.Record) survey.Value { return r.WageGap },
	"bk":       chainDummy(survey.BurgerKing),
	"kfc":      chainDummy(survey.KFC),
	"roys":     chainDummy(survey.RoyRogers),
	"wendys":   chainDummy(survey.Wendys),
	"CO_OWNED": func(r derive.Record) survey.Value { return survey.Bool(r.CompanyOwned) },
	"CENTRALJ": regionDummy(func(g survey.Region) bool { return g.CentralJ }),
	"SOUTHJ":   regionDummy(func(g survey.Region) bool { return g.SouthJ }),
	"NORTHJ":   regionDummy(func(g survey.Region) bool { return g.NorthJ }),
	"PA1":      regionDummy(func(g survey.Region) bool { return g.PA1 }),
	"PA2":      regionDummy(func(g survey.Region) bool { return g.PA2 }),
}

var (
	// chainControls omits Wendy's as the base chain.
	chainControls  = []string{"bk", "kfc", "roys", "CO_OWNED"}
	regionControls = []string{"CENTRALJ", "SOUTHJ", "PA1", "PA2"}
)

// named looks up regressors by name. Unknown names are a programming error.
func named(names ...string) []term {
	out := make([]term, 0, len(names))
	for _, name := range names {
		get, ok := regressors[name]
		if !ok {
			panic("tables: unknown regressor " + name)
		}
		out = append(out, term{name: name, get: get})
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func column(rows []derive.Record, t term) regress.Column {
	return regress.Column{Name: t.name, Values: stats.Column(rows, t.get)}
}

func fit(rows []derive.Record, y term, x []term, opts ...regress.Option) (*regress.Model, error) {
	cols := make([]regress.Column, len(x))
	for i, t := range x {
		cols[i] = column(rows, t)
	}
	return regress.Fit(column(rows, y), cols, opts...)
}

// fitter fits models for one table. A model that cannot be estimated is
// logged and comes back nil, and its cells render as missing.
type fitter struct {
	table     string
	appLogger *logger.Logger
}

func (f fitter) fit(label string, rows []derive.Record, y term, x []term, opts ...regress.Option) *regress.Model {
	const component = "Tables"
	m, err := fit(rows, y, x, opts...)
	if err != nil {
		f.appLogger.Warn(component, "Model skipped: table=%s model=%s error=%v", f.table, label, err)
		return nil
	}
	f.appLogger.Debug(component, "Model fitted: table=%s model=%s n=%d weighted=%t ser=%.4f", f.table, label, m.N, m.Weighted, m.ResidualStdError)
	return m
}

func coefCell(m *regress.Model, name string, decimals int) string {
	if m == nil {
		return "."
	}
	c, se := m.Coef(name)
	return render.MeanSE(c, se, decimals)
}

func serCell(m *regress.Model, decimals int) string {
	if m == nil {
		return "."
	}
	return render.Number(m.SER(), decimals)
}

func jointCell(m *regress.Model, names []string) string {
	return render.Number(regress.JointTest(m, names), 2)
}

func groupCell(g stats.Group, decimals int) string {
	return render.MeanSE(g.Mean, g.SE, decimals)
}

func diffCell(c stats.Comparison, decimals int) string {
	return render.MeanSE(c.Diff, c.SE, decimals)
}

// asGroup lets a difference of means be compared again, as in a
// difference-in-differences cell.
func asGroup(c stats.Comparison) stats.Group {
	return stats.Group{Mean: c.Diff, SE: c.SE}
}

func derived(recs []survey.Record, cfg derive.Config) ([]derive.Record, error) {
	rows, err := derive.DeriveAll(recs, cfg)
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", cfg.Closure, err)
	}
	return rows, nil
}

func byState(rows []derive.Record) (nj, pa []derive.Record) {
	groups := stats.Split(rows, func(r derive.Record) survey.State { return r.State })
	return groups[survey.StateNJ], groups[survey.StatePA]
}
