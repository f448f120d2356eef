// Package regress fits linear models by ordinary or weighted least squares
// over survey columns, dropping incomplete rows first.
package regress

import (
	"errors"
	"fmt"
	"math"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Intercept names the constant term every model carries.
const Intercept = "Intercept"

var (
	// ErrInsufficientData means fewer complete rows than parameters.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrSingular means the design matrix does not have full column rank.
	ErrSingular = errors.New("singular design matrix")
)

// InsufficientDataError carries the counts behind ErrInsufficientData.
type InsufficientDataError struct {
	Response string
	Rows     int
	Params   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %d complete rows for %d parameters in model of %s", ErrInsufficientData, e.Rows, e.Params, e.Response)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// Column is a named variable, one value per row.
type Column struct {
	Name   string
	Values []survey.Value
}

type options struct {
	weights []survey.Value
	filter  []bool
}

type Option func(*options)

// WithWeights switches to weighted least squares. Rows with a missing or
// non-positive weight are dropped.
func WithWeights(w []survey.Value) Option {
	return func(o *options) { o.weights = w }
}

// WithFilter keeps only rows whose entry is true.
func WithFilter(keep []bool) Option {
	return func(o *options) { o.filter = keep }
}

// Model is a fitted linear model.
type Model struct {
	Response string
	// Names lists the parameters, Intercept first.
	Names []string
	// Coefficients and StdErrors follow Names.
	Coefficients []float64
	StdErrors    []float64

	N        int
	DFResid  int
	Weighted bool

	// ResidualStdError is sqrt(sum w*e^2 / (n-p)).
	ResidualStdError float64
	RSquared         float64
	ResponseMean     float64
	// ResponseStd is the population standard deviation of the response.
	ResponseStd float64

	cov   *mat.SymDense
	index map[string]int
}

// Fit regresses response on the explanatory columns plus an intercept.
func Fit(response Column, explanatory []Column, opts ...Option) (*Model, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(response.Values)
	for _, c := range explanatory {
		if len(c.Values) != n {
			return nil, fmt.Errorf("column %s has %d rows, response %s has %d", c.Name, len(c.Values), response.Name, n)
		}
	}
	if o.weights != nil && len(o.weights) != n {
		return nil, fmt.Errorf("weights have %d rows, response %s has %d", len(o.weights), response.Name, n)
	}
	if o.filter != nil && len(o.filter) != n {
		return nil, fmt.Errorf("filter has %d rows, response %s has %d", len(o.filter), response.Name, n)
	}

	names := make([]string, 0, len(explanatory)+1)
	names = append(names, Intercept)
	for _, c := range explanatory {
		names = append(names, c.Name)
	}
	p := len(names)

	rows := completeRows(response, explanatory, o)
	if len(rows) < p {
		return nil, &InsufficientDataError{Response: response.Name, Rows: len(rows), Params: p}
	}

	x := mat.NewDense(len(rows), p, nil)
	y := mat.NewVecDense(len(rows), nil)
	w := make([]float64, len(rows))
	sqrtW := mat.NewVecDense(len(rows), nil)
	for i, r := range rows {
		x.Set(i, 0, 1)
		for j, c := range explanatory {
			x.Set(i, j+1, c.Values[r].V)
		}
		y.SetVec(i, response.Values[r].V)
		w[i] = 1
		if o.weights != nil {
			w[i] = o.weights[r].V
		}
		sqrtW.SetVec(i, math.Sqrt(w[i]))
	}

	// Scaling rows by sqrt(w) turns X'WX and X'Wy into plain products.
	var xs mat.Dense
	xs.Apply(func(i, _ int, v float64) float64 { return v * sqrtW.AtVec(i) }, x)
	var ys mat.VecDense
	ys.MulElemVec(sqrtW, y)

	var xtwx mat.SymDense
	xtwx.SymOuterK(1, xs.T())
	var xtwy mat.VecDense
	xtwy.MulVec(xs.T(), &ys)

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtwx); !ok {
		return nil, fmt.Errorf("model of %s: %w", response.Name, ErrSingular)
	}
	if cond := chol.Cond(); cond > 1e14 || math.IsInf(cond, 0) || math.IsNaN(cond) {
		return nil, fmt.Errorf("model of %s (condition %.3g): %w", response.Name, cond, ErrSingular)
	}

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xtwy); err != nil {
		return nil, fmt.Errorf("model of %s: solve: %w", response.Name, err)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("model of %s: invert: %w", response.Name, err)
	}

	// Weighted residuals and deviations from the weighted mean.
	var fitted, resid mat.VecDense
	fitted.MulVec(&xs, &beta)
	resid.SubVec(&ys, &fitted)
	rss := mat.Dot(&resid, &resid)

	meanW := stat.Mean(y.RawVector().Data, w)
	var dev mat.VecDense
	dev.AddScaledVec(&ys, -meanW, sqrtW)
	tss := mat.Dot(&dev, &dev)

	df := len(rows) - p
	scale := math.NaN()
	if df > 0 {
		scale = rss / float64(df)
	}

	cov := mat.NewSymDense(p, nil)
	cov.ScaleSym(scale, &inv)

	m := &Model{
		Response:         response.Name,
		Names:            names,
		Coefficients:     make([]float64, p),
		StdErrors:        make([]float64, p),
		N:                len(rows),
		DFResid:          df,
		Weighted:         o.weights != nil,
		ResidualStdError: math.Sqrt(scale),
		RSquared:         math.NaN(),
		cov:              cov,
		index:            make(map[string]int, p),
	}
	if tss > 0 {
		m.RSquared = 1 - rss/tss
	}
	for j, name := range names {
		m.Coefficients[j] = beta.AtVec(j)
		m.StdErrors[j] = math.Sqrt(cov.At(j, j))
		m.index[name] = j
	}
	m.ResponseMean, m.ResponseStd = stat.PopMeanStdDev(y.RawVector().Data, nil)
	return m, nil
}

func completeRows(response Column, explanatory []Column, o options) []int {
	var rows []int
	for i, yv := range response.Values {
		if o.filter != nil && !o.filter[i] {
			continue
		}
		if !yv.Valid {
			continue
		}
		if o.weights != nil && (!o.weights[i].Valid || o.weights[i].V <= 0) {
			continue
		}
		complete := true
		for _, c := range explanatory {
			if !c.Values[i].Valid {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, i)
		}
	}
	return rows
}

// Coef returns the estimate and standard error of name, missing if absent.
func (m *Model) Coef(name string) (coef, se survey.Value) {
	j, ok := m.index[name]
	if !ok {
		return survey.Missing, survey.Missing
	}
	return survey.Of(m.Coefficients[j]), survey.Of(m.StdErrors[j])
}

// TStat is coef/se for name.
func (m *Model) TStat(name string) survey.Value {
	coef, se := m.Coef(name)
	if !survey.AllValid(coef, se) || se.V == 0 {
		return survey.Missing
	}
	return survey.Of(coef.V / se.V)
}

// PValue is the two-sided p-value of the t statistic for name.
func (m *Model) PValue(name string) survey.Value {
	t := m.TStat(name)
	if !t.Valid || m.DFResid <= 0 {
		return survey.Missing
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DFResid)}
	return survey.Of(2 * dist.Survival(math.Abs(t.V)))
}

// SER is the residual standard error as a Value.
func (m *Model) SER() survey.Value { return survey.Of(m.ResidualStdError) }

// R2 is R-squared as a Value.
func (m *Model) R2() survey.Value { return survey.Of(m.RSquared) }
