// Package stats computes group means, standard errors and two-group tests
// over survey values. Degenerate results are missing, never NaN.
package stats

import (
	"math"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"gonum.org/v1/gonum/stat"
)

// Group is a mean with its standard error over the present values of a column.
type Group struct {
	Mean survey.Value
	SE   survey.Value
	N    int
}

// Comparison is a difference between two groups.
type Comparison struct {
	Diff survey.Value
	SE   survey.Value
	T    survey.Value
}

// MeanSE drops missing values, then returns the mean and sd/sqrt(n) with ddof=1.
// One observation has a mean but no SE.
func MeanSE(values []survey.Value) Group {
	xs := survey.Present(values)
	n := len(xs)
	switch n {
	case 0:
		return Group{}
	case 1:
		return Group{Mean: survey.Of(xs[0]), N: 1}
	}
	mean, variance := stat.MeanVariance(xs, nil)
	return Group{
		Mean: survey.Of(mean),
		SE:   survey.Of(math.Sqrt(variance / float64(n))),
		N:    n,
	}
}

// IndependentDifference is a - b with se = sqrt(se_a² + se_b²).
func IndependentDifference(a, b Group) Comparison {
	if !survey.AllValid(a.Mean, b.Mean) {
		return Comparison{}
	}
	c := Comparison{Diff: survey.Of(a.Mean.V - b.Mean.V)}
	if !survey.AllValid(a.SE, b.SE) {
		return c
	}
	c.SE = survey.Of(math.Hypot(a.SE.V, b.SE.V))
	c.T = ratio(c.Diff, c.SE)
	return c
}

// PooledDifference is the equal-variance two-sample t-test of mean(a) - mean(b).
func PooledDifference(a, b []survey.Value) Comparison {
	xa, xb := survey.Present(a), survey.Present(b)
	na, nb := float64(len(xa)), float64(len(xb))
	if len(xa) == 0 || len(xb) == 0 {
		return Comparison{}
	}
	ma, va := stat.MeanVariance(xa, nil)
	mb, vb := stat.MeanVariance(xb, nil)
	c := Comparison{Diff: survey.Of(ma - mb)}
	if len(xa) < 2 || len(xb) < 2 {
		return c
	}

	df := na + nb - 2
	pooled := ((na-1)*va + (nb-1)*vb) / df
	c.SE = positive(math.Sqrt(pooled * (1/na + 1/nb)))
	c.T = ratio(c.Diff, c.SE)
	return c
}

// ProportionDifference is the pooled-proportion test statistic of
// countA/nA - countB/nB. Missing when a group is empty or the pooled
// proportion is 0 or 1.
func ProportionDifference(countA, nA, countB, nB int) survey.Value {
	if nA <= 0 || nB <= 0 {
		return survey.Missing
	}
	pa := float64(countA) / float64(nA)
	pb := float64(countB) / float64(nB)
	p := float64(countA+countB) / float64(nA+nB)
	if p <= 0 || p >= 1 {
		return survey.Missing
	}
	se := math.Sqrt(p * (1 - p) * (1/float64(nA) + 1/float64(nB)))
	return ratio(survey.Of(pa-pb), survey.Of(se))
}

// Proportion is count/n as a percentage with its binomial standard error.
func Proportion(count, n int) Group {
	if n <= 0 {
		return Group{}
	}
	p := float64(count) / float64(n)
	return Group{
		Mean: survey.Of(p * 100),
		SE:   survey.Of(math.Sqrt(p*(1-p)/float64(n)) * 100),
		N:    n,
	}
}

// Tally counts present values and how many of them are non-zero.
func Tally(values []survey.Value) (count, n int) {
	for _, v := range values {
		if !v.Valid {
			continue
		}
		n++
		if v.V != 0 {
			count++
		}
	}
	return count, n
}

// PairedChange is MeanSE of after-before over rows where both are present.
func PairedChange(before, after []survey.Value) Group {
	n := len(before)
	if len(after) < n {
		n = len(after)
	}
	diffs := make([]survey.Value, 0, n)
	for i := 0; i < n; i++ {
		if before[i].Valid && after[i].Valid {
			diffs = append(diffs, survey.Of(after[i].V-before[i].V))
		}
	}
	return MeanSE(diffs)
}

func ratio(num, den survey.Value) survey.Value {
	if !survey.AllValid(num, den) || den.V == 0 {
		return survey.Missing
	}
	return survey.Of(num.V / den.V)
}

func positive(x float64) survey.Value {
	if x > 0 {
		return survey.Of(x)
	}
	return survey.Missing
}
