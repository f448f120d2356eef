package regress

import (
	"errors"
	"math"
	"testing"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name string, xs ...float64) Column {
	return Column{Name: name, Values: survey.Values(xs...)}
}

func TestFitSimpleRegression(t *testing.T) {
	y := col("y", 2, 4, 5, 4, 5)
	x := col("x", 1, 2, 3, 4, 5)

	m, err := Fit(y, []Column{x})
	require.NoError(t, err)

	assert.Equal(t, []string{Intercept, "x"}, m.Names)
	assert.Equal(t, 5, m.N)
	assert.Equal(t, 3, m.DFResid)

	b0, se0 := m.Coef(Intercept)
	b1, se1 := m.Coef("x")
	assert.InDelta(t, 2.2, b0.V, 1e-9)
	assert.InDelta(t, 0.6, b1.V, 1e-9)
	assert.InDelta(t, math.Sqrt(0.88), se0.V, 1e-9)
	assert.InDelta(t, math.Sqrt(0.08), se1.V, 1e-9)
	assert.InDelta(t, math.Sqrt(0.8), m.ResidualStdError, 1e-9)
	assert.InDelta(t, 0.6, m.RSquared, 1e-9)
	assert.InDelta(t, 4.0, m.ResponseMean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.2), m.ResponseStd, 1e-12)

	assert.InDelta(t, 0.6/math.Sqrt(0.08), m.TStat("x").V, 1e-9)
	p := m.PValue("x")
	require.True(t, p.Valid)
	assert.InDelta(t, 0.124, p.V, 2e-3)
}

func TestFitDropsIncompleteRows(t *testing.T) {
	y := Column{Name: "y", Values: []survey.Value{survey.Of(2), survey.Of(4), survey.Of(5), survey.Of(4), survey.Of(5), survey.Missing, survey.Of(9)}}
	x := Column{Name: "x", Values: []survey.Value{survey.Of(1), survey.Of(2), survey.Of(3), survey.Of(4), survey.Of(5), survey.Of(6), survey.Missing}}

	m, err := Fit(y, []Column{x})
	require.NoError(t, err)
	assert.Equal(t, 5, m.N)
	b1, _ := m.Coef("x")
	assert.InDelta(t, 0.6, b1.V, 1e-9)
}

func TestFitWithFilter(t *testing.T) {
	y := col("y", 2, 4, 5, 4, 5, 100)
	x := col("x", 1, 2, 3, 4, 5, 6)

	m, err := Fit(y, []Column{x}, WithFilter([]bool{true, true, true, true, true, false}))
	require.NoError(t, err)
	b1, _ := m.Coef("x")
	assert.InDelta(t, 0.6, b1.V, 1e-9)
}

func TestFitWeightedMatchesDuplicatedRows(t *testing.T) {
	y := col("y", 2, 4, 5, 4, 5)
	x := col("x", 1, 2, 3, 4, 5)
	weighted, err := Fit(y, []Column{x}, WithWeights(survey.Values(1, 1, 1, 1, 2)))
	require.NoError(t, err)
	assert.True(t, weighted.Weighted)

	dup, err := Fit(col("y", 2, 4, 5, 4, 5, 5), []Column{col("x", 1, 2, 3, 4, 5, 5)})
	require.NoError(t, err)

	for _, name := range []string{Intercept, "x"} {
		wb, _ := weighted.Coef(name)
		db, _ := dup.Coef(name)
		assert.InDelta(t, db.V, wb.V, 1e-9, name)
	}
}

func TestFitWeightsDropNonPositive(t *testing.T) {
	y := col("y", 2, 4, 5, 4, 5, 50)
	x := col("x", 1, 2, 3, 4, 5, 6)
	m, err := Fit(y, []Column{x}, WithWeights([]survey.Value{survey.Of(1), survey.Of(1), survey.Of(1), survey.Of(1), survey.Of(1), survey.Of(0)}))
	require.NoError(t, err)
	assert.Equal(t, 5, m.N)
}

func TestFitInsufficientData(t *testing.T) {
	_, err := Fit(col("y", 1), []Column{col("x", 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	var ide *InsufficientDataError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, 1, ide.Rows)
	assert.Equal(t, 2, ide.Params)
}

func TestFitExactlyIdentified(t *testing.T) {
	m, err := Fit(col("y", 1, 3), []Column{col("x", 0, 1)})
	require.NoError(t, err)
	b, se := m.Coef("x")
	assert.InDelta(t, 2.0, b.V, 1e-9)
	assert.False(t, se.Valid)
	assert.False(t, m.SER().Valid)
	assert.False(t, JointTest(m, []string{"x"}).Valid)
}

func TestFitSingular(t *testing.T) {
	x := col("x", 1, 2, 3, 4, 5)
	x2 := col("x2", 2, 4, 6, 8, 10)
	_, err := Fit(col("y", 2, 4, 5, 4, 5), []Column{x, x2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestFitLengthMismatch(t *testing.T) {
	_, err := Fit(col("y", 1, 2, 3), []Column{col("x", 1, 2)})
	assert.Error(t, err)
}

func TestJointTest(t *testing.T) {
	y := col("y", 2, 4, 5, 4, 5)
	x := col("x", 1, 2, 3, 4, 5)
	m, err := Fit(y, []Column{x})
	require.NoError(t, err)

	// One restriction: the F-test equals the two-sided t-test.
	assert.InDelta(t, m.PValue("x").V, JointTest(m, []string{"x"}).V, 1e-9)
	assert.InDelta(t, m.PValue("x").V, JointTest(m, []string{"x", "absent"}).V, 1e-9)
	assert.False(t, JointTest(m, []string{"absent"}).Valid)
	assert.False(t, JointTest(nil, []string{"x"}).Valid)
}

func TestJointTestTwoRestrictions(t *testing.T) {
	y := col("y", 3, 1, 4, 1, 5, 9, 2, 6, 5, 3)
	x1 := col("x1", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	x2 := col("x2", 0, 1, 0, 1, 0, 1, 0, 1, 0, 1)
	m, err := Fit(y, []Column{x1, x2})
	require.NoError(t, err)

	p := JointTest(m, []string{"x1", "x2"})
	require.True(t, p.Valid)
	assert.True(t, p.V > 0 && p.V <= 1)
	assert.False(t, JointTest(m, []string{"x3"}).Valid, "unknown names are ignored")
}
