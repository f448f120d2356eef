package derive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	v = survey.Of
	m = survey.Missing
)

func TestFullTimeEquivalentMissingPropagation(t *testing.T) {
	for ft := 0; ft < 2; ft++ {
		for pt := 0; pt < 2; pt++ {
			for mgr := 0; mgr < 2; mgr++ {
				got := FullTimeEquivalent(
					[2]survey.Value{m, v(10)}[ft],
					[2]survey.Value{m, v(4)}[pt],
					[2]survey.Value{m, v(1)}[mgr],
					DefaultPartTimeWeight,
				)
				anyMissing := ft == 0 || pt == 0 || mgr == 0
				assert.Equal(t, !anyMissing, got.Valid, "ft=%d pt=%d mgr=%d", ft, pt, mgr)
				if !anyMissing {
					assert.InDelta(t, 13.0, got.V, 1e-12)
				}
			}
		}
	}
}

func TestFullTimeEquivalentWeights(t *testing.T) {
	for _, w := range []float64{0.4, 0.5, 0.6} {
		got := FullTimeEquivalent(v(10), v(10), v(2), w)
		assert.InDelta(t, 12+10*w, got.V, 1e-12)
	}
}

func TestApplyClosurePolicy(t *testing.T) {
	tests := []struct {
		name   string
		fte    survey.Value
		status survey.Status2
		policy ClosurePolicy
		want   survey.Value
	}{
		{"permanent closure is zero", v(20), survey.StatusClosedPermanently, TreatAsMissing, v(0)},
		{"permanent closure ignores missing input", m, survey.StatusClosedPermanently, TreatAsClosed, v(0)},
		{"renovation as missing", v(20), survey.StatusClosedRenovation, TreatAsMissing, m},
		{"road construction as closed", v(20), survey.StatusClosedRoad, TreatAsClosed, v(0)},
		{"fire as closed", m, survey.StatusClosedFire, TreatAsClosed, v(0)},
		{"completed unchanged", v(17.5), survey.StatusCompleted, TreatAsClosed, v(17.5)},
		{"refused unchanged", m, survey.StatusRefused, TreatAsMissing, m},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyClosurePolicy(tt.fte, tt.status, tt.policy))
		})
	}
}

func TestProportionalChange(t *testing.T) {
	assert.Equal(t, v(-1), ProportionalChange(v(5), v(0)))
	assert.Equal(t, v(-1), ProportionalChange(v(0), v(0)))
	assert.Equal(t, v(-1), ProportionalChange(m, v(0)))
	assert.False(t, ProportionalChange(v(5), m).Valid)
	assert.False(t, ProportionalChange(m, v(5)).Valid)
	assert.InDelta(t, 2*(12.0-10)/22, ProportionalChange(v(10), v(12)).V, 1e-12)
	assert.False(t, ProportionalChange(v(-3), v(3)).Valid, "zero denominator")
}

func TestEmploymentChange(t *testing.T) {
	assert.Equal(t, v(2.5), EmploymentChange(v(10), v(12.5)))
	assert.False(t, EmploymentChange(m, v(1)).Valid)
}

func TestWageGap(t *testing.T) {
	assert.Equal(t, v(0), WageGap(survey.StatePA, v(4.25), NewMinimum))
	assert.Equal(t, v(0), WageGap(survey.StatePA, m, NewMinimum))
	assert.Equal(t, v(0), WageGap(survey.StateNJ, v(5.05), NewMinimum))
	assert.Equal(t, v(0), WageGap(survey.StateNJ, v(5.50), NewMinimum))
	assert.InDelta(t, 0.1882, WageGap(survey.StateNJ, v(4.25), NewMinimum).V, 1e-4)
	assert.InDelta(t, (5.05-4.25)/4.25, WageGap(survey.StateNJ, v(4.25), NewMinimum).V, 1e-12)
	assert.False(t, WageGap(survey.StateNJ, v(0), NewMinimum).Valid)
	assert.False(t, WageGap(survey.StateNJ, v(-1), NewMinimum).Valid)
	assert.False(t, WageGap(survey.StateNJ, m, NewMinimum).Valid)
	assert.False(t, WageGap(survey.StateUnknown, v(4.25), NewMinimum).Valid)
}

func TestMealPriceSumAndFraction(t *testing.T) {
	assert.InDelta(t, 3.35, MealPriceSum(v(1.1), v(1.2), v(1.05)).V, 1e-12)
	assert.False(t, MealPriceSum(v(1.1), m, v(1.05)).Valid)

	assert.InDelta(t, 50.0, FractionFullTime(v(10), v(20)).V, 1e-12)
	assert.False(t, FractionFullTime(v(10), v(0)).Valid)
	assert.False(t, FractionFullTime(m, v(20)).Valid)
}

func TestBinaryWageIndicator(t *testing.T) {
	assert.Equal(t, v(100), BinaryWageIndicator(v(4.25), 4.25, DefaultTolerance))
	assert.Equal(t, v(0), BinaryWageIndicator(v(4.50), 4.25, DefaultTolerance))
	assert.Equal(t, v(0), BinaryWageIndicator(v(4.26), 4.25, CentTolerance))
	assert.False(t, BinaryWageIndicator(m, 4.25, DefaultTolerance).Valid)
}

func TestWageSlope(t *testing.T) {
	// A 26 cent raise after 3 months on a $5.20 starting wage.
	dollars := WageSlope(v(3), v(0.26), v(5.20), SlopeDollarsPerWeek)
	assert.InDelta(t, 0.26/(3*52.0/12.0), dollars.V, 1e-12)

	pct := WageSlope(v(3), v(0.26), v(5.20), SlopePercentPerWeek)
	assert.InDelta(t, dollars.V/5.20*100, pct.V, 1e-12)

	assert.False(t, WageSlope(v(0), v(0.26), v(5.20), SlopePercentPerWeek).Valid)
	assert.False(t, WageSlope(v(3), v(0.26), v(0), SlopePercentPerWeek).Valid)
	assert.True(t, WageSlope(v(3), v(0.26), m, SlopeDollarsPerWeek).Valid)

	assert.InDelta(t, 13.0, MonthsToWeeks(v(3)).V, 1e-12)
	assert.False(t, MonthsToWeeks(m).Valid)
}

func TestClassifyWage(t *testing.T) {
	tests := []struct {
		state survey.State
		wage  survey.Value
		want  WageGroup
	}{
		{survey.StateNJ, v(4.25), WageLow},
		{survey.StateNJ, v(4.26), WageMid},
		{survey.StateNJ, v(4.99), WageMid},
		{survey.StateNJ, v(5.00), WageHigh},
		{survey.StateNJ, v(5.25), WageHigh},
		{survey.StateNJ, v(4.00), WageGroupNone},
		{survey.StateNJ, m, WageGroupNone},
		{survey.StatePA, v(4.25), WageGroupNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyWage(tt.state, tt.wage), "%s %s", tt.state, tt.wage)
	}
}

func TestMealProgram(t *testing.T) {
	assert.Equal(t, v(100), MealProgram(survey.MealBoth, CombinationMeal))
	assert.Equal(t, v(100), MealProgram(survey.MealBoth, FreeMeal))
	assert.Equal(t, v(100), MealProgram(survey.MealLowPrice, LowPriceMeal))
	assert.Equal(t, v(0), MealProgram(survey.MealFree, LowPriceMeal))
	assert.Equal(t, v(0), MealProgram(survey.MealNone, FreeMeal))
	assert.False(t, MealProgram(survey.MealMissing, FreeMeal).Valid)
}

func TestLogChange(t *testing.T) {
	assert.InDelta(t, 0.0953, LogChange(v(3.0), v(3.3)).V, 1e-4)
	assert.False(t, LogChange(v(0), v(3.3)).Valid)
	assert.False(t, LogChange(m, v(3.3)).Valid)
}

func TestNewCalculatorRejectsUnsetPolicy(t *testing.T) {
	_, err := NewCalculator(Config{PartTimeWeight: 0.5, NewMinimum: NewMinimum})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closure policy")

	_, err = NewCalculator(Config{PartTimeWeight: 1.5, Closure: TreatAsMissing, NewMinimum: NewMinimum})
	assert.Error(t, err)

	_, err = NewCalculator(Config{PartTimeWeight: 0.5, Closure: TreatAsMissing})
	assert.Error(t, err)

	calc, err := NewCalculator(DefaultConfig(TreatAsClosed))
	require.NoError(t, err)
	assert.Equal(t, TreatAsClosed, calc.Config().Closure)
}

func store(sheet int, state survey.State, wage float64) survey.Record {
	wave := func() survey.Wave {
		return survey.Wave{
			FullTime:     v(10),
			PartTime:     v(4),
			Managers:     v(1),
			StartingWage: v(wage),
			PriceSoda:    v(1),
			PriceFries:   v(1),
			PriceEntree:  v(1),
			MealPlan:     survey.MealNone,
		}
	}
	return survey.Record{
		Sheet:   sheet,
		Chain:   survey.BurgerKing,
		State:   state,
		Wave1:   wave(),
		Wave2:   wave(),
		Status2: survey.StatusCompleted,
	}
}

func TestDeriveEndToEndSyntheticExtract(t *testing.T) {
	recs := []survey.Record{
		store(1, survey.StateNJ, 4.25),
		store(2, survey.StateNJ, 5.00),
		store(3, survey.StatePA, 4.50),
		store(4, survey.StatePA, 4.75),
	}
	rows, err := DeriveAll(recs, DefaultConfig(TreatAsMissing))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for _, r := range rows {
		assert.Equal(t, v(0), r.EmploymentChange, "sheet %d", r.Sheet)
		assert.Equal(t, v(13), r.FTE1)
		assert.True(t, InAnalysisSample(r))
	}
	assert.InDelta(t, (5.05-4.25)/4.25, rows[0].WageGap.V, 1e-12)
	assert.Equal(t, v(0), rows[1].WageGap)
	assert.Equal(t, v(0), rows[2].WageGap)
	assert.Equal(t, v(0), rows[3].WageGap)
	assert.Equal(t, WageLow, rows[0].WageGroup)
	assert.Equal(t, WageHigh, rows[1].WageGroup)
	assert.Equal(t, v(1), rows[0].NJ())
	assert.Equal(t, v(0), rows[2].NJ())
}

func TestDeriveClosurePolicies(t *testing.T) {
	temp := store(9, survey.StateNJ, 4.25)
	temp.Status2 = survey.StatusClosedRenovation
	temp.Wave2.FullTime, temp.Wave2.PartTime, temp.Wave2.Managers = m, m, m
	temp.Wave2.StartingWage = m

	asMissing, err := DeriveAll([]survey.Record{temp}, DefaultConfig(TreatAsMissing))
	require.NoError(t, err)
	assert.False(t, asMissing[0].FTE2.Valid)
	assert.False(t, asMissing[0].Closed)
	assert.True(t, asMissing[0].TemporarilyClosed)
	assert.False(t, InAnalysisSample(asMissing[0]))

	asClosed, err := DeriveAll([]survey.Record{temp}, DefaultConfig(TreatAsClosed))
	require.NoError(t, err)
	r := asClosed[0]
	assert.Equal(t, v(0), r.FTE2)
	assert.Equal(t, v(-13), r.EmploymentChange)
	assert.Equal(t, v(-1), r.ProportionalChange)
	assert.True(t, r.Closed)
	assert.True(t, InAnalysisSample(r))
}

func TestDeriveExcludeManagersAndWeights(t *testing.T) {
	cfg := DefaultConfig(TreatAsMissing)
	cfg.ExcludeManagers = true
	cfg.PartTimeWeight = 0.4
	rows, err := DeriveAll([]survey.Record{store(1, survey.StatePA, 4.5)}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 11.6, rows[0].FTE1.V, 1e-12)
}

func TestSamples(t *testing.T) {
	recs := []survey.Record{store(1, survey.StateNJ, 4.25), store(2, survey.StatePA, 4.5)}
	recs[1].Wave2.FullTime = m
	rows, err := DeriveAll(recs, DefaultConfig(TreatAsMissing))
	require.NoError(t, err)

	assert.Len(t, BalancedSample(rows), 1)
	assert.Len(t, AnalysisSample(rows), 1)
	assert.Len(t, Complete(rows, func(r Record) survey.Value { return r.MealPrice2 }), 2)
}

func TestSameStores(t *testing.T) {
	recs := []survey.Record{store(1, survey.StateNJ, 4.25), store(2, survey.StatePA, 4.5), store(3, survey.StatePA, 4.75)}
	recs[1].Wave1.Managers = m
	base, err := DeriveAll(recs, DefaultConfig(TreatAsMissing))
	require.NoError(t, err)
	baseSample := AnalysisSample(base)
	require.Len(t, baseSample, 2)

	cfg := DefaultConfig(TreatAsMissing)
	cfg.ExcludeManagers = true
	noManagers, err := DeriveAll(recs, cfg)
	require.NoError(t, err)
	require.Len(t, AnalysisSample(noManagers), 3, "missing managers no longer matter")

	kept := SameStores(noManagers, baseSample)
	require.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].Sheet)
	assert.Equal(t, 3, kept[1].Sheet)
	assert.Equal(t, v(12), kept[0].FTE1)
}

func TestWriteCSV(t *testing.T) {
	recs := []survey.Record{store(1, survey.StateNJ, 4.25), store(2, survey.StatePA, 4.5)}
	recs[1].Wave2.FullTime = m
	rows, err := DeriveAll(recs, DefaultConfig(TreatAsMissing))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SHEET,STATE,CHAIN,STATUS2,FTE1,FTE2,DEMP"))
	assert.True(t, strings.HasPrefix(lines[1], "1,NJ,Burger King,completed,13,13,0,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,PA,Burger King,completed,13,.,.,"))
}
