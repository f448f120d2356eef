package derive

import (
	"math"

	"github.com/farxc/fastfood_minwage/internal/survey"
)

const (
	// OldMinimum is the federal minimum in force at wave 1.
	OldMinimum = 4.25
	// NewMinimum is the New Jersey minimum in force at wave 2.
	NewMinimum = 5.05
	// DefaultTolerance is the default window of BinaryWageIndicator.
	DefaultTolerance = 0.01
	// CentTolerance distinguishes wages one cent apart.
	CentTolerance = 0.005
)

// WageGap is the proportional raise a store needs to reach newMinimum.
// Pennsylvania stores are outside the law and always get 0.
func WageGap(state survey.State, wage survey.Value, newMinimum float64) survey.Value {
	if state != survey.StateNJ {
		if state == survey.StatePA {
			return survey.Of(0)
		}
		return survey.Missing
	}
	if !wage.Valid || wage.V <= 0 {
		return survey.Missing
	}
	if wage.V >= newMinimum {
		return survey.Of(0)
	}
	return survey.Of((newMinimum - wage.V) / wage.V)
}

// BinaryWageIndicator is 100 when |wage-target| < tolerance and 0 otherwise,
// so averaging it gives a percentage of stores.
func BinaryWageIndicator(wage survey.Value, target, tolerance float64) survey.Value {
	if !wage.Valid {
		return survey.Missing
	}
	if math.Abs(wage.V-target) < tolerance {
		return survey.Of(100)
	}
	return survey.Of(0)
}

// SlopeFormula selects how the wage profile slope is expressed.
type SlopeFormula int

const (
	// SlopePercentPerWeek is the first raise per week as a percent of the starting wage.
	SlopePercentPerWeek SlopeFormula = iota
	// SlopeDollarsPerWeek is the first raise per week in dollars.
	SlopeDollarsPerWeek
)

// weeksPerMonth converts months-to-raise into weeks.
const weeksPerMonth = 52.0 / 12.0

// MonthsToWeeks converts a months-to-raise value into weeks.
func MonthsToWeeks(months survey.Value) survey.Value {
	if !months.Valid {
		return survey.Missing
	}
	return survey.Of(months.V * weeksPerMonth)
}

// WageSlope is the first raise spread over the weeks before it is paid.
// Missing unless monthsToRaise > 0, and for the percent form wage > 0.
func WageSlope(monthsToRaise, firstRaise, wage survey.Value, formula SlopeFormula) survey.Value {
	if !survey.AllValid(monthsToRaise, firstRaise) || monthsToRaise.V <= 0 {
		return survey.Missing
	}
	perWeek := firstRaise.V / (monthsToRaise.V * weeksPerMonth)
	if formula == SlopeDollarsPerWeek {
		return survey.Of(perWeek)
	}
	if !wage.Valid || wage.V <= 0 {
		return survey.Missing
	}
	return survey.Of(perWeek / wage.V * 100)
}

// WageGroup buckets New Jersey stores by wave-1 starting wage.
type WageGroup int

const (
	WageGroupNone WageGroup = iota
	WageLow
	WageMid
	WageHigh
)

func (g WageGroup) String() string {
	switch g {
	case WageLow:
		return "$4.25"
	case WageMid:
		return "$4.26-$4.99"
	case WageHigh:
		return ">= $5.00"
	}
	return "none"
}

// ClassifyWage places a NJ store into its wage group; PA stores and missing
// wages get WageGroupNone.
func ClassifyWage(state survey.State, wage survey.Value) WageGroup {
	if state != survey.StateNJ || !wage.Valid {
		return WageGroupNone
	}
	switch {
	case math.Abs(wage.V-OldMinimum) < CentTolerance:
		return WageLow
	case wage.V >= 5.00-CentTolerance:
		return WageHigh
	case wage.V > OldMinimum:
		return WageMid
	}
	return WageGroupNone
}
