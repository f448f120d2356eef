package derive

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/survey"
)

// DefaultPartTimeWeight counts a part-time worker as half a full-time worker.
const DefaultPartTimeWeight = 0.5

// ClosurePolicy decides what wave-2 employment a temporarily closed store gets.
// The zero value is invalid; callers must pick one.
type ClosurePolicy int

const (
	policyUnset ClosurePolicy = iota
	// TreatAsMissing drops temporarily closed stores from wave-2 statistics.
	TreatAsMissing
	// TreatAsClosed sets their wave-2 employment to zero.
	TreatAsClosed
)

func (p ClosurePolicy) Valid() bool {
	return p == TreatAsMissing || p == TreatAsClosed
}

func (p ClosurePolicy) String() string {
	switch p {
	case TreatAsMissing:
		return "treat-as-missing"
	case TreatAsClosed:
		return "treat-as-closed"
	}
	return fmt.Sprintf("ClosurePolicy(%d)", int(p))
}

// FullTimeEquivalent is fullTime + managers + weight*partTime, missing if any input is.
func FullTimeEquivalent(fullTime, partTime, managers survey.Value, partTimeWeight float64) survey.Value {
	if !survey.AllValid(fullTime, partTime, managers) {
		return survey.Missing
	}
	return survey.Of(fullTime.V + managers.V + partTimeWeight*partTime.V)
}

// ApplyClosurePolicy adjusts wave-2 FTE for the store's interview outcome.
// Permanently closed stores always get 0.
func ApplyClosurePolicy(fte2 survey.Value, status survey.Status2, policy ClosurePolicy) survey.Value {
	switch {
	case status.PermanentlyClosed():
		return survey.Of(0)
	case status.TemporarilyClosed():
		if policy == TreatAsClosed {
			return survey.Of(0)
		}
		return survey.Missing
	}
	return fte2
}

// EmploymentChange is fte2 - fte1.
func EmploymentChange(fte1, fte2 survey.Value) survey.Value {
	return Difference(fte2, fte1)
}

// ProportionalChange is 2(fte2-fte1)/(fte2+fte1), and exactly -1 when the
// store has no wave-2 employment.
func ProportionalChange(fte1, fte2 survey.Value) survey.Value {
	if !fte2.Valid {
		return survey.Missing
	}
	if fte2.V == 0 {
		return survey.Of(-1)
	}
	if !fte1.Valid || fte1.V+fte2.V == 0 {
		return survey.Missing
	}
	return survey.Of(2 * (fte2.V - fte1.V) / (fte2.V + fte1.V))
}

// FractionFullTime is fullTime/fteTotal*100 when fteTotal > 0.
func FractionFullTime(fullTime, fteTotal survey.Value) survey.Value {
	if !survey.AllValid(fullTime, fteTotal) || fteTotal.V <= 0 {
		return survey.Missing
	}
	return survey.Of(fullTime.V / fteTotal.V * 100)
}
