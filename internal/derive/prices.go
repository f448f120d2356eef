package derive

import (
	"math"

	"github.com/farxc/fastfood_minwage/internal/survey"
)

// MealPriceSum is soda + fries + entree.
func MealPriceSum(soda, fries, entree survey.Value) survey.Value {
	if !survey.AllValid(soda, fries, entree) {
		return survey.Missing
	}
	return survey.Of(soda.V + fries.V + entree.V)
}

// Difference is after - before.
func Difference(after, before survey.Value) survey.Value {
	if !survey.AllValid(after, before) {
		return survey.Missing
	}
	return survey.Of(after.V - before.V)
}

// LogChange is log(after) - log(before), defined for positive values only.
func LogChange(before, after survey.Value) survey.Value {
	if !survey.AllValid(before, after) || before.V <= 0 || after.V <= 0 {
		return survey.Missing
	}
	return survey.Of(math.Log(after.V) - math.Log(before.V))
}

// MealProgramKind picks one of the meal-program indicators.
type MealProgramKind int

const (
	LowPriceMeal MealProgramKind = iota
	FreeMeal
	CombinationMeal
)

// MealProgram is 100 when the plan offers the kind of program, 0 when it does
// not, and missing when the plan was not recorded.
func MealProgram(plan survey.MealPlan, kind MealProgramKind) survey.Value {
	if !plan.Known() {
		return survey.Missing
	}
	var offered bool
	switch kind {
	case LowPriceMeal:
		offered = plan.OffersLowPrice()
	case FreeMeal:
		offered = plan.OffersFree()
	case CombinationMeal:
		offered = plan == survey.MealBoth
	}
	if offered {
		return survey.Of(100)
	}
	return survey.Of(0)
}
