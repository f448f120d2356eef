package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfRejectsNonFinite(t *testing.T) {
	assert.False(t, Of(math.NaN()).Valid)
	assert.False(t, Of(math.Inf(1)).Valid)
	assert.True(t, Of(0).Valid)
	assert.Equal(t, Missing, Value{})
}

func TestValueHelpers(t *testing.T) {
	vals := []Value{Of(1), Missing, Of(3)}
	assert.Equal(t, []float64{1, 3}, Present(vals))
	assert.False(t, AllValid(vals...))
	assert.True(t, AllValid(Of(1), Of(2)))
	assert.True(t, Of(4.25).Is(4.25))
	assert.False(t, Missing.Is(0))
	assert.Equal(t, ".", Missing.String())
	assert.Equal(t, "4.25", Of(4.25).String())
	assert.Equal(t, Of(1), Bool(true))
}

func TestStatusClassification(t *testing.T) {
	for _, s := range []Status2{StatusClosedRenovation, StatusClosedRoad, StatusClosedFire} {
		assert.True(t, s.TemporarilyClosed(), s.String())
		assert.False(t, s.PermanentlyClosed(), s.String())
	}
	assert.True(t, StatusClosedPermanently.PermanentlyClosed())
	assert.False(t, StatusCompleted.TemporarilyClosed())
	assert.False(t, StatusMissing.Known())
}

func TestCodeDecoding(t *testing.T) {
	s, ok := stateFromCode(1)
	assert.True(t, ok)
	assert.Equal(t, StateNJ, s)
	s, ok = stateFromCode(0)
	assert.True(t, ok)
	assert.Equal(t, StatePA, s)
	_, ok = stateFromCode(2)
	assert.False(t, ok)

	c, ok := chainFromCode(4)
	assert.True(t, ok)
	assert.Equal(t, Wendys, c)

	m, ok := mealFromCode(0)
	assert.True(t, ok)
	assert.Equal(t, MealNone, m)
	assert.True(t, MealBoth.OffersFree())
	assert.True(t, MealBoth.OffersLowPrice())
	assert.False(t, MealFree.OffersLowPrice())
}
