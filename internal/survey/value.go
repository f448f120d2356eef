package survey

import (
	"math"
	"strconv"
)

// Value is a numeric survey field that may be missing. The zero value is missing.
type Value struct {
	V     float64
	Valid bool
}

// Missing is the absent value.
var Missing = Value{}

// Of wraps x. NaN and infinities collapse to Missing so they never leak into
// later arithmetic.
func Of(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Missing
	}
	return Value{V: x, Valid: true}
}

// Bool encodes b as 1 or 0.
func Bool(b bool) Value {
	if b {
		return Of(1)
	}
	return Of(0)
}

// Float returns the number and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.V, v.Valid
}

// Is reports whether v is present and equal to x.
func (v Value) Is(x float64) bool {
	return v.Valid && v.V == x
}

func (v Value) String() string {
	if !v.Valid {
		return "."
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// Values wraps every element of xs.
func Values(xs ...float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Of(x)
	}
	return out
}

// Present drops missing entries.
func Present(vals []Value) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.Valid {
			out = append(out, v.V)
		}
	}
	return out
}

// AllValid reports whether every argument is present.
func AllValid(vals ...Value) bool {
	for _, v := range vals {
		if !v.Valid {
			return false
		}
	}
	return true
}
