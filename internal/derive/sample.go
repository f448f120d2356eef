package derive

import "github.com/farxc/fastfood_minwage/internal/survey"

// Filter keeps the rows for which keep returns true.
func Filter(rows []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// InAnalysisSample reports whether a store enters the employment regressions:
// it needs an employment change, and either closed or has wages in both waves.
func InAnalysisSample(r Record) bool {
	return r.EmploymentChange.Valid && (r.Closed || r.WageChange.Valid)
}

func AnalysisSample(rows []Record) []Record {
	return Filter(rows, InAnalysisSample)
}

// Complete keeps rows where every getter returns a present value.
func Complete(rows []Record, getters ...func(Record) survey.Value) []Record {
	return Filter(rows, func(r Record) bool {
		for _, get := range getters {
			if !get(r).Valid {
				return false
			}
		}
		return true
	})
}

// SameStores keeps the rows whose sheet appears in like.
func SameStores(rows, like []Record) []Record {
	sheets := make(map[int]bool, len(like))
	for _, r := range like {
		sheets[r.Sheet] = true
	}
	return Filter(rows, func(r Record) bool { return sheets[r.Sheet] })
}

// BalancedSample keeps rows with FTE in both waves.
func BalancedSample(rows []Record) []Record {
	return Complete(rows,
		func(r Record) survey.Value { return r.FTE1 },
		func(r Record) survey.Value { return r.FTE2 },
	)
}
