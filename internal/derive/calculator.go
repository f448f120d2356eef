package derive

import (
	"fmt"

	"github.com/farxc/fastfood_minwage/internal/survey"
)

// Config fixes every policy choice that changes a derived value.
type Config struct {
	PartTimeWeight  float64
	Closure         ClosurePolicy
	NewMinimum      float64
	ExcludeManagers bool
	Slope           SlopeFormula
}

// DefaultConfig is half-weight part-timers, managers counted, the $5.05 minimum
// and the percent-per-week slope. The closure policy is always the caller's.
func DefaultConfig(policy ClosurePolicy) Config {
	return Config{
		PartTimeWeight: DefaultPartTimeWeight,
		Closure:        policy,
		NewMinimum:     NewMinimum,
		Slope:          SlopePercentPerWeek,
	}
}

func (c Config) validate() error {
	if !c.Closure.Valid() {
		return fmt.Errorf("closure policy must be chosen explicitly, got %s", c.Closure)
	}
	if c.PartTimeWeight < 0 || c.PartTimeWeight > 1 {
		return fmt.Errorf("part-time weight %v outside [0, 1]", c.PartTimeWeight)
	}
	if c.NewMinimum <= 0 {
		return fmt.Errorf("new minimum wage must be positive, got %v", c.NewMinimum)
	}
	return nil
}

// Record is a survey record with every derived indicator. Built once by a
// Calculator; nothing downstream writes to it.
type Record struct {
	survey.Record

	FTE1 survey.Value
	// FTE2 has the closure policy applied.
	FTE2               survey.Value
	EmploymentChange   survey.Value
	ProportionalChange survey.Value

	WageGap    survey.Value
	WageChange survey.Value
	WageGroup  WageGroup
	WageSlope1 survey.Value
	WageSlope2 survey.Value

	MealPrice1     survey.Value
	MealPrice2     survey.Value
	PriceChange    survey.Value
	LogPriceChange survey.Value

	FractionFullTime1 survey.Value
	FractionFullTime2 survey.Value

	// Closed is true for permanent closures, and for temporary ones under TreatAsClosed.
	Closed            bool
	TemporarilyClosed bool
}

// NJ is the New Jersey dummy: 1, 0, or missing for an unknown state.
func (r Record) NJ() survey.Value {
	switch r.State {
	case survey.StateNJ:
		return survey.Of(1)
	case survey.StatePA:
		return survey.Of(0)
	}
	return survey.Missing
}

// Calculator derives Records under one Config.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid derive config: %w", err)
	}
	return &Calculator{cfg: cfg}, nil
}

func (c *Calculator) Config() Config { return c.cfg }

func (c *Calculator) fte(w survey.Wave) survey.Value {
	managers := w.Managers
	if c.cfg.ExcludeManagers {
		managers = survey.Of(0)
	}
	return FullTimeEquivalent(w.FullTime, w.PartTime, managers, c.cfg.PartTimeWeight)
}

func (c *Calculator) Derive(rec survey.Record) Record {
	w1, w2 := rec.Wave1, rec.Wave2
	tempClosed := rec.Status2.TemporarilyClosed()

	out := Record{
		Record:            rec,
		FTE1:              c.fte(w1),
		FTE2:              ApplyClosurePolicy(c.fte(w2), rec.Status2, c.cfg.Closure),
		WageGap:           WageGap(rec.State, w1.StartingWage, c.cfg.NewMinimum),
		WageChange:        Difference(w2.StartingWage, w1.StartingWage),
		WageGroup:         ClassifyWage(rec.State, w1.StartingWage),
		WageSlope1:        WageSlope(w1.MonthsToRaise, w1.FirstRaise, w1.StartingWage, c.cfg.Slope),
		WageSlope2:        WageSlope(w2.MonthsToRaise, w2.FirstRaise, w2.StartingWage, c.cfg.Slope),
		MealPrice1:        MealPriceSum(w1.PriceSoda, w1.PriceFries, w1.PriceEntree),
		MealPrice2:        MealPriceSum(w2.PriceSoda, w2.PriceFries, w2.PriceEntree),
		TemporarilyClosed: tempClosed,
		Closed:            rec.Status2.PermanentlyClosed() || (tempClosed && c.cfg.Closure == TreatAsClosed),
	}
	if tempClosed && c.cfg.Closure == TreatAsClosed {
		// Treated as a closure, so no wage comparison exists; zero keeps it in the analysis sample.
		out.WageChange = survey.Of(0)
	}

	out.EmploymentChange = EmploymentChange(out.FTE1, out.FTE2)
	out.ProportionalChange = ProportionalChange(out.FTE1, out.FTE2)
	out.PriceChange = Difference(out.MealPrice2, out.MealPrice1)
	out.LogPriceChange = LogChange(out.MealPrice1, out.MealPrice2)
	out.FractionFullTime1 = FractionFullTime(w1.FullTime, out.FTE1)
	out.FractionFullTime2 = FractionFullTime(w2.FullTime, out.FTE2)
	return out
}

func (c *Calculator) DeriveAll(recs []survey.Record) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = c.Derive(rec)
	}
	return out
}

// DeriveAll builds a Calculator from cfg and derives every record.
func DeriveAll(recs []survey.Record, cfg Config) ([]Record, error) {
	calc, err := NewCalculator(cfg)
	if err != nil {
		return nil, err
	}
	return calc.DeriveAll(recs), nil
}
