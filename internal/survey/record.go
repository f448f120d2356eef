package survey

import "fmt"

type State int

const (
	StateUnknown State = iota
	StateNJ
	StatePA
)

// stateFromCode decodes the raw STATEr code (1 = New Jersey, 0 = Pennsylvania).
func stateFromCode(code int) (State, bool) {
	switch code {
	case 1:
		return StateNJ, true
	case 0:
		return StatePA, true
	}
	return StateUnknown, false
}

func (s State) String() string {
	switch s {
	case StateNJ:
		return "NJ"
	case StatePA:
		return "PA"
	}
	return "unknown"
}

// Chain values match the raw CHAINr codes.
type Chain int

const (
	ChainUnknown Chain = iota
	BurgerKing
	KFC
	RoyRogers
	Wendys
)

func chainFromCode(code int) (Chain, bool) {
	if code >= int(BurgerKing) && code <= int(Wendys) {
		return Chain(code), true
	}
	return ChainUnknown, false
}

func (c Chain) String() string {
	switch c {
	case BurgerKing:
		return "Burger King"
	case KFC:
		return "KFC"
	case RoyRogers:
		return "Roy Rogers"
	case Wendys:
		return "Wendy's"
	}
	return "unknown"
}

// Chains lists the known chains in code order.
var Chains = []Chain{BurgerKing, KFC, RoyRogers, Wendys}

// Status2 is the outcome of the wave-2 interview.
type Status2 int

const (
	StatusMissing Status2 = iota
	StatusRefused
	StatusCompleted
	StatusClosedRenovation
	StatusClosedPermanently
	StatusClosedRoad
	StatusClosedFire
)

var statusByCode = map[int]Status2{
	0: StatusRefused,
	1: StatusCompleted,
	2: StatusClosedRenovation,
	3: StatusClosedPermanently,
	4: StatusClosedRoad,
	5: StatusClosedFire,
}

func statusFromCode(code int) (Status2, bool) {
	s, ok := statusByCode[code]
	return s, ok
}

// Known reports whether a wave-2 status was recorded.
func (s Status2) Known() bool { return s != StatusMissing }

func (s Status2) PermanentlyClosed() bool { return s == StatusClosedPermanently }

// TemporarilyClosed covers renovation, road construction and fire closures.
func (s Status2) TemporarilyClosed() bool {
	return s == StatusClosedRenovation || s == StatusClosedRoad || s == StatusClosedFire
}

func (s Status2) String() string {
	switch s {
	case StatusRefused:
		return "refused"
	case StatusCompleted:
		return "completed"
	case StatusClosedRenovation:
		return "closed-renovation"
	case StatusClosedPermanently:
		return "permanently-closed"
	case StatusClosedRoad:
		return "closed-road-construction"
	case StatusClosedFire:
		return "closed-fire"
	}
	return "missing"
}

// MealPlan is the employee meal program.
type MealPlan int

const (
	MealMissing MealPlan = iota
	MealNone
	MealFree
	MealLowPrice
	MealBoth
)

var mealByCode = map[int]MealPlan{
	0: MealNone,
	1: MealFree,
	2: MealLowPrice,
	3: MealBoth,
}

func mealFromCode(code int) (MealPlan, bool) {
	m, ok := mealByCode[code]
	return m, ok
}

func (m MealPlan) Known() bool { return m != MealMissing }

// OffersFree reports a free-meal program, alone or combined.
func (m MealPlan) OffersFree() bool { return m == MealFree || m == MealBoth }

// OffersLowPrice reports a reduced-price program, alone or combined.
func (m MealPlan) OffersLowPrice() bool { return m == MealLowPrice || m == MealBoth }

func (m MealPlan) String() string {
	switch m {
	case MealNone:
		return "none"
	case MealFree:
		return "free"
	case MealLowPrice:
		return "low-price"
	case MealBoth:
		return "both"
	}
	return "missing"
}

// Region holds the geographic flags of a store.
type Region struct {
	SouthJ   bool
	CentralJ bool
	NorthJ   bool
	PA1      bool
	PA2      bool
	Shore    bool
}

// Wave is one interview round.
type Wave struct {
	Calls         Value
	FullTime      Value
	PartTime      Value
	Managers      Value
	StartingWage  Value
	MonthsToRaise Value
	FirstRaise    Value
	// Bonus is the recruiting bonus in wave 1 and the special program in wave 2.
	Bonus         Value
	PctAffected   Value
	MealPlan      MealPlan
	OpenHour      Value
	HoursOpen     Value
	PriceSoda     Value
	PriceFries    Value
	PriceEntree   Value
	Registers     Value
	RegistersAt11 Value
}

// Record is one establishment observed in both waves.
type Record struct {
	Sheet        int
	Chain        Chain
	CompanyOwned bool
	State        State
	Region       Region

	Wave1 Wave
	Wave2 Wave

	Status2       Status2
	Type2         Value
	InterviewDate Value
}

func (r Record) String() string {
	return fmt.Sprintf("sheet=%d chain=%s state=%s status2=%s", r.Sheet, r.Chain, r.State, r.Status2)
}
