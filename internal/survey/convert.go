package survey

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// frameColumns holds each dataframe column once, by name.
type frameColumns map[string]series.Series

func columnsOf(df dataframe.DataFrame) frameColumns {
	names := df.Names()
	cols := make(frameColumns, len(names))
	for _, name := range names {
		cols[name] = df.Col(name)
	}
	return cols
}

// rowReader pulls typed fields out of one dataframe row and collects notes
// for anything it had to coerce to missing.
type rowReader struct {
	cols  frameColumns
	row   int
	sheet int
	notes []Note
}

func (rr *rowReader) raw(col string) (string, bool) {
	s, ok := rr.cols[col]
	if !ok {
		return "", false
	}
	elem := s.Elem(rr.row)
	if elem.IsNA() {
		return "", false
	}
	return strings.TrimSpace(elem.String()), true
}

func (rr *rowReader) note(col, raw, reason string) {
	rr.notes = append(rr.notes, Note{Sheet: rr.sheet, Column: col, Raw: raw, Reason: reason})
}

func (rr *rowReader) value(col string) Value {
	raw, ok := rr.raw(col)
	if !ok {
		return Missing
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		rr.note(col, raw, "not a number")
		return Missing
	}
	return Of(x)
}

// code reads an integral categorical field.
func (rr *rowReader) code(col string) (int, bool) {
	v := rr.value(col)
	if !v.Valid {
		return 0, false
	}
	if v.V != math.Trunc(v.V) {
		rr.note(col, v.String(), "not an integer code")
		return 0, false
	}
	return int(v.V), true
}

// flag reads a 0/1 indicator. Missing reads as false.
func (rr *rowReader) flag(col string) bool {
	c, ok := rr.code(col)
	if !ok {
		return false
	}
	switch c {
	case 0:
		return false
	case 1:
		return true
	}
	rr.note(col, strconv.Itoa(c), "indicator outside 0/1")
	return false
}

func (rr *rowReader) chain() Chain {
	c, ok := rr.code("CHAINr")
	if !ok {
		return ChainUnknown
	}
	chain, known := chainFromCode(c)
	if !known {
		rr.note("CHAINr", strconv.Itoa(c), "unknown chain code")
	}
	return chain
}

func (rr *rowReader) state() State {
	c, ok := rr.code("STATEr")
	if !ok {
		return StateUnknown
	}
	s, known := stateFromCode(c)
	if !known {
		rr.note("STATEr", strconv.Itoa(c), "unknown state code")
	}
	return s
}

func (rr *rowReader) status() Status2 {
	c, ok := rr.code("STATUS2")
	if !ok {
		return StatusMissing
	}
	s, known := statusFromCode(c)
	if !known {
		rr.note("STATUS2", strconv.Itoa(c), "unknown status code")
	}
	return s
}

func (rr *rowReader) meal(col string) MealPlan {
	c, ok := rr.code(col)
	if !ok {
		return MealMissing
	}
	m, known := mealFromCode(c)
	if !known {
		rr.note(col, strconv.Itoa(c), "unknown meal code")
	}
	return m
}

// DfToRecords converts every row of a Frame dataframe into a Record. notes[i]
// holds what was coerced to missing in row i. Columns the frame lacks read as
// missing.
func DfToRecords(df dataframe.DataFrame) (recs []Record, notes [][]Note) {
	cols := columnsOf(df)
	recs = make([]Record, df.Nrow())
	notes = make([][]Note, df.Nrow())
	for i := range recs {
		recs[i], notes[i] = rowToRecord(cols, i)
	}
	return recs, notes
}

func rowToRecord(cols frameColumns, rowIdx int) (Record, []Note) {
	rr := &rowReader{cols: cols, row: rowIdx}
	if sheet, ok := rr.code("SHEET"); ok {
		rr.sheet = sheet
	}
	for i := range rr.notes {
		rr.notes[i].Sheet = rr.sheet
	}

	rec := Record{
		Sheet:        rr.sheet,
		Chain:        rr.chain(),
		CompanyOwned: rr.flag("CO_OWNED"),
		State:        rr.state(),
		Region: Region{
			SouthJ:   rr.flag("SOUTHJ"),
			CentralJ: rr.flag("CENTRALJ"),
			NorthJ:   rr.flag("NORTHJ"),
			PA1:      rr.flag("PA1"),
			PA2:      rr.flag("PA2"),
			Shore:    rr.flag("SHORE"),
		},
		Wave1: Wave{
			Calls:         rr.value("NCALLS"),
			FullTime:      rr.value("EMPFT"),
			PartTime:      rr.value("EMPPT"),
			Managers:      rr.value("NMGRS"),
			StartingWage:  rr.value("WAGE_ST"),
			MonthsToRaise: rr.value("INCTIME"),
			FirstRaise:    rr.value("FIRSTINC"),
			Bonus:         rr.value("BONUS"),
			PctAffected:   rr.value("PCTAFF"),
			MealPlan:      rr.meal("MEAL"),
			OpenHour:      rr.value("OPEN"),
			HoursOpen:     rr.value("HRSOPEN"),
			PriceSoda:     rr.value("PSODA"),
			PriceFries:    rr.value("PFRY"),
			PriceEntree:   rr.value("PENTREE"),
			Registers:     rr.value("NREGS"),
			RegistersAt11: rr.value("NREGS11"),
		},
		Wave2: Wave{
			Calls:         rr.value("NCALLS2"),
			FullTime:      rr.value("EMPFT2"),
			PartTime:      rr.value("EMPPT2"),
			Managers:      rr.value("NMGRS2"),
			StartingWage:  rr.value("WAGE_ST2"),
			MonthsToRaise: rr.value("INCTIME2"),
			FirstRaise:    rr.value("FIRSTIN2"),
			Bonus:         rr.value("SPECIAL2"),
			PctAffected:   Missing,
			MealPlan:      rr.meal("MEALS2"),
			OpenHour:      rr.value("OPEN2R"),
			HoursOpen:     rr.value("HRSOPEN2"),
			PriceSoda:     rr.value("PSODA2"),
			PriceFries:    rr.value("PFRY2"),
			PriceEntree:   rr.value("PENTREE2"),
			Registers:     rr.value("NREGS2"),
			RegistersAt11: rr.value("NREGS112"),
		},
		Status2:       rr.status(),
		Type2:         rr.value("TYPE2"),
		InterviewDate: rr.value("DATE2"),
	}
	return rec, rr.notes
}
