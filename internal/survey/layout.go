package survey

// Field is one column of the extract. Start and End are byte offsets into a
// fixed-width line, End exclusive.
type Field struct {
	Name  string
	Start int
	End   int
}

// Layout lists the 46 columns of public.dat in file order, with the offsets
// from the codebook.
var Layout = []Field{
	{"SHEET", 0, 3},
	{"CHAINr", 4, 5},
	{"CO_OWNED", 6, 7},
	{"STATEr", 8, 9},
	{"SOUTHJ", 10, 11},
	{"CENTRALJ", 12, 13},
	{"NORTHJ", 14, 15},
	{"PA1", 16, 17},
	{"PA2", 18, 19},
	{"SHORE", 20, 21},
	{"NCALLS", 22, 24},
	{"EMPFT", 25, 30},
	{"EMPPT", 31, 36},
	{"NMGRS", 37, 42},
	{"WAGE_ST", 43, 48},
	{"INCTIME", 49, 54},
	{"FIRSTINC", 55, 60},
	{"BONUS", 61, 62},
	{"PCTAFF", 63, 68},
	{"MEAL", 69, 70},
	{"OPEN", 71, 76},
	{"HRSOPEN", 77, 82},
	{"PSODA", 83, 88},
	{"PFRY", 89, 94},
	{"PENTREE", 95, 100},
	{"NREGS", 101, 103},
	{"NREGS11", 104, 106},
	{"TYPE2", 107, 108},
	{"STATUS2", 109, 110},
	{"DATE2", 111, 117},
	{"NCALLS2", 118, 120},
	{"EMPFT2", 121, 126},
	{"EMPPT2", 127, 132},
	{"NMGRS2", 133, 138},
	{"WAGE_ST2", 139, 144},
	{"INCTIME2", 145, 150},
	{"FIRSTIN2", 151, 156},
	{"SPECIAL2", 157, 158},
	{"MEALS2", 159, 160},
	{"OPEN2R", 161, 166},
	{"HRSOPEN2", 167, 172},
	{"PSODA2", 173, 178},
	{"PFRY2", 179, 184},
	{"PENTREE2", 185, 190},
	{"NREGS2", 191, 193},
	{"NREGS112", 194, 196},
}

// ColumnNames returns the layout names in file order.
func ColumnNames() []string {
	names := make([]string, len(Layout))
	for i, f := range Layout {
		names[i] = f.Name
	}
	return names
}
