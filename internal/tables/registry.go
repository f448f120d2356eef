package tables

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
)

// Builder turns the survey records into one rendered table. Builders only
// read recs.
type Builder func(recs []survey.Record, appLogger *logger.Logger) (render.Table, error)

type Entry struct {
	Number int
	Name   string
	Build  Builder
}

var registry = []Entry{
	{Number: 2, Name: "means of key variables", Build: Table2},
	{Number: 3, Name: "average employment before and after", Build: Table3},
	{Number: 4, Name: "reduced-form employment models", Build: Table4},
	{Number: 5, Name: "specification tests", Build: Table5},
	{Number: 6, Name: "effects on other outcomes", Build: Table6},
	{Number: 7, Name: "reduced-form price models", Build: Table7},
	{Number: 9, Name: "extended employment models", Build: Table9},
	{Number: 10, Name: "price changes", Build: Table10},
}

// All lists every table in number order.
func All() []Entry {
	return append([]Entry(nil), registry...)
}

func Lookup(n int) (Entry, error) {
	for _, e := range registry {
		if e.Number == n {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("no table %d, available: %s", n, available())
}

// Select parses "all" or a comma-separated list of table numbers. The result
// is in number order without duplicates.
func Select(spec string) ([]Entry, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return All(), nil
	}

	seen := make(map[int]bool)
	var out []Entry
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(part), "table"))
		if err != nil {
			return nil, fmt.Errorf("invalid table %q: %w", part, err)
		}
		e, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no tables selected from %q", spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func available() string {
	nums := make([]string, len(registry))
	for i, e := range registry {
		nums[i] = strconv.Itoa(e.Number)
	}
	return strings.Join(nums, ",")
}
