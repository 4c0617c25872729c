package transform

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Outcome classifies a single-cell coercion: the cell held a usable value,
// was blank, or held text that does not parse as the target type.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeBlank
	OutcomeInvalid
)

// FloatResult is the outcome of coercing one cell to a float.
type FloatResult struct {
	Value   float64
	Outcome Outcome
}

// Ptr returns the nullable store representation: blank and unparsable cells
// both degrade to null.
func (r FloatResult) Ptr() *float64 {
	if r.Outcome != OutcomeOK {
		return nil
	}
	v := r.Value
	return &v
}

// IntResult is the outcome of coercing one cell to an integer.
type IntResult struct {
	Value   int64
	Outcome Outcome
}

// DateResult is the outcome of coercing one cell to a calendar date.
type DateResult struct {
	Value   time.Time
	Outcome Outcome
}

// ParseFloat coerces cell text to a float.
func ParseFloat(raw string) FloatResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return FloatResult{Outcome: OutcomeBlank}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return FloatResult{Outcome: OutcomeInvalid}
	}
	return FloatResult{Value: v, Outcome: OutcomeOK}
}

// ParseInt coerces cell text to an integer. Spreadsheet numeric cells may
// surface integers with a decimal part ("5693.0"), so integral floats are
// accepted.
func ParseInt(raw string) IntResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return IntResult{Outcome: OutcomeBlank}
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntResult{Value: v, Outcome: OutcomeOK}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return IntResult{Outcome: OutcomeInvalid}
	}
	return IntResult{Value: int64(f), Outcome: OutcomeOK}
}

// Spreadsheet cells carry dates in whichever display format the sheet was
// authored with, so several layouts are tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-Jan-2006",
	"02.01.2006",
	"01/02/2006",
	"1/2/2006",
	"1/2/06 15:04",
	"01-02-06",
}

// ParseDate coerces cell text to a UTC calendar date, discarding any
// time-of-day component.
func ParseDate(raw string) DateResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DateResult{Outcome: OutcomeBlank}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return DateResult{Value: Date(t.Year(), t.Month(), t.Day()), Outcome: OutcomeOK}
	}
	return DateResult{Outcome: OutcomeInvalid}
}

// ParseText returns the nullable store representation of a text cell: blank
// degrades to null, anything else passes through trimmed.
func ParseText(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// Date builds a UTC midnight calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
