package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	assert.Equal(t, FloatResult{Value: 42.5, Outcome: OutcomeOK}, ParseFloat(" 42.5 "))
	assert.Equal(t, OutcomeBlank, ParseFloat("   ").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseFloat("n/a").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseFloat("NaN").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseFloat("+Inf").Outcome)
	assert.Nil(t, ParseFloat("").Ptr())
	assert.Equal(t, 1.5, *ParseFloat("1.5").Ptr())
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, IntResult{Value: 5693, Outcome: OutcomeOK}, ParseInt("5693"))
	assert.Equal(t, IntResult{Value: 5693, Outcome: OutcomeOK}, ParseInt("5693.0"))
	assert.Equal(t, OutcomeBlank, ParseInt("").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseInt("5693.4").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseInt("well").Outcome)
}

func TestParseDateLayouts(t *testing.T) {
	want := Date(2008, time.February, 13)
	for _, raw := range []string{
		"2008-02-13",
		"2008-02-13 00:00:00",
		"2008-02-13T00:00:00Z",
		"13-Feb-2008",
		"13.02.2008",
		"02/13/2008",
	} {
		got := ParseDate(raw)
		assert.Equal(t, OutcomeOK, got.Outcome, raw)
		assert.Equal(t, want, got.Value, raw)
	}

	assert.Equal(t, OutcomeBlank, ParseDate(" ").Outcome)
	assert.Equal(t, OutcomeInvalid, ParseDate("13th of February").Outcome)
}

func TestParseDateDiscardsTimeOfDay(t *testing.T) {
	got := ParseDate("2008-02-13 14:30:59")
	assert.Equal(t, OutcomeOK, got.Outcome)
	assert.Equal(t, Date(2008, time.February, 13), got.Value)
}

func TestParseText(t *testing.T) {
	assert.Nil(t, ParseText("  "))
	got := ParseText(" production ")
	assert.NotNil(t, got)
	assert.Equal(t, "production", *got)
}
