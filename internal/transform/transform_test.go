package transform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/dataset"
)

func wellColumns() []string {
	return []string{
		catalog.ColNPDWellboreCode,
		catalog.ColWellboreCode,
		catalog.ColWellboreName,
		catalog.ColNPDFieldCode,
		catalog.ColNPDFieldName,
		catalog.ColNPDFacilityCode,
		catalog.ColNPDFacilityName,
	}
}

func dailyColumns() []string {
	return []string{
		catalog.ColDate,
		catalog.ColNPDWellboreCode,
		catalog.ColOnStreamHours,
		catalog.ColAvgDownholePressure,
		catalog.ColAvgDPTubing,
		catalog.ColAvgAnnulusPressure,
		catalog.ColAvgWellheadPressure,
		catalog.ColAvgDownholeTemp,
		catalog.ColAvgWellheadTemp,
		catalog.ColAvgChokeSizePercent,
		catalog.ColAvgChokeUnit,
		catalog.ColDPChokeSize,
		catalog.ColOilVolume,
		catalog.ColGasVolume,
		catalog.ColWaterVolume,
		catalog.ColWaterInjectionVolume,
		catalog.ColFlowKind,
		catalog.ColWellType,
	}
}

func dailyRow(date, code string) []string {
	return []string{
		date, code,
		"24.0", "310.5", "12.1", "18.3", "95.2", "104.7", "80.1", "42.5",
		"%", "9.8", "1551.9", "233000.0", "0.0", "", "production", "OP",
	}
}

func monthlyColumns() []string {
	return []string{
		catalog.ColNPDWellboreCode,
		catalog.ColYear,
		catalog.ColMonth,
		catalog.ColOnStreamHours,
		catalog.ColOilVolumeSm3,
		catalog.ColGasVolumeSm3,
		catalog.ColWaterVolumeSm3,
		catalog.ColGasInjectionSm3,
		catalog.ColWaterInjectionSm3,
	}
}

func TestWellsDeduplicatesFullTuple(t *testing.T) {
	tbl := dataset.New(wellColumns(), [][]string{
		{"5693", "NO 15/9-F-1 C", "15/9-F-1 C", "43548", "VOLVE", "369304", "VOLVE"},
		{"5693", "NO 15/9-F-1 C", "15/9-F-1 C", "43548", "VOLVE", "369304", "VOLVE"},
		{"5769", "NO 15/9-F-12", "15/9-F-12", "43548", "VOLVE", "369304", "VOLVE"},
		{"5693", "NO 15/9-F-1 C", "15/9-F-1 C", "43548", "VOLVE", "369304", "VOLVE"},
	})

	wells, discarded, err := Wells(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 0, discarded)
	assert.Len(t, wells, 2)
	assert.Equal(t, int64(5693), wells[0].NPDWellboreCode)
	assert.Equal(t, int64(5769), wells[1].NPDWellboreCode)
	assert.Equal(t, "NO 15/9-F-1 C", wells[0].WellboreCode)
	assert.Equal(t, int64(43548), wells[0].NPDFieldCode)
}

func TestWellsDiscardsUnparsableIdentifiers(t *testing.T) {
	tbl := dataset.New(wellColumns(), [][]string{
		{"", "NO 15/9-F-1 C", "15/9-F-1 C", "43548", "VOLVE", "369304", "VOLVE"},
		{"5693", "NO 15/9-F-1 C", "15/9-F-1 C", "n/a", "VOLVE", "369304", "VOLVE"},
		{"5769", "NO 15/9-F-12", "15/9-F-12", "43548", "VOLVE", "369304", "VOLVE"},
	})

	wells, discarded, err := Wells(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 2, discarded)
	assert.Len(t, wells, 1)
	assert.Equal(t, int64(5769), wells[0].NPDWellboreCode)
}

func TestWellsAcceptsIntegralFloatCodes(t *testing.T) {
	tbl := dataset.New(wellColumns(), [][]string{
		{"5693.0", "NO 15/9-F-1 C", "15/9-F-1 C", "43548.0", "VOLVE", "369304.0", "VOLVE"},
	})

	wells, discarded, err := Wells(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 0, discarded)
	assert.Len(t, wells, 1)
	assert.Equal(t, int64(5693), wells[0].NPDWellboreCode)
}

func TestWellsRequiredColumnMissing(t *testing.T) {
	tbl := dataset.New([]string{catalog.ColNPDWellboreCode}, [][]string{{"5693"}})

	_, _, err := Wells(tbl)
	var cerr *CoercionError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, catalog.ColWellboreCode, cerr.Column)
	assert.Zero(t, cerr.Row)
}

func TestDailyCoercesMetricsLeniently(t *testing.T) {
	row := dailyRow("2008-02-13", "5693")
	row[3] = "not-a-number" // avg_downhole_pressure
	row[12] = ""            // oil_volume
	tbl := dataset.New(dailyColumns(), [][]string{row})

	records, discarded, err := Daily(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 0, discarded)
	assert.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, Date(2008, time.February, 13), rec.Date)
	assert.Equal(t, int64(5693), rec.NPDWellboreCode)
	assert.Nil(t, rec.AvgDownholePressure)
	assert.Nil(t, rec.OilVolume)
	assert.NotNil(t, rec.OnStreamHours)
	assert.Equal(t, 24.0, *rec.OnStreamHours)
	assert.Nil(t, rec.WaterInjectionVolume)
	assert.NotNil(t, rec.FlowKind)
	assert.Equal(t, "production", *rec.FlowKind)
}

func TestDailyDiscardsNullWellboreCode(t *testing.T) {
	tbl := dataset.New(dailyColumns(), [][]string{
		dailyRow("2008-02-13", "5693"),
		dailyRow("2008-02-14", ""),
		dailyRow("2008-02-15", "5693"),
	})

	records, discarded, err := Daily(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 1, discarded)
	assert.Len(t, records, 2)
}

func TestDailyRejectsUnparsableDate(t *testing.T) {
	tbl := dataset.New(dailyColumns(), [][]string{
		dailyRow("2008-02-13", "5693"),
		dailyRow("never", "5693"),
	})

	_, _, err := Daily(tbl)
	var cerr *CoercionError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, catalog.ColDate, cerr.Column)
	assert.Equal(t, 2, cerr.Row)
}

func TestMonthlyDropsUnitsRowAndNullCodes(t *testing.T) {
	rows := [][]string{
		{"", "", "", "hrs", "Sm3", "Sm3", "Sm3", "Sm3", "Sm3"},
	}
	for m := 1; m <= 12; m++ {
		rows = append(rows, []string{"5693", "2008", fmt.Sprint(m), "720", "8000.5", "1200000", "300.25", "0", "0"})
	}
	for m := 1; m <= 12; m++ {
		code := "5769"
		if m == 5 {
			code = ""
		}
		rows = append(rows, []string{code, "2008", fmt.Sprint(m), "696", "7500", "1100000", "280", "0", "0"})
	}
	tbl := dataset.New(monthlyColumns(), rows)

	records, discarded, err := Monthly(tbl, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, discarded)
	assert.Len(t, records, 23)
	assert.Equal(t, Date(2008, time.January, 1), records[0].Date)
	assert.Equal(t, int64(5693), records[0].NPDWellboreCode)
	assert.Equal(t, Date(2008, time.December, 1), records[22].Date)
	assert.Equal(t, int64(5769), records[22].NPDWellboreCode)
}

func TestMonthlyKeepsFirstRowWhenNotFlagged(t *testing.T) {
	tbl := dataset.New(monthlyColumns(), [][]string{
		{"5693", "2008", "1", "720", "8000", "1200000", "300", "0", "0"},
	})

	records, discarded, err := Monthly(tbl, false)
	assert.NoError(t, err)
	assert.Equal(t, 0, discarded)
	assert.Len(t, records, 1)
}

func TestMonthlyRejectsUnparsableYear(t *testing.T) {
	tbl := dataset.New(monthlyColumns(), [][]string{
		{"5693", "two thousand eight", "1", "720", "8000", "1200000", "300", "0", "0"},
	})

	_, _, err := Monthly(tbl, false)
	var cerr *CoercionError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, catalog.ColYear, cerr.Column)
	assert.Equal(t, 1, cerr.Row)
}

func TestMonthlyRejectsMonthOutOfRange(t *testing.T) {
	tbl := dataset.New(monthlyColumns(), [][]string{
		{"5693", "2008", "13", "720", "8000", "1200000", "300", "0", "0"},
	})

	_, _, err := Monthly(tbl, false)
	var cerr *CoercionError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, catalog.ColMonth, cerr.Column)
}

func TestMonthlyMetricsDegradeToNull(t *testing.T) {
	tbl := dataset.New(monthlyColumns(), [][]string{
		{"5693", "2008", "1", "720", "bad", "", "300", "0", "0"},
	})

	records, _, err := Monthly(tbl, false)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Nil(t, records[0].OilVolumeSm3)
	assert.Nil(t, records[0].GasVolumeSm3)
	assert.NotNil(t, records[0].WaterVolumeSm3)
	assert.Equal(t, 300.0, *records[0].WaterVolumeSm3)
}
