package transform

import (
	"fmt"
	"time"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/dataset"
	productiondomain "github.com/smallbiznis/petrel/internal/production/domain"
	welldomain "github.com/smallbiznis/petrel/internal/well/domain"
)

// CoercionError reports structurally malformed input: a required column
// missing from the mapped row-set, or a key field holding text that cannot
// be coerced and has no lawful null form. Value-level failures in metric
// fields never raise it; they degrade to null.
type CoercionError struct {
	Column string
	Row    int // 1-based position in the data region, 0 for header problems
	Reason string
}

func (e *CoercionError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("column %q, row %d: %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// Wells extracts the deduplicated well master set from the mapped daily
// rows. Rows whose identifying integer fields do not coerce are discarded
// and counted; duplicates of the full attribute tuple collapse to the first
// occurrence.
func Wells(t dataset.Table) ([]welldomain.Well, int, error) {
	idx, err := requireColumns(t,
		catalog.ColNPDWellboreCode,
		catalog.ColWellboreCode,
		catalog.ColWellboreName,
		catalog.ColNPDFieldCode,
		catalog.ColNPDFieldName,
		catalog.ColNPDFacilityCode,
		catalog.ColNPDFacilityName,
	)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[welldomain.Well]struct{})
	wells := make([]welldomain.Well, 0, 32)
	discarded := 0

	for r := 0; r < t.Len(); r++ {
		code := ParseInt(t.Cell(r, idx[catalog.ColNPDWellboreCode]))
		fieldCode := ParseInt(t.Cell(r, idx[catalog.ColNPDFieldCode]))
		facilityCode := ParseInt(t.Cell(r, idx[catalog.ColNPDFacilityCode]))
		if code.Outcome != OutcomeOK || fieldCode.Outcome != OutcomeOK || facilityCode.Outcome != OutcomeOK {
			discarded++
			continue
		}

		w := welldomain.Well{
			NPDWellboreCode: code.Value,
			WellboreCode:    t.Cell(r, idx[catalog.ColWellboreCode]),
			WellboreName:    t.Cell(r, idx[catalog.ColWellboreName]),
			NPDFieldCode:    fieldCode.Value,
			NPDFieldName:    t.Cell(r, idx[catalog.ColNPDFieldName]),
			NPDFacilityCode: facilityCode.Value,
			NPDFacilityName: t.Cell(r, idx[catalog.ColNPDFacilityName]),
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		wells = append(wells, w)
	}

	return wells, discarded, nil
}

// Daily converts mapped daily rows into typed records. The date is coerced
// to a calendar date; rows whose wellbore code is null after coercion cannot
// be joined to a well and are discarded and counted.
func Daily(t dataset.Table) ([]productiondomain.DailyProduction, int, error) {
	idx, err := requireColumns(t,
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
	)
	if err != nil {
		return nil, 0, err
	}

	records := make([]productiondomain.DailyProduction, 0, t.Len())
	discarded := 0

	for r := 0; r < t.Len(); r++ {
		code := ParseInt(t.Cell(r, idx[catalog.ColNPDWellboreCode]))
		if code.Outcome != OutcomeOK {
			discarded++
			continue
		}

		date := ParseDate(t.Cell(r, idx[catalog.ColDate]))
		if date.Outcome != OutcomeOK {
			return nil, 0, &CoercionError{Column: catalog.ColDate, Row: r + 1, Reason: "value does not coerce to a calendar date"}
		}

		records = append(records, productiondomain.DailyProduction{
			Date:                 date.Value,
			NPDWellboreCode:      code.Value,
			OnStreamHours:        ParseFloat(t.Cell(r, idx[catalog.ColOnStreamHours])).Ptr(),
			AvgDownholePressure:  ParseFloat(t.Cell(r, idx[catalog.ColAvgDownholePressure])).Ptr(),
			AvgDPTubing:          ParseFloat(t.Cell(r, idx[catalog.ColAvgDPTubing])).Ptr(),
			AvgAnnulusPressure:   ParseFloat(t.Cell(r, idx[catalog.ColAvgAnnulusPressure])).Ptr(),
			AvgWellheadPressure:  ParseFloat(t.Cell(r, idx[catalog.ColAvgWellheadPressure])).Ptr(),
			AvgDownholeTemp:      ParseFloat(t.Cell(r, idx[catalog.ColAvgDownholeTemp])).Ptr(),
			AvgWellheadTemp:      ParseFloat(t.Cell(r, idx[catalog.ColAvgWellheadTemp])).Ptr(),
			AvgChokeSizePercent:  ParseFloat(t.Cell(r, idx[catalog.ColAvgChokeSizePercent])).Ptr(),
			AvgChokeUnit:         ParseText(t.Cell(r, idx[catalog.ColAvgChokeUnit])),
			DPChokeSize:          ParseFloat(t.Cell(r, idx[catalog.ColDPChokeSize])).Ptr(),
			OilVolume:            ParseFloat(t.Cell(r, idx[catalog.ColOilVolume])).Ptr(),
			GasVolume:            ParseFloat(t.Cell(r, idx[catalog.ColGasVolume])).Ptr(),
			WaterVolume:          ParseFloat(t.Cell(r, idx[catalog.ColWaterVolume])).Ptr(),
			WaterInjectionVolume: ParseFloat(t.Cell(r, idx[catalog.ColWaterInjectionVolume])).Ptr(),
			FlowKind:             ParseText(t.Cell(r, idx[catalog.ColFlowKind])),
			WellType:             ParseText(t.Cell(r, idx[catalog.ColWellType])),
		})
	}

	return records, discarded, nil
}

// Monthly converts mapped monthly rows into typed records. The leading row
// is dropped positionally when it carries measurement units. The record date
// is synthesized as the first day of (year, month); rows whose wellbore code
// is null after coercion are discarded and counted.
func Monthly(t dataset.Table, dropUnitsRow bool) ([]productiondomain.MonthlyProduction, int, error) {
	if dropUnitsRow {
		t = dataset.DropRow(t, 0)
	}

	idx, err := requireColumns(t,
		catalog.ColNPDWellboreCode,
		catalog.ColYear,
		catalog.ColMonth,
		catalog.ColOnStreamHours,
		catalog.ColOilVolumeSm3,
		catalog.ColGasVolumeSm3,
		catalog.ColWaterVolumeSm3,
		catalog.ColGasInjectionSm3,
		catalog.ColWaterInjectionSm3,
	)
	if err != nil {
		return nil, 0, err
	}

	records := make([]productiondomain.MonthlyProduction, 0, t.Len())
	discarded := 0

	for r := 0; r < t.Len(); r++ {
		code := ParseInt(t.Cell(r, idx[catalog.ColNPDWellboreCode]))
		if code.Outcome != OutcomeOK {
			discarded++
			continue
		}

		year := ParseInt(t.Cell(r, idx[catalog.ColYear]))
		if year.Outcome != OutcomeOK {
			return nil, 0, &CoercionError{Column: catalog.ColYear, Row: r + 1, Reason: "value does not coerce to a year"}
		}
		month := ParseInt(t.Cell(r, idx[catalog.ColMonth]))
		if month.Outcome != OutcomeOK || month.Value < 1 || month.Value > 12 {
			return nil, 0, &CoercionError{Column: catalog.ColMonth, Row: r + 1, Reason: "value does not coerce to a month"}
		}

		records = append(records, productiondomain.MonthlyProduction{
			Date:              Date(int(year.Value), time.Month(month.Value), 1),
			NPDWellboreCode:   code.Value,
			OnStreamHours:     ParseFloat(t.Cell(r, idx[catalog.ColOnStreamHours])).Ptr(),
			OilVolumeSm3:      ParseFloat(t.Cell(r, idx[catalog.ColOilVolumeSm3])).Ptr(),
			GasVolumeSm3:      ParseFloat(t.Cell(r, idx[catalog.ColGasVolumeSm3])).Ptr(),
			WaterVolumeSm3:    ParseFloat(t.Cell(r, idx[catalog.ColWaterVolumeSm3])).Ptr(),
			GasInjectionSm3:   ParseFloat(t.Cell(r, idx[catalog.ColGasInjectionSm3])).Ptr(),
			WaterInjectionSm3: ParseFloat(t.Cell(r, idx[catalog.ColWaterInjectionSm3])).Ptr(),
		})
	}

	return records, discarded, nil
}

func requireColumns(t dataset.Table, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, name := range names {
		i := t.Index(name)
		if i < 0 {
			return nil, &CoercionError{Column: name, Reason: "required column missing"}
		}
		idx[name] = i
	}
	return idx, nil
}
