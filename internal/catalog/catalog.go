package catalog

import "github.com/smallbiznis/petrel/internal/dataset"

// Table names are a fixed public contract; downstream query tooling joins the
// exported artifacts by these exact identifiers.
const (
	TableWells             = "wells"
	TableDailyProduction   = "daily_production"
	TableMonthlyProduction = "monthly_production"
)

// Canonical wells columns.
const (
	ColNPDWellboreCode = "npd_wellbore_code"
	ColWellboreCode    = "wellbore_code"
	ColWellboreName    = "wellbore_name"
	ColNPDFieldCode    = "npd_field_code"
	ColNPDFieldName    = "npd_field_name"
	ColNPDFacilityCode = "npd_facility_code"
	ColNPDFacilityName = "npd_facility_name"
)

// Canonical daily production columns.
const (
	ColDate                 = "date"
	ColOnStreamHours        = "on_stream_hours"
	ColAvgDownholePressure  = "avg_downhole_pressure"
	ColAvgDPTubing          = "avg_dp_tubing"
	ColAvgAnnulusPressure   = "avg_annulus_pressure"
	ColAvgWellheadPressure  = "avg_wellhead_pressure"
	ColAvgDownholeTemp      = "avg_downhole_temperature"
	ColAvgWellheadTemp      = "avg_wellhead_temperature"
	ColAvgChokeSizePercent  = "avg_choke_size_percent"
	ColAvgChokeUnit         = "avg_choke_unit"
	ColDPChokeSize          = "dp_choke_size"
	ColOilVolume            = "oil_volume"
	ColGasVolume            = "gas_volume"
	ColWaterVolume          = "water_volume"
	ColWaterInjectionVolume = "water_injection_volume"
	ColFlowKind             = "flow_kind"
	ColWellType             = "well_type"
)

// Canonical monthly production columns. Year and month are intermediate
// fields the monthly transform folds into ColDate before load.
const (
	ColOilVolumeSm3      = "oil_volume_sm3"
	ColGasVolumeSm3      = "gas_volume_sm3"
	ColWaterVolumeSm3    = "water_volume_sm3"
	ColGasInjectionSm3   = "gas_injection_sm3"
	ColWaterInjectionSm3 = "water_injection_sm3"
	ColYear              = "year"
	ColMonth             = "month"
)

// Workbook sheet names in the Volve production dataset.
const (
	SheetDaily   = "Daily Production Data"
	SheetMonthly = "Monthly Production Data"
)

// EntitySpec describes how one store table is fed from the workbook: the
// sheet it comes from and the source-to-canonical column mapping applied
// before the entity transform.
type EntitySpec struct {
	Table        string
	Sheet        string
	Mappings     []dataset.Mapping
	DropUnitsRow bool // first data row carries measurement units, not values
}

// Descriptor is the schema descriptor handed to the loader and exporter in
// place of package-global table metadata.
type Descriptor struct {
	Wells   EntitySpec
	Daily   EntitySpec
	Monthly EntitySpec
}

// LoadOrder returns the tables in dependency order: the wells master table
// must exist before either time-series table references it.
func (d Descriptor) LoadOrder() []string {
	return []string{d.Wells.Table, d.Daily.Table, d.Monthly.Table}
}

// ExportOrder returns the fixed table order used for export runs and
// manifest rows.
func (d Descriptor) ExportOrder() []string {
	return d.LoadOrder()
}

// Default returns the descriptor for the Volve workbook layout.
func Default() Descriptor {
	return Descriptor{
		Wells: EntitySpec{
			Table: TableWells,
			Sheet: SheetDaily,
			Mappings: []dataset.Mapping{
				{Source: "NPD_WELL_BORE_CODE", Target: ColNPDWellboreCode},
				{Source: "WELL_BORE_CODE", Target: ColWellboreCode},
				{Source: "NPD_WELL_BORE_NAME", Target: ColWellboreName},
				{Source: "NPD_FIELD_CODE", Target: ColNPDFieldCode},
				{Source: "NPD_FIELD_NAME", Target: ColNPDFieldName},
				{Source: "NPD_FACILITY_CODE", Target: ColNPDFacilityCode},
				{Source: "NPD_FACILITY_NAME", Target: ColNPDFacilityName},
			},
		},
		Daily: EntitySpec{
			Table: TableDailyProduction,
			Sheet: SheetDaily,
			Mappings: []dataset.Mapping{
				{Source: "DATEPRD", Target: ColDate},
				{Source: "NPD_WELL_BORE_CODE", Target: ColNPDWellboreCode},
				{Source: "ON_STREAM_HRS", Target: ColOnStreamHours},
				{Source: "AVG_DOWNHOLE_PRESSURE", Target: ColAvgDownholePressure},
				{Source: "AVG_DP_TUBING", Target: ColAvgDPTubing},
				{Source: "AVG_ANNULUS_PRESS", Target: ColAvgAnnulusPressure},
				{Source: "AVG_WHP_P", Target: ColAvgWellheadPressure},
				{Source: "AVG_DOWNHOLE_TEMPERATURE", Target: ColAvgDownholeTemp},
				{Source: "AVG_WHT_P", Target: ColAvgWellheadTemp},
				{Source: "AVG_CHOKE_SIZE_P", Target: ColAvgChokeSizePercent},
				{Source: "AVG_CHOKE_UOM", Target: ColAvgChokeUnit},
				{Source: "DP_CHOKE_SIZE", Target: ColDPChokeSize},
				{Source: "BORE_OIL_VOL", Target: ColOilVolume},
				{Source: "BORE_GAS_VOL", Target: ColGasVolume},
				{Source: "BORE_WAT_VOL", Target: ColWaterVolume},
				{Source: "BORE_WI_VOL", Target: ColWaterInjectionVolume},
				{Source: "FLOW_KIND", Target: ColFlowKind},
				{Source: "WELL_TYPE", Target: ColWellType},
			},
		},
		Monthly: EntitySpec{
			Table:        TableMonthlyProduction,
			Sheet:        SheetMonthly,
			DropUnitsRow: true,
			Mappings: []dataset.Mapping{
				{Source: "NPDCode", Target: ColNPDWellboreCode},
				{Source: "Year", Target: ColYear},
				{Source: "Month", Target: ColMonth},
				{Source: "On Stream", Target: ColOnStreamHours},
				{Source: "Oil", Target: ColOilVolumeSm3},
				{Source: "Gas", Target: ColGasVolumeSm3},
				{Source: "Water", Target: ColWaterVolumeSm3},
				{Source: "GI", Target: ColGasInjectionSm3},
				{Source: "WI", Target: ColWaterInjectionSm3},
			},
		},
	}
}
