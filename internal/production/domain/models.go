package domain

import (
	"time"

	"github.com/smallbiznis/petrel/internal/catalog"
)

// DailyProduction is one day of production measurements for one wellbore.
// Metric fields are pointers: a nil value is a legitimate sensor gap and is
// stored as NULL, then preserved as a Parquet null on export.
type DailyProduction struct {
	Date            time.Time `gorm:"column:date;type:date;primaryKey;index:ix_daily_date" parquet:"date,timestamp(millisecond)"`
	NPDWellboreCode int64     `gorm:"column:npd_wellbore_code;primaryKey;index:ix_daily_wellbore" parquet:"npd_wellbore_code"`

	OnStreamHours       *float64 `gorm:"column:on_stream_hours" parquet:"on_stream_hours"`
	AvgDownholePressure *float64 `gorm:"column:avg_downhole_pressure" parquet:"avg_downhole_pressure"`
	AvgDPTubing         *float64 `gorm:"column:avg_dp_tubing" parquet:"avg_dp_tubing"`
	AvgAnnulusPressure  *float64 `gorm:"column:avg_annulus_pressure" parquet:"avg_annulus_pressure"`
	AvgWellheadPressure *float64 `gorm:"column:avg_wellhead_pressure" parquet:"avg_wellhead_pressure"`
	AvgDownholeTemp     *float64 `gorm:"column:avg_downhole_temperature" parquet:"avg_downhole_temperature"`
	AvgWellheadTemp     *float64 `gorm:"column:avg_wellhead_temperature" parquet:"avg_wellhead_temperature"`
	AvgChokeSizePercent *float64 `gorm:"column:avg_choke_size_percent" parquet:"avg_choke_size_percent"`
	AvgChokeUnit        *string  `gorm:"column:avg_choke_unit" parquet:"avg_choke_unit"`
	DPChokeSize         *float64 `gorm:"column:dp_choke_size" parquet:"dp_choke_size"`

	OilVolume            *float64 `gorm:"column:oil_volume" parquet:"oil_volume"`
	GasVolume            *float64 `gorm:"column:gas_volume" parquet:"gas_volume"`
	WaterVolume          *float64 `gorm:"column:water_volume" parquet:"water_volume"`
	WaterInjectionVolume *float64 `gorm:"column:water_injection_volume" parquet:"water_injection_volume"`

	FlowKind *string `gorm:"column:flow_kind" parquet:"flow_kind"`
	WellType *string `gorm:"column:well_type" parquet:"well_type"`
}

func (DailyProduction) TableName() string {
	return catalog.TableDailyProduction
}

// MonthlyProduction is one month of production aggregates for one wellbore.
// Date is normalized to the first day of the month.
type MonthlyProduction struct {
	Date            time.Time `gorm:"column:date;type:date;primaryKey;index:ix_monthly_date" parquet:"date,timestamp(millisecond)"`
	NPDWellboreCode int64     `gorm:"column:npd_wellbore_code;primaryKey;index:ix_monthly_wellbore" parquet:"npd_wellbore_code"`

	OnStreamHours     *float64 `gorm:"column:on_stream_hours" parquet:"on_stream_hours"`
	OilVolumeSm3      *float64 `gorm:"column:oil_volume_sm3" parquet:"oil_volume_sm3"`
	GasVolumeSm3      *float64 `gorm:"column:gas_volume_sm3" parquet:"gas_volume_sm3"`
	WaterVolumeSm3    *float64 `gorm:"column:water_volume_sm3" parquet:"water_volume_sm3"`
	GasInjectionSm3   *float64 `gorm:"column:gas_injection_sm3" parquet:"gas_injection_sm3"`
	WaterInjectionSm3 *float64 `gorm:"column:water_injection_sm3" parquet:"water_injection_sm3"`
}

func (MonthlyProduction) TableName() string {
	return catalog.TableMonthlyProduction
}
