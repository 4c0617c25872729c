package domain

import "github.com/smallbiznis/petrel/internal/catalog"

// Well is the immutable master record for one wellbore. It is extracted once
// from the daily production sheet during load and never mutated afterwards.
// The parquet tags describe the exported artifact; both schemas share the
// canonical column names.
type Well struct {
	NPDWellboreCode int64  `gorm:"column:npd_wellbore_code;primaryKey" parquet:"npd_wellbore_code"`
	WellboreCode    string `gorm:"column:wellbore_code;not null" parquet:"wellbore_code"`
	WellboreName    string `gorm:"column:wellbore_name;not null" parquet:"wellbore_name"`
	NPDFieldCode    int64  `gorm:"column:npd_field_code;not null" parquet:"npd_field_code"`
	NPDFieldName    string `gorm:"column:npd_field_name;not null" parquet:"npd_field_name"`
	NPDFacilityCode int64  `gorm:"column:npd_facility_code;not null" parquet:"npd_facility_code"`
	NPDFacilityName string `gorm:"column:npd_facility_name;not null" parquet:"npd_facility_name"`
}

func (Well) TableName() string {
	return catalog.TableWells
}
