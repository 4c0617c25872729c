package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/clock"
	"github.com/smallbiznis/petrel/internal/config"
	"github.com/smallbiznis/petrel/internal/dataset"
	integrityservice "github.com/smallbiznis/petrel/internal/integrity/service"
	loaderdomain "github.com/smallbiznis/petrel/internal/loader/domain"
	"github.com/smallbiznis/petrel/internal/migration"
	"github.com/smallbiznis/petrel/internal/source"
	"github.com/smallbiznis/petrel/internal/transform"
)

var dailyHeader = []string{
	"DATEPRD", "WELL_BORE_CODE", "NPD_WELL_BORE_CODE", "NPD_WELL_BORE_NAME",
	"NPD_FIELD_CODE", "NPD_FIELD_NAME", "NPD_FACILITY_CODE", "NPD_FACILITY_NAME",
	"ON_STREAM_HRS", "AVG_DOWNHOLE_PRESSURE", "AVG_DP_TUBING", "AVG_ANNULUS_PRESS",
	"AVG_WHP_P", "AVG_DOWNHOLE_TEMPERATURE", "AVG_WHT_P", "AVG_CHOKE_SIZE_P",
	"AVG_CHOKE_UOM", "DP_CHOKE_SIZE", "BORE_OIL_VOL", "BORE_GAS_VOL",
	"BORE_WAT_VOL", "BORE_WI_VOL", "FLOW_KIND", "WELL_TYPE",
}

var monthlyHeader = []string{
	"Wellbore name", "NPDCode", "Year", "Month", "On Stream",
	"Oil", "Gas", "Water", "GI", "WI",
}

func dailyFixtureRow(date, code string) []string {
	well := "NO 15/9-F-1 C"
	name := "15/9-F-1 C"
	if code == "5769" {
		well = "NO 15/9-F-12"
		name = "15/9-F-12"
	}
	return []string{
		date, well, code, name,
		"43548", "VOLVE", "369304", "VOLVE",
		"24", "310.5", "12.1", "18.3",
		"95.2", "104.7", "80.1", "42.5",
		"%", "9.8", "1551.9", "233000", "120.5", "", "production", "OP",
	}
}

func writeWorkbook(t *testing.T, daily, monthly [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	for sheet, rows := range map[string][][]string{
		catalog.SheetDaily:   daily,
		catalog.SheetMonthly: monthly,
	} {
		_, err := f.NewSheet(sheet)
		assert.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			assert.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			assert.NoError(t, f.SetSheetRow(sheet, cell, &values))
		}
	}
	assert.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "volve.xlsx")
	assert.NoError(t, f.SaveAs(path))
	assert.NoError(t, f.Close())
	return path
}

func defaultFixture(t *testing.T) string {
	daily := [][]string{
		dailyHeader,
		dailyFixtureRow("2008-02-13", "5693"),
		dailyFixtureRow("2008-02-14", "5693"),
		dailyFixtureRow("2008-02-13", "5769"),
		dailyFixtureRow("2008-02-15", ""), // no wellbore code, not loadable
	}
	monthly := [][]string{
		monthlyHeader,
		{"", "", "", "", "hrs", "Sm3", "Sm3", "Sm3", "Sm3", "Sm3"},
		{"15/9-F-1 C", "5693", "2008", "2", "696", "8000.5", "1200000", "300.25", "0", "0"},
		{"15/9-F-12", "5769", "2008", "2", "720", "7500", "1100000", "280", "0", "0"},
		{"15/9-F-12", "", "2008", "3", "720", "7500", "1100000", "280", "0", "0"},
	}
	return writeWorkbook(t, daily, monthly)
}

func newStore(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	sqlDB, err := gdb.DB()
	assert.NoError(t, err)
	assert.NoError(t, migration.RunMigrations(sqlDB, "sqlite"))
	return gdb
}

func newService(db *gorm.DB, workbookPath string) loaderdomain.Service {
	pipeline := config.DefaultPipelineConfig()
	pipeline.Source.Path = workbookPath

	return NewService(ServiceParam{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     clock.New(),
		Pipeline:  pipeline,
		Validator: integrityservice.NewService(integrityservice.ServiceParam{DB: db, Log: zap.NewNop()}),
	})
}

func tableCount(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var count int64
	assert.NoError(t, db.Table(table).Count(&count).Error)
	return count
}

func TestLoadEndToEnd(t *testing.T) {
	db := newStore(t)
	svc := newService(db, defaultFixture(t))

	summary, err := svc.Load(context.Background(), loaderdomain.LoadRequest{})
	assert.NoError(t, err)
	assert.Len(t, summary.RunID, 26)
	assert.True(t, summary.Report.Passed())

	assert.Equal(t, int64(2), tableCount(t, db, catalog.TableWells))
	assert.Equal(t, int64(3), tableCount(t, db, catalog.TableDailyProduction))
	assert.Equal(t, int64(2), tableCount(t, db, catalog.TableMonthlyProduction))

	assert.Equal(t, []loaderdomain.StageSummary{
		{Table: catalog.TableWells, Loaded: 2, Discarded: 1},
		{Table: catalog.TableDailyProduction, Loaded: 3, Discarded: 1},
		{Table: catalog.TableMonthlyProduction, Loaded: 2, Discarded: 1},
	}, summary.Stages)
	assert.Equal(t, int64(7), summary.Loaded())
	assert.Equal(t, int64(3), summary.Discarded())
}

func TestLoadMissingWorkbook(t *testing.T) {
	db := newStore(t)
	svc := newService(db, filepath.Join(t.TempDir(), "absent.xlsx"))

	_, err := svc.Load(context.Background(), loaderdomain.LoadRequest{})
	assert.ErrorIs(t, err, source.ErrSourceNotFound)
}

func TestLoadRequestOverridesConfiguredPath(t *testing.T) {
	db := newStore(t)
	svc := newService(db, filepath.Join(t.TempDir(), "absent.xlsx"))

	summary, err := svc.Load(context.Background(), loaderdomain.LoadRequest{SourcePath: defaultFixture(t)})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), tableCount(t, db, catalog.TableWells))
	assert.NotEmpty(t, summary.SourcePath)
}

func TestLoadMissingColumnFails(t *testing.T) {
	header := make([]string, 0, len(dailyHeader)-1)
	for _, col := range dailyHeader {
		if col == "NPD_WELL_BORE_CODE" {
			continue
		}
		header = append(header, col)
	}
	daily := [][]string{header}
	monthly := [][]string{monthlyHeader}
	db := newStore(t)
	svc := newService(db, writeWorkbook(t, daily, monthly))

	_, err := svc.Load(context.Background(), loaderdomain.LoadRequest{})
	var merr *dataset.MissingColumnError
	assert.ErrorAs(t, err, &merr)
	assert.Equal(t, "NPD_WELL_BORE_CODE", merr.Column)
}

func TestLoadBadDailyDateFails(t *testing.T) {
	daily := [][]string{
		dailyHeader,
		dailyFixtureRow("not a date", "5693"),
	}
	monthly := [][]string{monthlyHeader}
	db := newStore(t)
	svc := newService(db, writeWorkbook(t, daily, monthly))

	_, err := svc.Load(context.Background(), loaderdomain.LoadRequest{})
	var cerr *transform.CoercionError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, catalog.ColDate, cerr.Column)

	// nothing may be committed when any stage fails
	assert.Equal(t, int64(0), tableCount(t, db, catalog.TableWells))
}

func TestLoadTwiceRollsBack(t *testing.T) {
	db := newStore(t)
	fixture := defaultFixture(t)
	svc := newService(db, fixture)

	_, err := svc.Load(context.Background(), loaderdomain.LoadRequest{})
	assert.NoError(t, err)

	_, err = svc.Load(context.Background(), loaderdomain.LoadRequest{})
	assert.Error(t, err)
	assert.Equal(t, int64(2), tableCount(t, db, catalog.TableWells))
	assert.Equal(t, int64(3), tableCount(t, db, catalog.TableDailyProduction))
}
