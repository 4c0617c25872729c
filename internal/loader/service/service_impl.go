package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/clock"
	"github.com/smallbiznis/petrel/internal/config"
	"github.com/smallbiznis/petrel/internal/dataset"
	integritydomain "github.com/smallbiznis/petrel/internal/integrity/domain"
	loaderdomain "github.com/smallbiznis/petrel/internal/loader/domain"
	"github.com/smallbiznis/petrel/internal/observability/logger"
	productiondomain "github.com/smallbiznis/petrel/internal/production/domain"
	"github.com/smallbiznis/petrel/internal/runmetrics"
	"github.com/smallbiznis/petrel/internal/source"
	"github.com/smallbiznis/petrel/internal/transform"
	welldomain "github.com/smallbiznis/petrel/internal/well/domain"
	"github.com/smallbiznis/petrel/pkg/db"
	"github.com/smallbiznis/petrel/pkg/repository"
	"github.com/smallbiznis/petrel/pkg/runid"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Pipeline  config.PipelineConfig
	Validator integritydomain.Service
	Metrics   *runmetrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	pipeline  config.PipelineConfig
	validator integritydomain.Service
	metrics   *runmetrics.Metrics
	desc      catalog.Descriptor

	wellRepo    repository.Repository[welldomain.Well]
	dailyRepo   repository.Repository[productiondomain.DailyProduction]
	monthlyRepo repository.Repository[productiondomain.MonthlyProduction]
}

func NewService(p ServiceParam) loaderdomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("loader.service"),
		clock:     p.Clock,
		pipeline:  p.Pipeline,
		validator: p.Validator,
		metrics:   p.Metrics,
		desc:      catalog.Default(),

		wellRepo:    repository.ProvideStore[welldomain.Well](p.DB),
		dailyRepo:   repository.ProvideStore[productiondomain.DailyProduction](p.DB),
		monthlyRepo: repository.ProvideStore[productiondomain.MonthlyProduction](p.DB),
	}
}

// Load reads the workbook, transforms both sheets, writes all three tables
// in one transaction in dependency order, then validates the store.
func (s *Service) Load(ctx context.Context, req loaderdomain.LoadRequest) (*loaderdomain.Summary, error) {
	start := s.clock.Now()
	ctx, runID := runid.Ensure(ctx)
	log := logger.WithRun(s.log, runID)

	path := req.SourcePath
	if path == "" {
		path = s.pipeline.Source.Path
	}
	log.Info("load started", zap.String("source", path))

	wb, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	dailyRaw, err := wb.Sheet(s.pipeline.Source.DailySheet)
	if err != nil {
		return nil, err
	}
	monthlyRaw, err := wb.Sheet(s.pipeline.Source.MonthlySheet)
	if err != nil {
		return nil, err
	}

	wells, wellsDiscarded, err := s.transformWells(dailyRaw)
	if err != nil {
		return nil, err
	}
	daily, dailyDiscarded, err := s.transformDaily(dailyRaw)
	if err != nil {
		return nil, err
	}
	monthly, monthlyDiscarded, err := s.transformMonthly(monthlyRaw)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wellRepo.WithTrx(tx).BatchCreate(ctx, wells); err != nil {
			return s.wrapInsertErr(catalog.TableWells, err)
		}
		if err := s.dailyRepo.WithTrx(tx).BatchCreate(ctx, daily); err != nil {
			return s.wrapInsertErr(catalog.TableDailyProduction, err)
		}
		if err := s.monthlyRepo.WithTrx(tx).BatchCreate(ctx, monthly); err != nil {
			return s.wrapInsertErr(catalog.TableMonthlyProduction, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stages := []loaderdomain.StageSummary{
		{Table: catalog.TableWells, Loaded: int64(len(wells)), Discarded: int64(wellsDiscarded)},
		{Table: catalog.TableDailyProduction, Loaded: int64(len(daily)), Discarded: int64(dailyDiscarded)},
		{Table: catalog.TableMonthlyProduction, Loaded: int64(len(monthly)), Discarded: int64(monthlyDiscarded)},
	}
	for _, stage := range stages {
		s.metrics.AddRowsLoaded(stage.Table, stage.Loaded)
		s.metrics.AddRowsDiscarded(stage.Table, stage.Discarded)
		log.Info("table loaded",
			zap.String("table", stage.Table),
			zap.Int64("rows", stage.Loaded),
			zap.Int64("discarded", stage.Discarded),
		)
	}

	report, err := s.validator.Validate(ctx)
	if err != nil {
		return nil, err
	}

	duration := s.clock.Now().Sub(start)
	s.metrics.ObserveStageDuration("load", duration)
	log.Info("load finished",
		zap.Bool("integrity_passed", report.Passed()),
		zap.Duration("duration", duration),
	)

	return &loaderdomain.Summary{
		RunID:      runID,
		SourcePath: path,
		Stages:     stages,
		Report:     report,
		Duration:   duration,
	}, nil
}

func (s *Service) transformWells(raw dataset.Table) ([]welldomain.Well, int, error) {
	mapped, err := dataset.Select(raw, s.desc.Wells.Mappings)
	if err != nil {
		return nil, 0, fmt.Errorf("map %s: %w", catalog.TableWells, err)
	}
	return transform.Wells(mapped)
}

func (s *Service) transformDaily(raw dataset.Table) ([]productiondomain.DailyProduction, int, error) {
	mapped, err := dataset.Select(raw, s.desc.Daily.Mappings)
	if err != nil {
		return nil, 0, fmt.Errorf("map %s: %w", catalog.TableDailyProduction, err)
	}
	return transform.Daily(mapped)
}

func (s *Service) transformMonthly(raw dataset.Table) ([]productiondomain.MonthlyProduction, int, error) {
	mapped, err := dataset.Select(raw, s.desc.Monthly.Mappings)
	if err != nil {
		return nil, 0, fmt.Errorf("map %s: %w", catalog.TableMonthlyProduction, err)
	}
	return transform.Monthly(mapped, s.desc.Monthly.DropUnitsRow)
}

func (s *Service) wrapInsertErr(table string, err error) error {
	if db.IsDuplicateKeyErr(err) {
		return fmt.Errorf("insert %s: store already contains these rows: %w", table, err)
	}
	return fmt.Errorf("insert %s: %w", table, err)
}
