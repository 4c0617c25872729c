package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/integrity/domain"
	"github.com/smallbiznis/petrel/internal/runmetrics"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *runmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *runmetrics.Metrics
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("integrity.service"),
		metrics: p.Metrics,
	}
}

// Validate runs every integrity check and reports all findings.
func (s *Service) Validate(ctx context.Context) (domain.Report, error) {
	checks := []func(context.Context) (domain.CheckResult, error){
		s.checkTablesPopulated,
		s.checkDailyOrphans,
		s.checkMonthlyOrphans,
		s.checkDailyDuplicates,
		s.checkMonthlyDuplicates,
	}

	report := domain.Report{Results: make([]domain.CheckResult, 0, len(checks))}
	for _, check := range checks {
		result, err := check(ctx)
		if err != nil {
			return domain.Report{}, err
		}
		report.Results = append(report.Results, result)
		s.metrics.SetIntegrityViolations(result.Name, result.Violations)

		if result.Passed {
			s.log.Info("integrity check passed", zap.String("check", result.Name))
			continue
		}
		s.log.Warn("integrity check failed",
			zap.String("check", result.Name),
			zap.Int64("violations", result.Violations),
			zap.String("detail", result.Detail),
		)
	}
	return report, nil
}

func (s *Service) checkTablesPopulated(ctx context.Context) (domain.CheckResult, error) {
	result := domain.CheckResult{Name: domain.CheckTablesPopulated, Passed: true}

	for _, table := range []string{catalog.TableWells, catalog.TableDailyProduction, catalog.TableMonthlyProduction} {
		var count int64
		err := s.db.WithContext(ctx).Table(table).Count(&count).Error
		if err != nil {
			return domain.CheckResult{}, fmt.Errorf("count %s: %w", table, err)
		}
		if count == 0 {
			result.Passed = false
			result.Violations++
			if result.Detail != "" {
				result.Detail += "; "
			}
			result.Detail += fmt.Sprintf("table %s is empty", table)
		}
	}
	return result, nil
}

func (s *Service) checkDailyOrphans(ctx context.Context) (domain.CheckResult, error) {
	return s.checkOrphans(ctx, domain.CheckDailyOrphans, catalog.TableDailyProduction)
}

func (s *Service) checkMonthlyOrphans(ctx context.Context) (domain.CheckResult, error) {
	return s.checkOrphans(ctx, domain.CheckMonthlyOrphans, catalog.TableMonthlyProduction)
}

// checkOrphans counts production rows whose wellbore code has no well
// master record.
func (s *Service) checkOrphans(ctx context.Context, name, table string) (domain.CheckResult, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s p LEFT JOIN %s w ON p.%s = w.%s WHERE w.%s IS NULL",
		table, catalog.TableWells,
		catalog.ColNPDWellboreCode, catalog.ColNPDWellboreCode, catalog.ColNPDWellboreCode,
	)

	var orphans int64
	if err := s.db.WithContext(ctx).Raw(query).Scan(&orphans).Error; err != nil {
		return domain.CheckResult{}, fmt.Errorf("%s: %w", name, err)
	}

	result := domain.CheckResult{Name: name, Passed: orphans == 0, Violations: orphans}
	if orphans > 0 {
		result.Detail = fmt.Sprintf("%d %s rows reference wellbore codes missing from %s", orphans, table, catalog.TableWells)
	}
	return result, nil
}

func (s *Service) checkDailyDuplicates(ctx context.Context) (domain.CheckResult, error) {
	return s.checkDuplicates(ctx, domain.CheckDailyDuplicates, catalog.TableDailyProduction)
}

func (s *Service) checkMonthlyDuplicates(ctx context.Context) (domain.CheckResult, error) {
	return s.checkDuplicates(ctx, domain.CheckMonthlyDuplicates, catalog.TableMonthlyProduction)
}

// checkDuplicates counts (date, wellbore) pairs occurring more than once.
// Each duplicated pair counts as one violation regardless of how many rows
// share it.
func (s *Service) checkDuplicates(ctx context.Context, name, table string) (domain.CheckResult, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM (SELECT %s, %s FROM %s GROUP BY %s, %s HAVING COUNT(*) > 1) dup",
		catalog.ColDate, catalog.ColNPDWellboreCode, table,
		catalog.ColDate, catalog.ColNPDWellboreCode,
	)

	var pairs int64
	if err := s.db.WithContext(ctx).Raw(query).Scan(&pairs).Error; err != nil {
		return domain.CheckResult{}, fmt.Errorf("%s: %w", name, err)
	}

	result := domain.CheckResult{Name: name, Passed: pairs == 0, Violations: pairs}
	if pairs > 0 {
		result.Detail = fmt.Sprintf("%d (date, wellbore) pairs appear more than once in %s", pairs, table)
	}
	return result, nil
}
