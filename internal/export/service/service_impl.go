package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/smallbiznis/petrel/internal/catalog"
	"github.com/smallbiznis/petrel/internal/clock"
	"github.com/smallbiznis/petrel/internal/config"
	"github.com/smallbiznis/petrel/internal/export/domain"
	"github.com/smallbiznis/petrel/internal/observability/logger"
	productiondomain "github.com/smallbiznis/petrel/internal/production/domain"
	"github.com/smallbiznis/petrel/internal/runmetrics"
	welldomain "github.com/smallbiznis/petrel/internal/well/domain"
	"github.com/smallbiznis/petrel/pkg/repository"
	"github.com/smallbiznis/petrel/pkg/runid"
)

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Pipeline config.PipelineConfig
	Metrics  *runmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	cfg     config.PipelineConfig
	metrics *runmetrics.Metrics
	desc    catalog.Descriptor
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("export.service"),
		clock:   p.Clock,
		cfg:     p.Pipeline,
		metrics: p.Metrics,
		desc:    catalog.Default(),
	}
}

// settings are the effective parameters for one run after request overrides
// are merged onto configuration.
type settings struct {
	outputDir string
	codec     parquet.WriterOption
	codecName string
	workers   int
	failFast  bool
	manifest  string
}

func (s *Service) resolve(req domain.ExportRequest) (settings, error) {
	eff := settings{
		outputDir: s.cfg.Export.OutputDir,
		codecName: s.cfg.Export.Codec,
		workers:   s.cfg.Export.Workers,
		failFast:  s.cfg.Export.FailFast || req.FailFast,
		manifest:  s.cfg.Export.ManifestName,
	}
	if req.OutputDir != "" {
		eff.outputDir = req.OutputDir
	}
	if req.Codec != "" {
		eff.codecName = req.Codec
	}
	if req.Workers > 0 {
		eff.workers = req.Workers
	}
	if eff.workers < 1 {
		eff.workers = 1
	}
	name, err := config.ParseCodec(eff.codecName)
	if err != nil {
		return settings{}, err
	}
	eff.codecName = name
	eff.codec = codecOption(name)
	return eff, nil
}

func codecOption(name string) parquet.WriterOption {
	switch name {
	case config.CodecGzip:
		return parquet.Compression(&parquet.Gzip)
	case config.CodecZstd:
		return parquet.Compression(&parquet.Zstd)
	case config.CodecUncompressed:
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// ensureWritableDir creates the output directory if needed and proves it is
// writable with a throwaway probe file.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnwritableOutput, err)
	}
	probe, err := os.CreateTemp(dir, ".petrel-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnwritableOutput, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

func (s *Service) Export(ctx context.Context, req domain.ExportRequest) (*domain.Summary, error) {
	start := s.clock.Now()
	ctx, runID := runid.Ensure(ctx)
	log := logger.WithRun(s.log, runID)

	eff, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	if err := ensureWritableDir(eff.outputDir); err != nil {
		return nil, err
	}

	log.Info("export starting",
		zap.String("output_dir", eff.outputDir),
		zap.String("codec", eff.codecName),
		zap.Int("workers", eff.workers),
		zap.Bool("fail_fast", eff.failFast),
	)

	order := s.desc.ExportOrder()
	results := make([]domain.TableResult, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(eff.workers)
	for i, table := range order {
		results[i].Table = table
		g.Go(func() error {
			meta, err := s.exportTable(gctx, table, eff)
			if err != nil {
				results[i].Err = err
				s.metrics.IncExportFailures(table)
				log.Error("table export failed", zap.String("table", table), zap.Error(err))
				if eff.failFast {
					return err
				}
				return nil
			}
			results[i].Metadata = meta
			s.metrics.SetExportRows(table, meta.Rows)
			s.metrics.SetExportBytes(table, meta.SizeBytes)
			log.Info("table exported",
				zap.String("table", table),
				zap.Int64("rows", meta.Rows),
				zap.Int64("bytes", meta.SizeBytes),
				zap.String("path", meta.Path),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		RunID:     runID,
		OutputDir: eff.outputDir,
		Results:   results,
	}

	manifestPath, err := s.writeManifest(eff.outputDir, eff.manifest, summary.Succeeded())
	if err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	summary.ManifestPath = manifestPath

	summary.Duration = s.clock.Now().Sub(start)
	s.metrics.ObserveStageDuration("export", summary.Duration)
	log.Info("export finished",
		zap.Int("exported", len(summary.Succeeded())),
		zap.Int("failed", len(summary.Failed())),
		zap.String("manifest", manifestPath),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (s *Service) exportTable(ctx context.Context, table string, eff settings) (*domain.Metadata, error) {
	switch table {
	case s.desc.Wells.Table:
		return exportRows[welldomain.Well](ctx, s, table, eff)
	case s.desc.Daily.Table:
		return exportRows[productiondomain.DailyProduction](ctx, s, table, eff)
	case s.desc.Monthly.Table:
		return exportRows[productiondomain.MonthlyProduction](ctx, s, table, eff)
	default:
		return nil, fmt.Errorf("unknown export table %q", table)
	}
}

// exportRows writes one table to a temporary artifact, validates the
// artifact footer against the rows it just wrote, and only then renames it
// over the final path. A failed validation deletes the temporary file and
// leaves any previous artifact untouched.
func exportRows[T any](ctx context.Context, s *Service, table string, eff settings) (meta *domain.Metadata, err error) {
	repo := repository.ProvideStore[T](s.db)
	rows, err := repo.Find(ctx, new(T))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	finalPath := filepath.Join(eff.outputDir, table+".parquet")
	tempPath := finalPath + ".tmp"

	promoted := false
	defer func() {
		if !promoted {
			os.Remove(tempPath)
		}
	}()

	if err := writeParquet(tempPath, rows, eff.codec); err != nil {
		return nil, fmt.Errorf("write %s: %w", table, err)
	}

	artifactRows, err := parquetRowCount(tempPath)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", table, err)
	}
	if artifactRows != int64(len(rows)) {
		return nil, &domain.RowCountMismatchError{
			Table:        table,
			StoreRows:    int64(len(rows)),
			ArtifactRows: artifactRows,
		}
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		return nil, fmt.Errorf("promote %s: %w", table, err)
	}
	promoted = true

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", table, err)
	}
	return &domain.Metadata{
		Table:      table,
		Path:       finalPath,
		Rows:       int64(len(rows)),
		SizeBytes:  info.Size(),
		ExportedAt: s.clock.Now(),
	}, nil
}

func writeParquet[T any](path string, rows []T, codec parquet.WriterOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewGenericWriter[T](f, codec)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parquetRowCount re-opens the artifact from disk and returns the row count
// recorded in its footer. Reading back what was just written catches
// truncated or corrupt files before they replace a good artifact.
func parquetRowCount(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return 0, err
	}
	return pf.NumRows(), nil
}

var _ domain.Service = (*Service)(nil)
