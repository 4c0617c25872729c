package domain

import (
	"context"
	"time"

	integritydomain "github.com/smallbiznis/petrel/internal/integrity/domain"
)

// LoadRequest overrides the configured workbook location for one run. An
// empty path means the configured default.
type LoadRequest struct {
	SourcePath string
}

// StageSummary reports one table's load outcome.
type StageSummary struct {
	Table     string
	Loaded    int64
	Discarded int64
}

// Summary is the outcome of a full load run.
type Summary struct {
	RunID      string
	SourcePath string
	Stages     []StageSummary
	Report     integritydomain.Report
	Duration   time.Duration
}

// Loaded returns the total rows written across all stages.
func (s *Summary) Loaded() int64 {
	var total int64
	for _, stage := range s.Stages {
		total += stage.Loaded
	}
	return total
}

// Discarded returns the total source rows dropped across all stages.
func (s *Summary) Discarded() int64 {
	var total int64
	for _, stage := range s.Stages {
		total += stage.Discarded
	}
	return total
}

// Service runs the workbook ingestion pipeline: read, map, transform, load
// in dependency order, then validate.
type Service interface {
	Load(ctx context.Context, req LoadRequest) (*Summary, error)
}
