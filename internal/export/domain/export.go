package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnwritableOutput reports that the output directory cannot be written.
// The exporter probes before any table work starts so a permission problem
// never costs a full table scan.
var ErrUnwritableOutput = errors.New("output directory is not writable")

// RowCountMismatchError reports that the parquet footer of a freshly written
// artifact disagrees with the rows read from the store. The artifact is
// discarded, never promoted.
type RowCountMismatchError struct {
	Table        string
	StoreRows    int64
	ArtifactRows int64
}

func (e *RowCountMismatchError) Error() string {
	return fmt.Sprintf("%s: store has %d rows but artifact footer reports %d",
		e.Table, e.StoreRows, e.ArtifactRows)
}

// Metadata describes one promoted artifact.
type Metadata struct {
	Table      string
	Path       string
	Rows       int64
	SizeBytes  int64
	ExportedAt time.Time
}

// TableResult pairs a table with either its promoted artifact metadata or
// the error that stopped it.
type TableResult struct {
	Table    string
	Metadata *Metadata
	Err      error
}

// ExportRequest overrides the configured export parameters for one run.
// Zero values fall back to configuration; FailFast can only tighten it.
type ExportRequest struct {
	OutputDir string
	Codec     string
	Workers   int
	FailFast  bool
}

// Summary is the outcome of a full export run. Results hold every table in
// the fixed export order regardless of individual failures.
type Summary struct {
	RunID        string
	OutputDir    string
	Results      []TableResult
	ManifestPath string
	Duration     time.Duration
}

// Succeeded returns metadata for every promoted artifact, in export order.
func (s *Summary) Succeeded() []Metadata {
	out := make([]Metadata, 0, len(s.Results))
	for _, result := range s.Results {
		if result.Err == nil && result.Metadata != nil {
			out = append(out, *result.Metadata)
		}
	}
	return out
}

// Failed returns the results that did not promote an artifact.
func (s *Summary) Failed() []TableResult {
	out := make([]TableResult, 0, len(s.Results))
	for _, result := range s.Results {
		if result.Err != nil {
			out = append(out, result)
		}
	}
	return out
}

// Service exports store tables to parquet artifacts with a write-validate-
// rename protocol, and maintains the manifest describing them.
type Service interface {
	Export(ctx context.Context, req ExportRequest) (*Summary, error)
}
