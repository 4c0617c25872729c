package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/smallbiznis/petrel/internal/export/domain"
)

// Marker comments delimit the region of the manifest that gets regenerated.
// Everything outside the markers is user-owned and preserved across runs.
const (
	manifestStartMarker = "<!-- START_METADATA_TABLE -->"
	manifestEndMarker   = "<!-- END_METADATA_TABLE -->"
)

const manifestTimeLayout = "2006-01-02 15:04:05"

// writeManifest renders the metadata table for this run and writes the
// manifest file. An existing manifest carrying the markers is used as its
// own template so hand-written sections survive re-exports.
func (s *Service) writeManifest(dir, name string, entries []domain.Metadata) (string, error) {
	path := filepath.Join(dir, name)

	existing := ""
	if raw, err := os.ReadFile(path); err == nil {
		existing = string(raw)
	} else if !os.IsNotExist(err) {
		return "", err
	}

	content := renderManifest(existing, renderMetadataTable(entries))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func renderMetadataTable(entries []domain.Metadata) string {
	lines := []string{
		"| Table Name | Rows | File Size (MB) | Last Updated |",
		"| :--- | :--- | :--- | :--- |",
	}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("| %s | %s | %.4f | %s |",
			e.Table,
			humanize.Comma(e.Rows),
			float64(e.SizeBytes)/(1024*1024),
			e.ExportedAt.Format(manifestTimeLayout),
		))
	}
	return strings.Join(lines, "\n")
}

func renderManifest(existing, table string) string {
	start := strings.Index(existing, manifestStartMarker)
	end := strings.Index(existing, manifestEndMarker)
	if start >= 0 && end > start {
		var b strings.Builder
		b.WriteString(existing[:start])
		b.WriteString(manifestStartMarker)
		b.WriteString("\n")
		b.WriteString(table)
		b.WriteString("\n")
		b.WriteString(manifestEndMarker)
		b.WriteString(existing[end+len(manifestEndMarker):])
		return b.String()
	}

	lines := []string{
		"# Volve Parquet Exports",
		"",
		"This directory contains Parquet exports of the Volve production database tables.",
		"",
		"## Export Metadata",
		"",
		table,
		"",
		"## Usage",
		"",
		"See project root README.md for usage instructions.",
	}
	return strings.Join(lines, "\n")
}
