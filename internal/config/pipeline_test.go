package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineDefaultsWhenNoFile(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := NewPipelineConfig()
	assert.NoError(t, err)
	assert.Equal(t, DefaultPipelineConfig(), cfg)
}

func TestPipelineFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yml := `pipeline:
  source:
    path: /srv/volve/production.xlsx
  export:
    codec: gzip
    workers: 3
    failFast: true
`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "pipeline.yml"), []byte(yml), 0o644))

	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := NewPipelineConfig()
	assert.NoError(t, err)
	assert.Equal(t, "/srv/volve/production.xlsx", cfg.Source.Path)
	assert.Equal(t, "gzip", cfg.Export.Codec)
	assert.Equal(t, 3, cfg.Export.Workers)
	assert.True(t, cfg.Export.FailFast)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultPipelineConfig().Source.DailySheet, cfg.Source.DailySheet)
	assert.Equal(t, "README.md", cfg.Export.ManifestName)
}

func TestPipelineRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	yml := `pipeline:
  export:
    codec: brotli
`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "pipeline.yml"), []byte(yml), 0o644))

	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = NewPipelineConfig()
	assert.Error(t, err)
}

func TestParseCodec(t *testing.T) {
	codec, err := ParseCodec(" Snappy ")
	assert.NoError(t, err)
	assert.Equal(t, CodecSnappy, codec)

	codec, err = ParseCodec("")
	assert.NoError(t, err)
	assert.Equal(t, CodecSnappy, codec)

	_, err = ParseCodec("lz4")
	assert.Error(t, err)
}
