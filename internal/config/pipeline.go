package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/smallbiznis/petrel/internal/catalog"
)

// SourceConfig locates the production workbook and its sheets.
type SourceConfig struct {
	Path         string
	DailySheet   string
	MonthlySheet string
}

// ExportConfig shapes the columnar export stage.
type ExportConfig struct {
	OutputDir    string
	Codec        string
	Workers      int
	FailFast     bool
	ManifestName string
}

// PipelineConfig is the file-backed pipeline configuration. Environment
// variables prefixed PETREL_ override individual keys.
type PipelineConfig struct {
	Source SourceConfig
	Export ExportConfig
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Source: SourceConfig{
			Path:         "data/production/Volve production data.xlsx",
			DailySheet:   catalog.SheetDaily,
			MonthlySheet: catalog.SheetMonthly,
		},
		Export: ExportConfig{
			OutputDir:    "parquet",
			Codec:        "snappy",
			Workers:      1,
			FailFast:     false,
			ManifestName: "README.md",
		},
	}
}

// NewPipelineConfig reads pipeline.yml from the usual locations, falling
// back to defaults when no file is present.
func NewPipelineConfig() (PipelineConfig, error) {
	v := viper.New()

	v.SetConfigName("pipeline")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/petrel/config") // Volume-mounted config
	v.AddConfigPath("/etc/petrel")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("PETREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPipelineConfig()
	v.SetDefault("pipeline.source.path", defaults.Source.Path)
	v.SetDefault("pipeline.source.dailySheet", defaults.Source.DailySheet)
	v.SetDefault("pipeline.source.monthlySheet", defaults.Source.MonthlySheet)
	v.SetDefault("pipeline.export.outputDir", defaults.Export.OutputDir)
	v.SetDefault("pipeline.export.codec", defaults.Export.Codec)
	v.SetDefault("pipeline.export.workers", defaults.Export.Workers)
	v.SetDefault("pipeline.export.failFast", defaults.Export.FailFast)
	v.SetDefault("pipeline.export.manifestName", defaults.Export.ManifestName)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return PipelineConfig{}, err
		}
		// no config file, defaults apply
	}

	var cfg PipelineConfig
	if err := v.UnmarshalKey("pipeline", &cfg); err != nil {
		return PipelineConfig{}, err
	}
	if err := validatePipelineConfig(cfg); err != nil {
		return PipelineConfig{}, err
	}
	return cfg, nil
}

func validatePipelineConfig(cfg PipelineConfig) error {
	if strings.TrimSpace(cfg.Source.Path) == "" {
		return fmt.Errorf("pipeline.source.path cannot be empty")
	}
	if strings.TrimSpace(cfg.Source.DailySheet) == "" {
		return fmt.Errorf("pipeline.source.dailySheet cannot be empty")
	}
	if strings.TrimSpace(cfg.Source.MonthlySheet) == "" {
		return fmt.Errorf("pipeline.source.monthlySheet cannot be empty")
	}
	if strings.TrimSpace(cfg.Export.OutputDir) == "" {
		return fmt.Errorf("pipeline.export.outputDir cannot be empty")
	}
	if strings.TrimSpace(cfg.Export.ManifestName) == "" {
		return fmt.Errorf("pipeline.export.manifestName cannot be empty")
	}
	if cfg.Export.Workers < 1 {
		return fmt.Errorf("pipeline.export.workers must be at least 1, got %d", cfg.Export.Workers)
	}
	if _, err := ParseCodec(cfg.Export.Codec); err != nil {
		return err
	}
	return nil
}

// Codec names accepted by pipeline.export.codec.
const (
	CodecSnappy       = "snappy"
	CodecGzip         = "gzip"
	CodecZstd         = "zstd"
	CodecUncompressed = "uncompressed"
)

// ParseCodec normalizes a codec name, rejecting anything the export stage
// does not support.
func ParseCodec(name string) (string, error) {
	codec := strings.ToLower(strings.TrimSpace(name))
	switch codec {
	case CodecSnappy, CodecGzip, CodecZstd, CodecUncompressed:
		return codec, nil
	case "":
		return CodecSnappy, nil
	default:
		return "", fmt.Errorf("unsupported parquet codec %q", name)
	}
}
