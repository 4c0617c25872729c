package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"

	"github.com/smallbiznis/petrel/internal/config"
	"github.com/smallbiznis/petrel/internal/observability/logger"
)

// ErrMissingDatabase reports that the sqlite database file does not exist
// and the command is not allowed to create it.
var ErrMissingDatabase = errors.New("database not found")

// Open connects to the configured store and registers the close hook.
func Open(lc fx.Lifecycle, cfg config.Config, opts Options, log *zap.Logger) (*gorm.DB, error) {
	if cfg.DBType == "sqlite" {
		if err := ensureSQLitePath(cfg.DBPath, opts.AllowCreate); err != nil {
			return nil, err
		}
	}

	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(logger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBType, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	}
	if cfg.DBMaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)
	}
	if cfg.DBConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTime) * time.Second)
	}

	if err := gdb.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName))); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled && cfg.PushgatewayURL != "" {
		err := gdb.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          cfg.DBName,
			RefreshInterval: 15,
			PushAddr:        cfg.PushgatewayURL,
		}))
		if err != nil {
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("closing store", zap.String("type", cfg.DBType))
			return sqlDB.Close()
		},
	})

	return gdb, nil
}

func ensureSQLitePath(path string, allowCreate bool) error {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat database %s: %w", path, err)
		}
		if !allowCreate {
			return fmt.Errorf("%w: %s", ErrMissingDatabase, path)
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
	}
	return nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
