package cmd

import (
	"fmt"
	"strings"

	"preset-manager/core/backup"
	"preset-manager/core/config"
	"preset-manager/core/database"
	"preset-manager/core/logger"
	"preset-manager/core/storage"
	"preset-manager/core/telemetry"
	"preset-manager/feature/integrity"
	"preset-manager/feature/presets"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds everything a command needs, built from the configuration.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   storage.Client
	backups *backup.Manager
	mirror  backup.Mirror
	metrics telemetry.Collector
	presets *presets.Service
}

// bootstrap loads the configuration and wires the optional backends. The
// catalog database and the storage mirror only warn when unreachable.
// Metrics are collected only when withMetrics is set.
func bootstrap(withMetrics bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{
		cfg:     cfg,
		logger:  logg,
		backups: backup.NewManager(cfg.Backup.Dir, logg),
		metrics: telemetry.Noop(),
	}

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Debug("Connected to catalog database", zap.String("driver", cfg.Database.Driver))
		}
	}

	catalog := presets.NewCatalog(rt.db, logg)
	if catalog.Enabled() {
		if err := catalog.Migrate(); err != nil {
			logg.Warn("Failed to migrate revision catalog", zap.Error(err))
		}
	}

	if cfg.Backup.Mirror {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Failed to create storage client, mirror disabled", zap.Error(err))
		} else {
			rt.store = store
			rt.mirror = backup.NewStorageMirror(store, cfg.Storage.Bucket, cfg.Backup.Prefix, logg)
		}
	}

	if withMetrics {
		metrics, err := telemetry.New(cfg.Telemetry, prometheus.DefaultRegisterer)
		if err != nil {
			logg.Warn("Metrics disabled", zap.Error(err))
		} else {
			rt.metrics = metrics
		}
	}

	opts := presets.Options{
		Library: cfg.Library,
		Backups: rt.backups,
		Catalog: catalog,
		Metrics: rt.metrics,
		Logger:  logg,
	}
	if rt.mirror != nil {
		opts.Mirror = rt.mirror
	}
	rt.presets = presets.NewService(opts)

	return rt, nil
}

// integrity builds the integrity service over the runtime's backends.
func (rt *runtime) integrity() *integrity.Service {
	var folders []string
	if prefix := strings.TrimSuffix(rt.cfg.Backup.Prefix, "/"); prefix != "" {
		folders = append(folders, prefix)
	}

	opts := integrity.Options{
		Bucket:  rt.cfg.Storage.Bucket,
		Region:  rt.cfg.Storage.Region,
		Folders: folders,
		Library: rt.cfg.Library,
		Backups: rt.backups,
		DB:      rt.db,
		Logger:  rt.logger,
	}
	if rt.store != nil {
		opts.Client = rt.store
	}
	if rt.mirror != nil {
		opts.Mirror = rt.mirror
	}
	return integrity.NewService(opts)
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
