package presets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"preset-manager/core/backup"
	"preset-manager/core/codec"
	"preset-manager/core/diff"
	"preset-manager/core/library"
	"preset-manager/core/logger"
	"preset-manager/core/preset"
	"preset-manager/core/telemetry"
	"preset-manager/core/template"
	"preset-manager/feature/presets/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Options configures a Service.
type Options struct {
	// Library is the preset directory and size limit.
	Library library.Config
	// Backups copies and prunes preset files.
	Backups *backup.Manager
	// Mirror receives every backup when set.
	Mirror backup.Mirror
	// Catalog records revisions when its database is set.
	Catalog *Catalog
	// Metrics observes every operation. Defaults to telemetry.Noop().
	Metrics telemetry.Collector
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Service orchestrates the preset engine: size guard, codec routing,
// backups with retention, template synthesis and the revision catalog.
type Service struct {
	libraryDir string
	maxBytes   int64
	backups    *backup.Manager
	mirror     backup.Mirror
	catalog    *Catalog
	metrics    telemetry.Collector
	logger     *zap.Logger
	now        func() time.Time
	// fetches collapses concurrent downloads of the same backup.
	fetches    singleflight.Group
}

// Validation is the result of validating one preset file.
type Validation struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	// Stale is set when a stored checksum differs from the fingerprint.
	Stale bool `json:"stale"`
}

// String returns the acknowledgement printed for a valid preset.
func (v Validation) String() string {
	return "valid ✅ " + v.Fingerprint
}

// NewService creates a new presets service.
func NewService(opts Options) *Service {
	log := logger.OrNop(opts.Logger)
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.Noop()
	}
	maxBytes := opts.Library.MaxBytes
	if maxBytes == 0 {
		maxBytes = library.DefaultMaxBytes
	}
	backups := opts.Backups
	if backups == nil {
		backups = backup.NewManager("backups", log)
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = NewCatalog(nil, log)
	}

	return &Service{
		libraryDir: opts.Library.Dir,
		maxBytes:   maxBytes,
		backups:    backups,
		mirror:     opts.Mirror,
		catalog:    catalog,
		metrics:    metrics,
		logger:     log,
		now:        time.Now,
	}
}

// LibraryDir returns the preset library directory.
func (s *Service) LibraryDir() string {
	return s.libraryDir
}

// BackupDir returns the backup directory.
func (s *Service) BackupDir() string {
	return s.backups.Dir()
}

// Resolve maps a library-relative name to a path inside the library.
func (s *Service) Resolve(name string) (string, error) {
	return library.Resolve(s.libraryDir, name)
}

// Load reads a preset, routing by extension after the size guard.
func (s *Service) Load(path string) (cfg *preset.Configuration, err error) {
	defer s.observe("load", time.Now(), &err)

	if err := library.Guard(path, s.maxBytes); err != nil {
		return nil, err
	}
	c, err := codec.ForPath(path, s.logger)
	if err != nil {
		return nil, err
	}
	return c.Load(path)
}

// Save writes cfg to path in the format selected by its extension and
// records the revision.
func (s *Service) Save(ctx context.Context, cfg *preset.Configuration, path string) (err error) {
	defer s.observe("save", time.Now(), &err)

	c, err := codec.ForPath(path, s.logger)
	if err != nil {
		return err
	}
	if err := c.Save(cfg, path); err != nil {
		return err
	}

	rev := models.NewRevision(models.ActionSave, path, cfg)
	s.record(ctx, &rev)
	return nil
}

// Validate loads path and reports its fingerprint.
func (s *Service) Validate(path string) (*Validation, error) {
	cfg, err := s.Load(path)
	if err != nil {
		return nil, err
	}

	return &Validation{
		Path:        path,
		Fingerprint: cfg.Fingerprint(),
		Stale:       cfg.Metadata.Checksum != nil && !cfg.Verify(),
	}, nil
}

// Convert loads src and saves it to dst; the formats follow the extensions.
func (s *Service) Convert(ctx context.Context, src, dst string) (*preset.Configuration, error) {
	cfg, err := s.Load(src)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, cfg, dst); err != nil {
		return nil, err
	}

	s.logger.Info("Converted preset", zap.String("from", src), zap.String("to", dst))
	return cfg, nil
}

// Compare loads two presets and reports their differences.
func (s *Service) Compare(a, b string) (report *diff.Report, err error) {
	defer s.observe("compare", time.Now(), &err)

	left, err := s.Load(a)
	if err != nil {
		return nil, err
	}
	right, err := s.Load(b)
	if err != nil {
		return nil, err
	}
	return diff.Compare(left, right), nil
}

// Backup copies path into the backup directory, mirrors the copy when a
// mirror is configured and records the revision. Mirror failures are
// logged; the local backup still succeeds.
func (s *Service) Backup(ctx context.Context, path string) (target string, err error) {
	defer s.observe("backup", time.Now(), &err)

	target, err = s.backups.Backup(path)
	if err != nil {
		return "", err
	}

	if s.mirror != nil {
		if err := s.mirror.Upload(ctx, target); err != nil {
			s.logger.Warn("Failed to mirror backup", zap.String("backup", target), zap.Error(err))
		}
	}

	rev := models.NewRevision(models.ActionBackup, target, s.describe(path))
	rev.Preset = models.Stem(path)
	s.record(ctx, &rev)
	return target, nil
}

// Restore overwrites target with backupPath. A backup missing locally is
// fetched from the mirror first when one is configured.
func (s *Service) Restore(ctx context.Context, backupPath, target string) (err error) {
	defer s.observe("restore", time.Now(), &err)

	if s.mirror != nil {
		if _, statErr := os.Stat(backupPath); errors.Is(statErr, fs.ErrNotExist) {
			if err := s.fetch(ctx, backupPath); err != nil {
				s.logger.Warn("Backup not available from mirror", zap.String("backup", backupPath), zap.Error(err))
			}
		}
	}

	if err := s.backups.Restore(backupPath, target); err != nil {
		return err
	}

	rev := models.NewRevision(models.ActionRestore, target, s.describe(target))
	s.record(ctx, &rev)
	return nil
}

// Prune deletes backups beyond maxPerGroup per preset and removes their
// mirrored copies. It returns the deleted local paths.
func (s *Service) Prune(ctx context.Context, maxPerGroup int) (deleted []string, err error) {
	defer s.observe("prune", time.Now(), &err)

	deleted, err = s.backups.Prune(maxPerGroup)
	if err != nil {
		return nil, err
	}
	s.metrics.AddPruned(len(deleted))

	if s.mirror != nil && len(deleted) > 0 {
		if err := s.mirror.RemoveAll(ctx, deleted); err != nil {
			s.logger.Warn("Failed to remove mirrored backups", zap.Error(err))
		}
	}

	s.logger.Info("Pruned backups", zap.Int("max_per_group", maxPerGroup), zap.Int("deleted", len(deleted)))
	return deleted, nil
}

// ListBackups returns the local backups, newest first.
func (s *Service) ListBackups() ([]backup.Entry, error) {
	return s.backups.List()
}

// ListConfigs lists the library, optionally filtered by extension.
func (s *Service) ListConfigs(ext string) ([]library.Entry, error) {
	entries, err := library.List(s.libraryDir, ext)
	if err != nil {
		return nil, err
	}
	if ext == "" {
		s.metrics.SetLibrarySize(len(entries))
	}
	return entries, nil
}

// Synthesize builds a template for variant and saves it to path when path
// is not empty.
func (s *Service) Synthesize(ctx context.Context, name string, variant preset.Variant, path string) (cfg *preset.Configuration, err error) {
	defer s.observe("template", time.Now(), &err)

	cfg, err = template.Synthesize(name, variant, s.now())
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	if err := s.Save(ctx, cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// History returns the recorded revisions of a preset, newest first.
func (s *Service) History(ctx context.Context, presetName string, limit int) ([]models.Revision, error) {
	return s.catalog.History(ctx, presetName, limit)
}

// describe loads path for catalog metadata, returning nil when it cannot.
func (s *Service) describe(path string) *preset.Configuration {
	if !codec.IsSupported(path) {
		return nil
	}
	cfg, err := s.Load(path)
	if err != nil {
		s.logger.Debug("Revision recorded without metadata", zap.String("path", path), zap.Error(err))
		return nil
	}
	return cfg
}

func (s *Service) fetch(ctx context.Context, backupPath string) error {
	_, err, shared := s.fetches.Do(backupPath, func() (interface{}, error) {
		if err := os.MkdirAll(filepath.Dir(backupPath), 0o755); err != nil {
			return nil, err
		}
		if err := s.mirror.Fetch(ctx, backupPath, backupPath); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", backupPath, err)
		}
		s.logger.Info("Fetched backup from mirror", zap.String("backup", backupPath))
		return nil, nil
	})
	if shared {
		s.logger.Debug("Shared backup fetch", zap.String("backup", backupPath))
	}
	return err
}

func (s *Service) record(ctx context.Context, rev *models.Revision) {
	if err := s.catalog.Record(ctx, rev); err != nil {
		s.logger.Warn("Failed to record revision", zap.Error(err))
	}
}

func (s *Service) observe(op string, start time.Time, err *error) {
	s.metrics.ObserveOperation(op, telemetry.Outcome(*err), time.Since(start))
}
