package integrity

import (
	"context"
	"errors"

	"preset-manager/core/backup"
	"preset-manager/core/library"
	"preset-manager/core/logger"
	"preset-manager/core/storage"
	"preset-manager/feature/integrity/checks"
	"preset-manager/feature/presets/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageDisabled is returned by storage checks without a client.
	ErrStorageDisabled = errors.New("object storage is not configured")
	// ErrMirrorDisabled is returned by mirror checks without a mirror.
	ErrMirrorDisabled = errors.New("backup mirror is not enabled")
	// ErrCatalogDisabled is returned by catalog checks without a database.
	ErrCatalogDisabled = errors.New("revision catalog is not configured")
)

// Options configures a Service. Client, Mirror and DB are optional; the
// checks depending on them report themselves as disabled.
type Options struct {
	Client storage.Client
	Bucket string
	Region string
	// Folders are the bucket prefixes that must exist.
	Folders []string
	Library library.Config
	Backups *backup.Manager
	Mirror  backup.Mirror
	DB      *gorm.DB
	Logger  *zap.Logger
}

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	region  string
	folders []string
	library library.Config
	backups *backup.Manager
	mirror  backup.Mirror
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options) *Service {
	log := logger.OrNop(opts.Logger)
	backups := opts.Backups
	if backups == nil {
		backups = backup.NewManager("backups", log)
	}
	return &Service{
		client:  opts.Client,
		bucket:  opts.Bucket,
		region:  opts.Region,
		folders: opts.Folders,
		library: opts.Library,
		backups: backups,
		mirror:  opts.Mirror,
		db:      opts.DB,
		logger:  log,
	}
}

// Folders returns a copy of the required bucket folders.
func (s *Service) Folders() []string {
	return append([]string{}, s.folders...)
}

// CheckStructure returns the bucket folders that are missing.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the bucket when needed and the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	created, err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckPresets scans the preset library.
func (s *Service) CheckPresets() (*checks.LibraryReport, error) {
	return checks.ScanLibrary(s.library.Dir, s.library.MaxBytes, s.logger)
}

// FixPresets reseals stale and unsealed presets and returns the files that
// could not be rewritten.
func (s *Service) FixPresets(report *checks.LibraryReport) []string {
	files := append(append([]string{}, report.Stale...), report.Unsealed...)
	return checks.SealPresets(files, s.logger)
}

// CheckBackups scans the backup directory.
func (s *Service) CheckBackups() (*checks.BackupReport, error) {
	return checks.ScanBackups(s.backups, s.library.Dir)
}

// CheckMirror lists local backups missing from the mirror.
func (s *Service) CheckMirror(ctx context.Context) (*checks.MirrorReport, error) {
	if s.mirror == nil {
		return nil, ErrMirrorDisabled
	}
	return checks.CheckMirror(ctx, s.backups, s.mirror)
}

// FixMirror uploads the missing backups and returns those that failed.
func (s *Service) FixMirror(ctx context.Context, missing []string) ([]string, error) {
	if s.mirror == nil {
		return nil, ErrMirrorDisabled
	}
	return checks.FixMirror(ctx, s.mirror, s.logger, missing), nil
}

// CheckCatalog compares the revision table with the revision model.
func (s *Service) CheckCatalog() (*checks.CatalogReport, error) {
	if s.db == nil {
		return nil, ErrCatalogDisabled
	}
	return checks.CheckCatalog(s.db, &models.Revision{})
}

// FixCatalog migrates the revision table.
func (s *Service) FixCatalog() error {
	if s.db == nil {
		return ErrCatalogDisabled
	}
	return checks.FixCatalog(s.db, &models.Revision{})
}

// Disabled reports whether err means a check has nothing to inspect.
func Disabled(err error) bool {
	return errors.Is(err, ErrStorageDisabled) || errors.Is(err, ErrMirrorDisabled) || errors.Is(err, ErrCatalogDisabled)
}
