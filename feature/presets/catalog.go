package presets

import (
	"context"
	"errors"
	"fmt"

	"preset-manager/core/logger"
	"preset-manager/feature/presets/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrCatalogDisabled is returned by History when no database is configured.
var ErrCatalogDisabled = errors.New("revision catalog disabled")

// Catalog records preset revisions in the database.
// A Catalog without a database records nothing.
type Catalog struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCatalog creates a catalog on db. db may be nil.
func NewCatalog(db *gorm.DB, log *zap.Logger) *Catalog {
	return &Catalog{db: db, logger: logger.OrNop(log)}
}

// Enabled reports whether the catalog has a database.
func (c *Catalog) Enabled() bool {
	return c != nil && c.db != nil
}

// Migrate creates or updates the preset_revisions table.
func (c *Catalog) Migrate() error {
	if !c.Enabled() {
		return nil
	}
	return c.db.AutoMigrate(&models.Revision{})
}

// Record stores rev. Recording is skipped when the catalog is disabled.
func (c *Catalog) Record(ctx context.Context, rev *models.Revision) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("failed to record %s revision of %s: %w", rev.Action, rev.Preset, err)
	}
	c.logger.Debug("Recorded revision",
		zap.String("preset", rev.Preset),
		zap.String("action", rev.Action),
		zap.String("checksum", rev.Checksum),
	)
	return nil
}

// History returns the revisions of presetName (every preset when empty),
// newest first. A positive limit caps the result.
func (c *Catalog) History(ctx context.Context, presetName string, limit int) ([]models.Revision, error) {
	if !c.Enabled() {
		return nil, ErrCatalogDisabled
	}

	query := c.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if presetName != "" {
		query = query.Where("preset = ?", presetName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var revisions []models.Revision
	if err := query.Find(&revisions).Error; err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	return revisions, nil
}
