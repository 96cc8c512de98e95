package models

import (
	"path/filepath"
	"strings"
	"time"

	"preset-manager/core/preset"
)

// Actions recorded in the revision catalog.
const (
	ActionSave    = "save"
	ActionBackup  = "backup"
	ActionRestore = "restore"
)

// Revision is one recorded write of a preset file.
type Revision struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Preset    string    `gorm:"column:preset;size:255;index" json:"preset"` // file stem
	Action    string    `gorm:"column:action;size:16" json:"action"`
	Path      string    `gorm:"column:path;size:1024" json:"path"`
	Format    string    `gorm:"column:format;size:8" json:"format"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Version   string    `gorm:"column:version;size:32" json:"version"`
	Variant   *string   `gorm:"column:variant;size:16" json:"variant"`
	Checksum  string    `gorm:"column:checksum;size:64" json:"checksum"`
	Strips    int       `gorm:"column:strips" json:"strips"`
	Buses     int       `gorm:"column:buses" json:"buses"`
	Scenarios int       `gorm:"column:scenarios" json:"scenarios"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name.
func (Revision) TableName() string {
	return "preset_revisions"
}

// NewRevision describes an action on path. cfg may be nil when the file
// could not be loaded; only the file columns are filled then.
func NewRevision(action, path string, cfg *preset.Configuration) Revision {
	ext := filepath.Ext(path)
	rev := Revision{
		Preset: Stem(path),
		Action: action,
		Path:   path,
		Format: strings.TrimPrefix(strings.ToLower(ext), "."),
	}
	if cfg == nil {
		return rev
	}

	rev.Name = cfg.Metadata.Name
	rev.Version = cfg.Metadata.Version
	if cfg.Metadata.Variant != nil {
		v := string(*cfg.Metadata.Variant)
		rev.Variant = &v
	}
	rev.Checksum = cfg.Fingerprint()
	rev.Strips = len(cfg.Strips)
	rev.Buses = len(cfg.Buses)
	rev.Scenarios = len(cfg.Scenarios)
	return rev
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
