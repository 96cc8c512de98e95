package models

import (
	"testing"

	"preset-manager/core/preset"

	"github.com/stretchr/testify/assert"
)

func TestNewRevision(t *testing.T) {
	cfg := &preset.Configuration{
		Metadata: preset.Metadata{Name: "Studio", Version: "1.2", Variant: preset.VariantPtr(preset.VariantBanana)},
		Strips:   []preset.Channel{{ID: 0, Parameters: []preset.Parameter{}}},
		Buses:    []preset.Channel{},
		Scenarios: []preset.Scenario{
			{Name: "default", Parameters: []preset.Parameter{}},
		},
	}

	rev := NewRevision(ActionSave, "/srv/presets/studio.XML", cfg)
	assert.Equal(t, "studio", rev.Preset)
	assert.Equal(t, "xml", rev.Format)
	assert.Equal(t, "Studio", rev.Name)
	assert.Equal(t, "1.2", rev.Version)
	assert.Equal(t, "banana", *rev.Variant)
	assert.Equal(t, cfg.Fingerprint(), rev.Checksum)
	assert.Len(t, rev.Checksum, 64)
	assert.Equal(t, 1, rev.Strips)
	assert.Equal(t, 0, rev.Buses)
	assert.Equal(t, 1, rev.Scenarios)
}

func TestNewRevision_WithoutConfiguration(t *testing.T) {
	rev := NewRevision(ActionBackup, "backups/studio_20250121_100000.json", nil)
	assert.Equal(t, "studio_20250121_100000", rev.Preset)
	assert.Equal(t, "json", rev.Format)
	assert.Empty(t, rev.Checksum)
	assert.Nil(t, rev.Variant)
}

func TestRevision_TableName(t *testing.T) {
	assert.Equal(t, "preset_revisions", Revision{}.TableName())
}
