package checks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"preset-manager/core/codec"
	"preset-manager/core/preset"
	"preset-manager/core/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTemplate(t *testing.T, path string, mutate func(*preset.Configuration)) {
	t.Helper()
	cfg, err := template.Synthesize("Studio", preset.VariantBasic, time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	c, err := codec.ForPath(path, nil)
	require.NoError(t, err)
	require.NoError(t, c.Save(cfg, path))
}

func TestScanLibrary(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, filepath.Join(dir, "valid.xml"), nil)
	writeTemplate(t, filepath.Join(dir, "sealed.json"), nil)
	writeTemplate(t, filepath.Join(dir, "stale.yaml"), func(cfg *preset.Configuration) {
		cfg.Metadata.Description = "changed after sealing"
	})
	writeTemplate(t, filepath.Join(dir, "unsealed.json"), func(cfg *preset.Configuration) {
		cfg.Metadata.Checksum = nil
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"metadata": {}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	report, err := ScanLibrary(dir, 0, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Scanned)
	assert.Equal(t, 4, report.Valid)
	require.Len(t, report.Invalid, 1)
	assert.Equal(t, filepath.Join(dir, "broken.json"), report.Invalid[0].File)
	assert.NotEmpty(t, report.Invalid[0].Path)
	assert.Equal(t, []string{filepath.Join(dir, "stale.yaml")}, report.Stale)
	assert.Equal(t, []string{filepath.Join(dir, "unsealed.json")}, report.Unsealed)
	assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, report.Unsupported)
}

func TestScanLibrary_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, filepath.Join(dir, "valid.xml"), nil)

	report, err := ScanLibrary(dir, 10, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Valid)
	require.Len(t, report.Invalid, 1)
	assert.Contains(t, report.Invalid[0].Error, "too large")
}

func TestScanLibrary_MissingDir(t *testing.T) {
	_, err := ScanLibrary(filepath.Join(t.TempDir(), "missing"), 0, zap.NewNop())
	assert.ErrorIs(t, err, preset.ErrNotFound)
}

func TestSealPresets(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.json")
	writeTemplate(t, stale, func(cfg *preset.Configuration) {
		cfg.Metadata.Description = "changed after sealing"
	})
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))

	failed := SealPresets([]string{stale, broken}, zap.NewNop())
	assert.Equal(t, []string{broken}, failed)

	report, err := ScanLibrary(dir, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, report.Stale)
	assert.Equal(t, 1, report.Valid)
}
