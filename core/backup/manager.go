package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"preset-manager/core/logger"
	"preset-manager/core/preset"

	"go.uber.org/zap"
)

// TimestampLayout is the suffix layout appended to backup names.
const TimestampLayout = "20060102_150405"

// ErrSameFile is returned when a copy would overwrite its own source.
var ErrSameFile = errors.New("source and destination are the same file")

// Entry describes one backup file.
type Entry struct {
	// Name is the file name without extension, e.g. "studio_20250121_100000".
	Name string `json:"name"`
	// Path is the full path of the backup file.
	Path string `json:"path"`
	// Extension includes the leading dot.
	Extension string `json:"extension"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Created is the timestamp encoded in the name, or the modification time
	// when the name carries none.
	Created time.Time `json:"created"`
	// Group is the original preset stem, empty when the name has no
	// timestamp suffix.
	Group string `json:"group,omitempty"`
}

// Manager copies preset files into a backup directory and prunes old copies.
type Manager struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, log *zap.Logger) *Manager {
	return &Manager{dir: dir, logger: logger.OrNop(log), now: time.Now}
}

// WithClock overrides the clock used for backup names.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies path to <dir>/<stem>_<YYYYMMDD_HHMMSS><ext> and returns the
// new path. Copy errors are returned unchanged.
func (m *Manager) Backup(path string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	target := filepath.Join(m.dir, fmt.Sprintf("%s_%s%s", stem, m.now().Format(TimestampLayout), ext))

	if _, err := os.Stat(target); err == nil {
		m.logger.Warn("Backup with the same timestamp exists, overwriting",
			zap.String("source", path),
			zap.String("backup", target),
		)
	}

	if err := copyFile(path, target); err != nil {
		return "", err
	}

	m.logger.Info("Created backup", zap.String("source", path), zap.String("backup", target))
	return target, nil
}

// Restore overwrites target with the contents of backupPath.
func (m *Manager) Restore(backupPath, target string) error {
	if _, err := os.Stat(backupPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: backup %s", preset.ErrNotFound, backupPath)
		}
		return err
	}

	if err := copyFile(backupPath, target); err != nil {
		return err
	}

	m.logger.Info("Restored preset from backup", zap.String("backup", backupPath), zap.String("target", target))
	return nil
}

// List returns every backup file, newest first. A missing directory yields
// an empty list.
func (m *Manager) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		entries = append(entries, newEntry(filepath.Join(m.dir, de.Name()), info))
	}

	sortNewestFirst(entries)
	return entries, nil
}

// Prune keeps the newest maxPerGroup backups of every group and deletes the
// rest. Deletion failures are logged and skipped. Backups without a
// timestamp suffix belong to no group and are never pruned.
func (m *Manager) Prune(maxPerGroup int) ([]string, error) {
	if maxPerGroup < 0 {
		return nil, fmt.Errorf("max backups per group must be >= 0, got %d", maxPerGroup)
	}

	entries, err := m.List()
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]Entry)
	for _, e := range entries {
		if e.Group == "" {
			continue
		}
		groups[e.Group] = append(groups[e.Group], e)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	deleted := []string{}
	for _, name := range names {
		group := groups[name]
		if len(group) <= maxPerGroup {
			continue
		}
		for _, e := range group[maxPerGroup:] {
			if err := os.Remove(e.Path); err != nil {
				m.logger.Error("Failed to delete backup", zap.String("path", e.Path), zap.Error(err))
				continue
			}
			deleted = append(deleted, e.Path)
			m.logger.Info("Deleted old backup", zap.String("path", e.Path), zap.String("group", name))
		}
	}
	return deleted, nil
}

// GroupOf returns the original stem of a backup name (without extension),
// or "" when the name has fewer than three underscore-delimited parts.
func GroupOf(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], "_")
}

// TimestampOf parses the trailing _<date>_<time> suffix of a backup name.
func TimestampOf(name string) (time.Time, bool) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return time.Time{}, false
	}
	suffix := parts[len(parts)-2] + "_" + parts[len(parts)-1]
	t, err := time.ParseInLocation(TimestampLayout, suffix, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func newEntry(path string, info fs.FileInfo) Entry {
	ext := filepath.Ext(info.Name())
	name := strings.TrimSuffix(info.Name(), ext)

	created, ok := TimestampOf(name)
	if !ok {
		created = info.ModTime()
	}

	return Entry{
		Name:      name,
		Path:      path,
		Extension: ext,
		Size:      info.Size(),
		Created:   created,
		Group:     GroupOf(name),
	}
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Created.Equal(entries[j].Created) {
			return entries[i].Created.After(entries[j].Created)
		}
		return entries[i].Name > entries[j].Name
	})
}

// copyFile copies src to dst preserving the permission bits and the
// modification time. The copy is staged next to dst and renamed into place,
// so dst is either fully replaced or left untouched.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if existing, err := os.Stat(dst); err == nil && os.SameFile(info, existing) {
		return fmt.Errorf("%w: %s", ErrSameFile, dst)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	staged := tmp.Name()
	defer os.Remove(staged)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chtimes(staged, info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	return os.Rename(staged, dst)
}
