package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"preset-manager/core/preset"
)

// DefaultMaxBytes is the default size limit for preset files (10 MB).
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// ErrTooLarge is returned when a preset file exceeds the size limit.
var ErrTooLarge = errors.New("preset file too large")

// ErrOutsideLibrary is returned when a name escapes the library directory.
var ErrOutsideLibrary = errors.New("path outside preset library")

// Entry describes one file of the preset library.
type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
}

// List returns the regular files of dir, newest first. A non-empty ext
// keeps only files with that extension (case-insensitive, dot optional).
func List(dir, ext string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: library %s", preset.ErrNotFound, dir)
		}
		return nil, err
	}

	filter := normalizeExt(ext)
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		fileExt := filepath.Ext(de.Name())
		if filter != "" && strings.ToLower(fileExt) != filter {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      strings.TrimSuffix(de.Name(), fileExt),
			Path:      filepath.Join(dir, de.Name()),
			Extension: fileExt,
			Size:      info.Size(),
			Modified:  info.ModTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Modified.Equal(entries[j].Modified) {
			return entries[i].Modified.After(entries[j].Modified)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Guard checks that path exists and is at most maxBytes long. A maxBytes of
// zero or less applies DefaultMaxBytes.
func Guard(path string, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", preset.ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", preset.ErrNotFound, path)
	}
	if info.Size() > maxBytes {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, info.Size(), maxBytes)
	}
	return nil
}

// Resolve joins a file name onto dir and refuses names that escape it.
// Absolute paths inside dir are accepted as-is.
func Resolve(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrOutsideLibrary)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	candidate := name
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, name)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideLibrary, name)
	}
	return candidate, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
