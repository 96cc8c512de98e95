package checks

import (
	"context"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"preset-manager/core/backup"
	"preset-manager/core/library"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BackupReport is the result of scanning the backup directory.
type BackupReport struct {
	Total int `json:"total"`
	// Groups counts backups per original preset.
	Groups map[string]int `json:"groups"`
	// Ungroupable lists backups retention never prunes because their name
	// carries no _<date>_<time> suffix.
	Ungroupable []string `json:"ungroupable"`
	// Orphaned lists groups whose preset no longer exists in the library.
	Orphaned []string `json:"orphaned"`
}

// ScanBackups groups the backups of manager and reports those retention
// cannot handle and those whose preset is gone from libraryDir.
func ScanBackups(manager *backup.Manager, libraryDir string) (*BackupReport, error) {
	entries, err := manager.List()
	if err != nil {
		return nil, err
	}

	report := &BackupReport{
		Total:       len(entries),
		Groups:      map[string]int{},
		Ungroupable: []string{},
		Orphaned:    []string{},
	}

	available := map[string]bool{}
	if presets, err := library.List(libraryDir, ""); err == nil {
		for _, p := range presets {
			available[p.Name+p.Extension] = true
		}
	}

	for _, e := range entries {
		if _, ok := backup.TimestampOf(e.Name); !ok || e.Group == "" {
			report.Ungroupable = append(report.Ungroupable, e.Path)
			continue
		}

		source := e.Group + e.Extension
		if report.Groups[e.Group] == 0 && !available[source] {
			report.Orphaned = append(report.Orphaned, source)
		}
		report.Groups[e.Group]++
	}

	return report, nil
}

// MirrorReport is the result of comparing local backups with the mirror.
type MirrorReport struct {
	Local  int `json:"local"`
	Remote int `json:"remote"`
	// Missing lists local backups absent from the mirror.
	Missing []string `json:"missing"`
}

// CheckMirror lists the local backups of manager that mirror does not hold.
func CheckMirror(ctx context.Context, manager *backup.Manager, mirror backup.Mirror) (*MirrorReport, error) {
	entries, err := manager.List()
	if err != nil {
		return nil, err
	}
	remote, err := mirror.List(ctx)
	if err != nil {
		return nil, err
	}

	held := make(map[string]bool, len(remote))
	for _, key := range remote {
		held[path.Base(key)] = true
	}

	report := &MirrorReport{Local: len(entries), Remote: len(remote), Missing: []string{}}
	for _, e := range entries {
		if !held[filepath.Base(e.Path)] {
			report.Missing = append(report.Missing, e.Path)
		}
	}
	return report, nil
}

// mirrorUploads is the number of concurrent uploads of FixMirror.
const mirrorUploads = 4

// FixMirror uploads the missing backups and returns those that failed,
// sorted by path.
func FixMirror(ctx context.Context, mirror backup.Mirror, logger *zap.Logger, missing []string) []string {
	var (
		mu     sync.Mutex
		failed = []string{}
		g      errgroup.Group
	)
	g.SetLimit(mirrorUploads)

	for _, p := range missing {
		g.Go(func() error {
			if err := mirror.Upload(ctx, p); err != nil {
				logger.Error("Failed to mirror backup", zap.String("backup", p), zap.Error(err))
				mu.Lock()
				failed = append(failed, p)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(failed)
	return failed
}
