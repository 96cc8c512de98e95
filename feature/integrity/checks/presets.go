package checks

import (
	"errors"

	"preset-manager/core/codec"
	"preset-manager/core/library"
	"preset-manager/core/schema"

	"go.uber.org/zap"
)

// PresetIssue describes a library file that does not load.
type PresetIssue struct {
	File  string `json:"file"`
	Error string `json:"error"`
	// Path locates the schema violation, when there is one.
	Path string `json:"path,omitempty"`
}

// LibraryReport is the result of scanning the preset library.
type LibraryReport struct {
	Scanned int `json:"scanned"`
	Valid   int `json:"valid"`
	// Invalid lists files that fail to load or validate.
	Invalid []PresetIssue `json:"invalid"`
	// Stale lists structured documents whose stored checksum no longer
	// matches their content.
	Stale []string `json:"stale"`
	// Unsealed lists structured documents without a stored checksum.
	Unsealed []string `json:"unsealed"`
	// Unsupported lists files no codec handles.
	Unsupported []string `json:"unsupported"`
}

// ScanLibrary loads every file of dir and classifies it.
func ScanLibrary(dir string, maxBytes int64, logger *zap.Logger) (*LibraryReport, error) {
	entries, err := library.List(dir, "")
	if err != nil {
		return nil, err
	}

	report := &LibraryReport{
		Invalid:     []PresetIssue{},
		Stale:       []string{},
		Unsealed:    []string{},
		Unsupported: []string{},
	}

	for _, entry := range entries {
		if !codec.IsSupported(entry.Path) {
			report.Unsupported = append(report.Unsupported, entry.Path)
			continue
		}
		report.Scanned++

		if err := library.Guard(entry.Path, maxBytes); err != nil {
			report.Invalid = append(report.Invalid, PresetIssue{File: entry.Path, Error: err.Error()})
			continue
		}

		c, err := codec.ForPath(entry.Path, zap.NewNop())
		if err != nil {
			report.Unsupported = append(report.Unsupported, entry.Path)
			continue
		}

		cfg, err := c.Load(entry.Path)
		if err != nil {
			issue := PresetIssue{File: entry.Path, Error: err.Error()}
			var violation *schema.Violation
			if errors.As(err, &violation) {
				issue.Path = violation.Path
			}
			report.Invalid = append(report.Invalid, issue)
			logger.Debug("Invalid preset", zap.String("file", entry.Path), zap.Error(err))
			continue
		}

		report.Valid++
		switch {
		case cfg.Metadata.Checksum == nil:
			report.Unsealed = append(report.Unsealed, entry.Path)
		case !cfg.Verify():
			report.Stale = append(report.Stale, entry.Path)
		}
	}

	return report, nil
}

// SealPresets rewrites files with a fresh checksum and returns the files
// that could not be rewritten.
func SealPresets(files []string, logger *zap.Logger) []string {
	failed := []string{}
	for _, file := range files {
		c, err := codec.ForPath(file, logger)
		if err != nil {
			failed = append(failed, file)
			continue
		}
		cfg, err := c.Load(file)
		if err != nil {
			logger.Error("Failed to load preset for sealing", zap.String("file", file), zap.Error(err))
			failed = append(failed, file)
			continue
		}

		cfg.Seal()
		if err := c.Save(cfg, file); err != nil {
			logger.Error("Failed to seal preset", zap.String("file", file), zap.Error(err))
			failed = append(failed, file)
			continue
		}
		logger.Info("Sealed preset", zap.String("file", file), zap.String("checksum", *cfg.Metadata.Checksum))
	}
	return failed
}
