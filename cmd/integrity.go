package cmd

import (
	"context"

	"preset-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

type integrityChecks struct {
	structure bool
	presets   bool
	backups   bool
	mirror    bool
	catalog   bool
}

var allChecks = integrityChecks{structure: true, presets: true, backups: true, mirror: true, catalog: true}

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the preset library and its backends",
	Long:  `Scans the preset library and the backups, and checks the storage bucket and the revision catalog when they are configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), allChecks)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{structure: true})
	},
}

// presetsCheckCmd represents the integrity presets command
var presetsCheckCmd = &cobra.Command{
	Use:   "presets",
	Short: "Scan the library and reseal stale presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{presets: true})
	},
}

// backupsCheckCmd represents the integrity backups command
var backupsCheckCmd = &cobra.Command{
	Use:   "backups",
	Short: "Report ungroupable and orphaned backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{backups: true})
	},
}

// mirrorCheckCmd represents the integrity mirror command
var mirrorCheckCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Check and fix mirrored backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{mirror: true})
	},
}

// catalogCheckCmd represents the integrity catalog command
var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check and migrate the revision catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{catalog: true})
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, presetsCheckCmd, backupsCheckCmd, mirrorCheckCmd, catalogCheckCmd)

	for _, c := range []*cobra.Command{structureCmd, presetsCheckCmd, mirrorCheckCmd, catalogCheckCmd} {
		c.Flags().BoolVar(&fixFlag, "fix", false, "Fix the problems found")
	}
}

func runIntegrityChecks(ctx context.Context, run integrityChecks) error {
	rt, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer rt.close()

	logg := rt.logger
	svc := rt.integrity()
	if ctx == nil {
		ctx = context.Background()
	}

	if run.structure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case integrity.Disabled(err):
			logg.Info("Structure check skipped", zap.String("reason", err.Error()))
		case err != nil && !fixFlag:
			return err
		case err != nil:
			logg.Warn("Structure check failed, rebuilding", zap.Error(err))
			missing = svc.Folders()
			fallthrough
		case len(missing) > 0:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fixFlag {
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run with --fix to create missing folders.")
			}
		default:
			logg.Info("Structure is intact.")
		}
	}

	if run.presets {
		logg.Info("Scanning preset library...", zap.String("dir", rt.cfg.Library.Dir))
		report, err := svc.CheckPresets()
		if err != nil {
			return err
		}
		for _, issue := range report.Invalid {
			logg.Warn("Invalid preset", zap.String("file", issue.File), zap.String("path", issue.Path), zap.String("error", issue.Error))
		}
		if len(report.Unsupported) > 0 {
			logg.Warn("Unsupported files", zap.Strings("files", report.Unsupported))
		}
		logg.Info("Preset scan completed",
			zap.Int("scanned", report.Scanned),
			zap.Int("valid", report.Valid),
			zap.Int("invalid", len(report.Invalid)),
			zap.Strings("stale", report.Stale),
			zap.Strings("unsealed", report.Unsealed),
		)

		if len(report.Stale)+len(report.Unsealed) > 0 {
			if fixFlag {
				if failed := svc.FixPresets(report); len(failed) > 0 {
					logg.Error("Some presets could not be resealed", zap.Strings("failed", failed))
				} else {
					logg.Info("Presets resealed successfully.")
				}
			} else {
				logg.Info("Run with --fix to reseal stale and unsealed presets.")
			}
		}
	}

	if run.backups {
		logg.Info("Scanning backups...", zap.String("dir", rt.cfg.Backup.Dir))
		report, err := svc.CheckBackups()
		if err != nil {
			return err
		}
		if len(report.Ungroupable) > 0 {
			logg.Warn("Backups retention never prunes", zap.Strings("backups", report.Ungroupable))
		}
		if len(report.Orphaned) > 0 {
			logg.Warn("Backups of presets no longer in the library", zap.Strings("presets", report.Orphaned))
		}
		logg.Info("Backup scan completed", zap.Int("total", report.Total), zap.Int("groups", len(report.Groups)))
	}

	if run.mirror {
		logg.Info("Checking backup mirror...")
		report, err := svc.CheckMirror(ctx)
		switch {
		case integrity.Disabled(err):
			logg.Info("Mirror check skipped", zap.String("reason", err.Error()))
		case err != nil:
			return err
		case len(report.Missing) == 0:
			logg.Info("Mirror is complete.", zap.Int("local", report.Local), zap.Int("remote", report.Remote))
		default:
			logg.Warn("Backups missing from the mirror", zap.Strings("missing", report.Missing))
			if fixFlag {
				failed, err := svc.FixMirror(ctx, report.Missing)
				if err != nil {
					return err
				}
				if len(failed) > 0 {
					logg.Error("Some backups could not be uploaded", zap.Strings("failed", failed))
				} else {
					logg.Info("Mirror fixed successfully.")
				}
			} else {
				logg.Info("Run with --fix to upload missing backups.")
			}
		}
	}

	if run.catalog {
		logg.Info("Checking revision catalog schema...")
		report, err := svc.CheckCatalog()
		switch {
		case integrity.Disabled(err):
			logg.Info("Catalog check skipped", zap.String("reason", err.Error()))
		case err != nil:
			logg.Error("Catalog schema check failed", zap.Error(err))
		case report.Matched:
			logg.Info("Catalog schema matches the revision model.", zap.String("table", report.Table))
		default:
			logg.Warn("Missing Columns", zap.String("table", report.Table), zap.Strings("columns", report.MissingColumns))
			if fixFlag {
				if err := svc.FixCatalog(); err != nil {
					return err
				}
				logg.Info("Catalog migrated successfully.")
			} else {
				logg.Info("Run with --fix to migrate the revision table.")
			}
		}
	}

	return nil
}
