package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"preset-manager/core/backup"

	"github.com/spf13/cobra"
)

var pruneMax int

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, restore, prune and list preset backups",
}

// backupCreateCmd represents the backup create command
var backupCreateCmd = &cobra.Command{
	Use:   "create <file>...",
	Short: "Back up preset files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		for _, path := range args {
			target, err := rt.presets.Backup(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", path, target)
		}
		return nil
	},
}

// backupRestoreCmd represents the backup restore command
var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup> [target]",
	Short: "Restore a backup over a preset",
	Long: `Copies the backup over target. Without target the preset is restored into
the library under its original name, e.g. studio_20250121_100000.xml -> studio.xml.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		source := args[0]
		if !strings.ContainsRune(source, filepath.Separator) {
			source = filepath.Join(rt.presets.BackupDir(), source)
		}

		var target string
		if len(args) == 2 {
			target = args[1]
		} else {
			ext := filepath.Ext(source)
			group := backup.GroupOf(strings.TrimSuffix(filepath.Base(source), ext))
			if group == "" {
				return fmt.Errorf("cannot derive the preset of %s, pass a target", source)
			}
			target = filepath.Join(rt.presets.LibraryDir(), group+ext)
		}

		if err := rt.presets.Restore(cmd.Context(), source, target); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", source, target)
		return nil
	},
}

// backupPruneCmd represents the backup prune command
var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backups beyond the retention limit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		limit := rt.cfg.Backup.MaxPerGroup
		if cmd.Flags().Changed("max") {
			limit = pruneMax
		}

		deleted, err := rt.presets.Prune(cmd.Context(), limit)
		if err != nil {
			return err
		}
		for _, path := range deleted {
			fmt.Println("deleted", path)
		}
		fmt.Printf("%d backup(s) deleted, keeping %d per preset\n", len(deleted), limit)
		return nil
	},
}

// backupListCmd represents the backup list command
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		entries, err := rt.presets.ListBackups()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, e := range entries {
			group := e.Group
			if group == "" {
				group = "-"
			}
			fmt.Printf("%s  %-20s %s\n", e.Created.Format(time.DateTime), group, filepath.Base(e.Path))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd, backupPruneCmd, backupListCmd)

	backupPruneCmd.Flags().IntVar(&pruneMax, "max", 0, "Backups kept per preset (defaults to backup.max_per_group)")
}
