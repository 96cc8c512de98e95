package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"preset-manager/core/preset"
	"preset-manager/core/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	showFormat   string
	diffJSON     bool
	templateName string
	templateOut  string
	listExt      string
	historyLimit int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate preset files",
	Long:  `Loads every file, checks it against the preset schema and prints its fingerprint.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		failed := 0
		for _, path := range args {
			v, err := rt.presets.Validate(path)
			if err != nil {
				failed++
				fmt.Printf("%s: invalid ❌ %s\n", path, describeError(err))
				continue
			}
			line := fmt.Sprintf("%s: %s", path, v)
			if v.Stale {
				line += " (stored checksum is stale)"
			}
			fmt.Println(line)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d presets invalid", failed, len(args))
		}
		return nil
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a preset as a structured document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		cfg, err := rt.presets.Load(args[0])
		if err != nil {
			return err
		}
		return printDocument(cfg, showFormat)
	},
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert a preset between XML, JSON and YAML",
	Long:  `Loads src and writes it to dst. Both formats follow the file extensions.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		cfg, err := rt.presets.Convert(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%s)\n", args[0], args[1], cfg.Fingerprint())
		return nil
	},
}

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two presets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		report, err := rt.presets.Compare(args[0], args[1])
		if err != nil {
			return err
		}

		if diffJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if report.Identical() {
			fmt.Println("No differences.")
			return nil
		}
		for _, line := range report.Lines() {
			fmt.Println(line)
		}
		fmt.Printf("\n%d change(s): %d strip(s), %d bus(es), %d scenario(s)\n",
			report.Summary.TotalChanges,
			report.Summary.StripsModified,
			report.Summary.BusesModified,
			report.Summary.ScenariosModified)
		return nil
	},
}

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template <basic|banana|potato>",
	Short: "Generate a preset template for a Voicemeeter variant",
	Long:  `Builds a sealed template for the variant. With --out it is saved; otherwise it is printed as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		variant := preset.Variant(strings.ToLower(strings.TrimSpace(args[0])))
		cfg, err := rt.presets.Synthesize(cmd.Context(), templateName, variant, templateOut)
		if err != nil {
			return err
		}
		if templateOut == "" {
			return printDocument(cfg, "json")
		}
		fmt.Printf("Template written to %s (%d strips, %d buses)\n", templateOut, len(cfg.Strips), len(cfg.Buses))
		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the preset library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		entries, err := rt.presets.ListConfigs(listExt)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No presets found.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-32s %-6s %10d  %s\n", e.Name, strings.TrimPrefix(e.Extension, "."), e.Size, e.Modified.Format(time.DateTime))
		}
		return nil
	},
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [preset]",
	Short: "Show recorded revisions",
	Long:  `Lists saves, backups and restores recorded in the revision catalog, newest first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		revisions, err := rt.presets.History(cmd.Context(), name, historyLimit)
		if err != nil {
			return err
		}
		rt.logger.Debug("Loaded revisions", zap.Int("count", len(revisions)))

		for _, r := range revisions {
			checksum := r.Checksum
			if len(checksum) > 12 {
				checksum = checksum[:12]
			}
			fmt.Printf("%s  %-8s %-20s %-12s %s\n", r.CreatedAt.Format(time.DateTime), r.Action, r.Preset, checksum, r.Path)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd, showCmd, convertCmd, diffCmd, templateCmd, listCmd, historyCmd)

	showCmd.Flags().StringVar(&showFormat, "format", "json", "Output format (json, yaml)")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Print the full report as JSON")
	templateCmd.Flags().StringVar(&templateName, "name", "Untitled", "Preset name")
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "File to save the template to")
	listCmd.Flags().StringVar(&listExt, "ext", "", "Only list files with this extension")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of revisions (0 for all)")
}

// printDocument writes the canonical document of cfg to stdout.
func printDocument(cfg *preset.Configuration, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err = yaml.Marshal(cfg.Document())
	case "json":
		data, err = json.MarshalIndent(cfg.Document(), "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// describeError adds the schema location to validation failures.
func describeError(err error) string {
	var violation *schema.Violation
	if errors.As(err, &violation) {
		return fmt.Sprintf("%s [%s at %s]", err, violation.Rule, violation.Path)
	}
	return err.Error()
}
