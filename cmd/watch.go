package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preset-manager/feature/presets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate library presets whenever they change",
	Long:  `Watches the library directory and validates every changed preset once the directory has been quiet for the debounce interval.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return rt.presets.Watch(ctx, watchDebounce, func(r presets.WatchResult) {
			if r.Err != nil {
				rt.logger.Warn("Preset invalid", zap.String("file", r.Path), zap.Error(r.Err))
				fmt.Printf("%s: invalid ❌ %s\n", r.Path, describeError(r.Err))
				return
			}
			fmt.Printf("%s: %s\n", r.Path, r.Validation)
		})
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", presets.DefaultDebounce, "Quiet period before re-validating")
}
