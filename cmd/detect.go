package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/monitor"
	"github.com/preeja73/robocurrent/testtools"
	"github.com/preeja73/robocurrent/utils"
)

var (
	detectTrait string
	detectOut   string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Fit per-axis baselines over stored history and emit deviation events",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := dal.Open(config.Monitor.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open dal err: %v", err)
		}
		defer store.Close()

		trait := detectTrait
		if trait == "" {
			trait = config.Monitor.Trait
		}

		pipe := monitor.NewPipeline(store, store, utils.NewDefaultMetricser())
		result, err := pipe.Detect(trait, config.Monitor.Thresholds())
		if err != nil {
			return fmt.Errorf("run detection err: %v", err)
		}

		for axis, reason := range result.SkippedAxes {
			fmt.Printf("axis %v skipped: %v\n", axis, reason)
		}
		fmt.Printf("emitted %v events\n", len(result.Events))
		for _, ev := range result.Events {
			fmt.Printf("  %v\n", ev)
		}

		if detectOut != "" {
			if err := testtools.Events2CSVFile(detectOut, result.Events); err != nil {
				return fmt.Errorf("export events err: %v", err)
			}
			fmt.Printf("events written to %v\n", detectOut)
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectTrait, "trait", "", "trait to analyse (defaults to config)")
	detectCmd.Flags().StringVar(&detectOut, "out", "", "optional events csv output path")
	rootCmd.AddCommand(detectCmd)
}
