package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/loader"
)

var loadCSVPath string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a trait measurement CSV into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := dal.Open(config.Monitor.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open dal err: %v", err)
		}
		defer store.Close()

		report, err := loader.New(store, config.Monitor.ChunkSize).LoadCSV(loadCSVPath)
		if err != nil {
			return fmt.Errorf("load csv err: %v", err)
		}

		fmt.Printf("inserted %v rows, skipped %v\n", report.Inserted, len(report.Skipped))
		for _, rowErr := range report.Skipped {
			fmt.Printf("  %v\n", rowErr)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadCSVPath, "csv", "", "path to measurement csv")
	loadCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(loadCmd)
}
