package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preeja73/robocurrent/monitor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the monitor HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := monitor.Start(&config.Monitor); err != nil {
			return fmt.Errorf("start monitor err: %v", err)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
