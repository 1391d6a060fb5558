// Package cmd holds the robocurrent command tree.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/preeja73/robocurrent/monitor"
)

// Config .
type Config struct {
	Monitor monitor.Config `yaml:"Monitor"`
}

var (
	cfgPath string
	config  Config
)

var rootCmd = &cobra.Command{
	Use:   "robocurrent",
	Short: "Robot joint-current baseline monitor",
	Long: "robocurrent ingests robot joint-current telemetry from CSV into " +
		"PostgreSQL, fits per-axis linear baselines, and flags sustained " +
		"deviations as Alert/Error events.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute .
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config yaml")
}

func loadConfig() error {
	confpath := cfgPath
	if confpath == "" {
		confpath = "./conf/config.yml"
		if confenv := os.Getenv("CONF_ENV"); confenv != "" {
			confpath += "." + confenv
		}
	}

	confbuf, err := os.ReadFile(confpath)
	if err != nil {
		return fmt.Errorf("open config file err: %v", err)
	}
	if err := yaml.Unmarshal(confbuf, &config); err != nil {
		return fmt.Errorf("unmarshal yaml err: %v", err)
	}

	// print config
	if buf, err := json.MarshalIndent(config, "", "  "); err == nil {
		fmt.Println("config >>>>>>>>>>>>>>>>>>>>>>>>>>>>>")
		fmt.Println(string(buf))
		fmt.Println()
	}

	return nil
}
