package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sentibay/sentiment-classifier/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sentibay configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sentibay.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		cfg := config.DefaultConfig()
		if err := cfg.SaveConfig(path); err != nil {
			return err
		}

		fmt.Printf("✅ Default configuration written to: %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show the effective configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %v", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
