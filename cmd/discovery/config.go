package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ferraz/discovery-go/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify discovery CLI configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		render.RenderTitle("Configuration")

		fmt.Printf("Config file: %s\n\n", cfgMgr.GetConfigFile())
		fmt.Printf("server_url:              %s\n", cfg.ServerURL)
		fmt.Printf("state_file:              %s\n", cfg.StateFile)
		fmt.Printf("history_file:            %s\n", cfg.HistoryFile)
		fmt.Printf("log_file:                %s\n", cfg.LogFile)
		fmt.Printf("italics:                 %v\n", cfg.Italics)
		fmt.Printf("request_timeout_seconds: %d\n", cfg.RequestTimeoutSeconds)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		switch key {
		case "server_url":
			cfg.ServerURL = value

		case "state_file":
			cfg.StateFile = value

		case "history_file":
			cfg.HistoryFile = value

		case "log_file":
			cfg.LogFile = value

		case "italics":
			cfg.Italics = config.ParseBoolean(value, false)

		case "request_timeout_seconds":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid timeout: %s", value)
			}
			cfg.RequestTimeoutSeconds = n

		default:
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := cfgMgr.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		render.RenderSuccess(fmt.Sprintf("Set %s = %s", key, value))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfgMgr.GetConfigDir()
		cfg.ServerURL = "http://localhost:8001"
		cfg.StateFile = filepath.Join(dir, "state.db")
		cfg.HistoryFile = filepath.Join(dir, "history.jsonl")
		cfg.LogFile = filepath.Join(dir, "discovery.log")
		cfg.Italics = false
		cfg.RequestTimeoutSeconds = 300

		if err := cfgMgr.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}

		render.RenderSuccess("Configuration reset to defaults")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cfgMgr.GetConfigFile())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPathCmd)
}
