package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"janconnect/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-18s %s\n", "config file:", config.DefaultUserConfigPath())
		fmt.Printf("%-18s %s\n", "state dir:", stateDir)
		fmt.Printf("%-18s %s\n", "model:", cfg.GetModel())
		fmt.Printf("%-18s %s\n", "gemini api key:", maskKey(cfg.GeminiAPIKey))
		fmt.Printf("%-18s %s\n", "submit endpoint:", orNone(cfg.SubmitEndpoint))
		fmt.Printf("%-18s %s\n", "submit timeout:", cfg.GetSubmitTimeout())
		fmt.Printf("%-18s %s\n", "letter timeout:", cfg.GetLetterTimeout())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets one configuration key and writes the config file.

Keys: gemini_api_key, model, submit_endpoint, theme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]

		// Mutate a fresh load of the file, not the env-merged view,
		// so environment overrides never get baked into the file.
		onDisk, err := config.LoadFile(config.DefaultUserConfigPath())
		if err != nil {
			return err
		}
		switch key {
		case "gemini_api_key":
			onDisk.GeminiAPIKey = value
		case "model":
			onDisk.Model = value
		case "submit_endpoint":
			onDisk.SubmitEndpoint = value
		case "theme":
			onDisk.Theme = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := onDisk.Save(config.DefaultUserConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Set %s.\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", 8) + key[len(key)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(not set, submissions are simulated)"
	}
	return s
}
