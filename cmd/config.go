package cmd

import (
	"fmt"
	"io"

	"github.com/nodewee/doc-to-json/pkg/config"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persistent configuration",
	Long: `Manage persistent configuration settings.

Configuration is stored in a YAML file in your home directory (~/.doc-to-json/config.yaml).
Environment variables and command line flags override the stored values for a single run.

Available commands:
  list  - List all configuration values
  get   - Get a specific value
  set   - Set a specific value

Examples:
  doc-to-json config list                                # List all values
  doc-to-json config get tesseract_path                  # Get the tesseract binary
  doc-to-json config set tesseract_path /usr/bin/tesseract
  doc-to-json config set csv_delimiter ';'`,
}

// listConfig lists all configuration settings
func listConfig(w io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	configPath, _ := config.GetConfigFilePath()
	fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	for _, key := range config.ListConfigKeys() {
		value, err := cfg.Value(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-20s = %s\n", key, getDisplayValue(value))
	}
	return nil
}

// getConfig gets a specific configuration value
func getConfig(w io.Writer, key string) error {
	value, err := config.GetConfigValue(key)
	if err != nil {
		return fmt.Errorf("error getting config value '%s': %w", key, err)
	}

	fmt.Fprintf(w, "%s = %s\n", key, getDisplayValue(value))
	return nil
}

// setConfig validates and stores a configuration value
func setConfig(w io.Writer, key, value string) error {
	if err := config.SetConfigValue(key, value); err != nil {
		return fmt.Errorf("error setting config value '%s': %w", key, err)
	}

	fmt.Fprintf(w, "Successfully set %s = %s\n", key, value)
	return nil
}

// getDisplayValue returns a display-friendly value for empty strings
func getDisplayValue(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// configListCmd represents the 'config list' command
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listConfig(cmd.OutOrStdout())
	},
}

// configGetCmd represents the 'config get' command
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getConfig(cmd.OutOrStdout(), args[0])
	},
}

// configSetCmd represents the 'config set' command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a specific configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
