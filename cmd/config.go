package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFields = []string{
	"configfile", "endpoint", "request_timeout", "max_message_length", "local_command_delay",
	"history_cap", "restore_count", "history_key", "theme_key", "storage_backend",
	"data_dir", "rate_limit_per_minute", "offline",
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + strings.Join(configFields, ", ") + `

Examples:
  chatc config                    # Show all configuration
  chatc config endpoint           # Show only the endpoint
  chatc config storage_backend    # Show only the storage backend`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration from file
		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// If a field is specified, show only that field
		if len(args) > 0 {
			value, ok := configField(cfg, strings.ToLower(args[0]))
			if !ok {
				fmt.Fprintf(os.Stderr, "Available fields: %s\n", strings.Join(configFields, ", "))
				return fmt.Errorf("unknown field: %s", args[0])
			}
			fmt.Println(value)
			return nil
		}

		// Display all configuration values
		for _, field := range configFields {
			value, _ := configField(cfg, field)
			fmt.Printf("%s: %s\n", field, value)
		}
		return nil
	},
}

// configField returns the display value of a configuration field
func configField(cfg *config.Config, field string) (string, bool) {
	switch field {
	case "configfile":
		return viper.ConfigFileUsed(), true
	case "endpoint":
		return cfg.Endpoint, true
	case "request_timeout":
		return cfg.RequestTimeout.String(), true
	case "max_message_length":
		return fmt.Sprint(cfg.MaxMessageLength), true
	case "local_command_delay":
		return cfg.LocalCommandDelay.String(), true
	case "history_cap":
		return fmt.Sprint(cfg.HistoryCap), true
	case "restore_count":
		return fmt.Sprint(cfg.RestoreCount), true
	case "history_key":
		return cfg.HistoryKey, true
	case "theme_key":
		return cfg.ThemeKey, true
	case "storage_backend":
		return cfg.StorageBackend, true
	case "data_dir":
		return cfg.DataDir, true
	case "rate_limit_per_minute":
		return fmt.Sprint(cfg.RateLimitPerMinute), true
	case "offline":
		return fmt.Sprint(cfg.Offline), true
	}
	return "", false
}

func init() {
	rootCmd.AddCommand(configCmd)
}
