package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tengxufei/bedrockbio/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show effective configuration",
	Long: `Display the effective configuration after defaults, the config file,
and environment variables have been merged.

Without arguments, displays all values. With one argument, displays the
value for that key.

Configuration is read from ~/.config/bedrockbio/config.yaml and
BEDROCKBIO_* environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if len(args) == 0 {
			displayAllConfig(cfg)
			return
		}
		displayConfigKey(cfg, args[0])
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	for _, key := range configKeys {
		fmt.Printf("%s: %s\n", key, configValue(cfg, key))
	}
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	for _, known := range configKeys {
		if strings.EqualFold(key, known) {
			fmt.Println(configValue(cfg, known))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Error: unknown configuration key: %s\n", key)
	os.Exit(1)
}

var configKeys = []string{
	"server.addr",
	"paths.base_dir",
	"paths.output_dir",
	"aws.region",
	"aws.profile",
	"aws.use_bedrock",
	"aws.s3_bucket",
	"model.id",
	"model.api_key",
	"model.max_tokens",
	"pacing.base_delay",
	"pacing.per_char_delay",
	"limits.max_concurrent_runs",
	"history.enabled",
	"history.db_path",
	"tasks.file",
}

// configValue renders the value for a dot-notation key. API keys are masked.
func configValue(cfg *config.Config, key string) string {
	switch key {
	case "server.addr":
		return cfg.Server.Addr
	case "paths.base_dir":
		return cfg.Paths.BaseDir
	case "paths.output_dir":
		return cfg.Paths.OutputDir
	case "aws.region":
		return cfg.AWS.Region
	case "aws.profile":
		return cfg.AWS.Profile
	case "aws.use_bedrock":
		return fmt.Sprintf("%t", cfg.AWS.UseBedrock)
	case "aws.s3_bucket":
		return cfg.AWS.S3Bucket
	case "model.id":
		return cfg.Model.ID
	case "model.api_key":
		if cfg.Model.APIKey == "" {
			return "(not set)"
		}
		return "****"
	case "model.max_tokens":
		return fmt.Sprintf("%d", cfg.Model.MaxTokens)
	case "pacing.base_delay":
		return cfg.Pacing.BaseDelay.String()
	case "pacing.per_char_delay":
		return cfg.Pacing.PerCharDelay.String()
	case "limits.max_concurrent_runs":
		return fmt.Sprintf("%d", cfg.Limits.MaxConcurrentRuns)
	case "history.enabled":
		return fmt.Sprintf("%t", cfg.History.Enabled)
	case "history.db_path":
		return cfg.History.DBPath
	case "tasks.file":
		return cfg.Tasks.File
	default:
		return ""
	}
}
