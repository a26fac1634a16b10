// Package config handles configuration loading for bedrockbio.
// It supports XDG config paths, an explicit --config file, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for bedrockbio.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Paths   PathsConfig   `mapstructure:"paths"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Model   ModelConfig   `mapstructure:"model"`
	Pacing  PacingConfig  `mapstructure:"pacing"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	History HistoryConfig `mapstructure:"history"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address for the SSE server.
	Addr string `mapstructure:"addr"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	// BaseDir is the project root. Defaults to the working directory.
	BaseDir string `mapstructure:"base_dir"`
	// OutputDir is where report artifacts are written.
	OutputDir string `mapstructure:"output_dir"`
}

// AWSConfig holds AWS settings for the model client and artifact uploads.
type AWSConfig struct {
	// Region is the AWS region (e.g., "ap-southeast-1").
	Region string `mapstructure:"region"`
	// Profile is the optional shared config profile name.
	Profile string `mapstructure:"profile"`
	// UseBedrock routes model calls through AWS Bedrock instead of the
	// direct Anthropic API.
	UseBedrock bool `mapstructure:"use_bedrock"`
	// S3Bucket, if set, receives copies of completed reports.
	S3Bucket string `mapstructure:"s3_bucket"`
}

// ModelConfig holds LLM settings for the collaborator agents.
type ModelConfig struct {
	// ID is the model identifier.
	ID string `mapstructure:"id"`
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string `mapstructure:"api_key"`
	// MaxTokens caps the completion length.
	MaxTokens int `mapstructure:"max_tokens"`
}

// PacingConfig holds the dialogue cadence settings.
type PacingConfig struct {
	// BaseDelay is the fixed pause after each dialogue line.
	BaseDelay time.Duration `mapstructure:"base_delay"`
	// PerCharDelay is the additional pause per character.
	PerCharDelay time.Duration `mapstructure:"per_char_delay"`
}

// LimitsConfig holds resource caps.
type LimitsConfig struct {
	// MaxConcurrentRuns caps simultaneous dialogue runs.
	MaxConcurrentRuns int64 `mapstructure:"max_concurrent_runs"`
}

// HistoryConfig holds run history settings.
type HistoryConfig struct {
	// Enabled turns run history recording on.
	Enabled bool `mapstructure:"enabled"`
	// DBPath overrides the SQLite database location.
	DBPath string `mapstructure:"db_path"`
}

// TasksConfig holds the suggested-task list settings.
type TasksConfig struct {
	// File points at a YAML file with suggested task strings.
	File string `mapstructure:"file"`
}

// Load loads configuration with the following precedence (highest first):
// environment variables (BEDROCKBIO_*, ANTHROPIC_API_KEY), the explicit
// config file if given, the user config (~/.config/bedrockbio/config.yaml),
// then built-in defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(userConfigDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading user config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BEDROCKBIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("model.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.profile", "AWS_PROFILE")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.Paths.BaseDir = wd
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = filepath.Join(cfg.Paths.BaseDir, "output")
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = filepath.Join(dataDir(), "bedrockbio", "history.db")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("aws.region", "ap-southeast-1")
	v.SetDefault("aws.use_bedrock", false)
	v.SetDefault("model.id", "claude-3-haiku-20240307")
	v.SetDefault("model.max_tokens", 4096)
	v.SetDefault("pacing.base_delay", 1500*time.Millisecond)
	v.SetDefault("pacing.per_char_delay", 6*time.Millisecond)
	v.SetDefault("limits.max_concurrent_runs", 8)
	v.SetDefault("history.enabled", true)
}

// userConfigDir returns the XDG config directory for bedrockbio.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bedrockbio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bedrockbio")
}

// dataDir returns the XDG data directory.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}
