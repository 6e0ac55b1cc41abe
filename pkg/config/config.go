// pkg/config/config.go

// Package config loads runtime settings from defaults, an optional YAML
// file, a .env file, SECRET_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys understood by the viper instance.
const (
	KeyGenerateLength  = "generate.length"
	KeyGenerateFormat  = "generate.format"
	KeyGenerateCount   = "generate.count"
	KeyOutput          = "output"
	KeyColor           = "color"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyTelemetry       = "telemetry.enabled"
	KeyTelemetryPath   = "telemetry.path"
	EnvPrefix          = "SECRET"
	DefaultConfigName  = "secret"
	DefaultEnvFile     = ".env"
	MinGenerateLength  = 4
	MaxGenerateLength  = 255
	MaxGenerateCount   = 1000
	DefaultOutput      = "text"
	DefaultColorPolicy = "auto"
)

// Config is the validated runtime configuration.
type Config struct {
	Generate  GenerateConfig  `mapstructure:"generate"`
	Output    string          `mapstructure:"output" validate:"oneof=text json yaml"`
	Color     string          `mapstructure:"color" validate:"oneof=auto always never"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Length int    `mapstructure:"length" validate:"gte=4,lte=255"`
	Format string `mapstructure:"format" validate:"required"`
	Count  int    `mapstructure:"count" validate:"gte=1,lte=1000"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadOptions points Load at explicit files. Empty fields use the defaults.
type LoadOptions struct {
	// ConfigFile must exist when set.
	ConfigFile string
	// EnvFile is loaded if present; defaults to .env in the working directory.
	EnvFile string
}

// ValidationError reports configuration that failed validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SetDefaults registers every key so environment variables can override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGenerateLength, generator.DefaultLength)
	v.SetDefault(KeyGenerateFormat, generator.DefaultFormat)
	v.SetDefault(KeyGenerateCount, 1)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyColor, DefaultColorPolicy)
	v.SetDefault(KeyLogLevel, logger.DefaultLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTelemetry, false)
	v.SetDefault(KeyTelemetryPath, "")
}

// Load reads configuration into a Config. Flags must already be bound to v.
func Load(v *viper.Viper, opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(xdg.ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// UsedFile reports the config file viper read, or "" if none.
func UsedFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}

	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
