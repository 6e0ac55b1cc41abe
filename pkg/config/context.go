package config

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/secret/pkg/generator"
	"github.com/CodeMonkeyCybersecurity/secret/pkg/logger"
)

type ctxKey struct{}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Length: generator.DefaultLength,
			Format: generator.DefaultFormat,
			Count:  1,
		},
		Output: DefaultOutput,
		Color:  DefaultColorPolicy,
		Log:    LogConfig{Level: logger.DefaultLevel},
	}
}

// WithContext stores cfg for the commands run under ctx.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the configuration stored by WithContext, or Default.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}
