// Package config loads ambient CLI settings (fetch timeout, user-agent,
// log level/format) from flags, environment variables and defaults,
// grounded on the example corpus's viper-backed config.Load (orris):
// defaults set first, environment variables layered on top with a
// project-specific prefix, flags bound last so they always win.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the ambient settings this module's CLI reads, independent of
// any single convert request's own fields.
type Config struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// Load reads LOCALSUB_* environment variables over built-in defaults,
// then binds the given flag set so explicit flags always win over env.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LOCALSUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("user_agent", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if flags != nil {
		bindings := map[string]string{
			"timeout_seconds": "timeout",
			"user_agent":      "user-agent",
			"log_level":       "log-level",
			"log_format":      "log-format",
		}
		for key, flagName := range bindings {
			if f := flags.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
