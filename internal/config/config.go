// Package config loads logcore's runtime settings from flags, environment
// variables, and an optional config file, in that precedence order, mirroring
// the viper-backed CLI config loader used elsewhere in the retrieved pack.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is spec.md §6's parse_config() surface, plus the ambient settings
// (log level, metrics listen address) a standalone CLI binary needs that the
// storage core itself treats as opaque.
type Config struct {
	DBPath      string `mapstructure:"db_path"`
	Persist     bool   `mapstructure:"persist"`
	Restore     bool   `mapstructure:"restore"`
	KeepLast    int    `mapstructure:"keep_last"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// defaults mirrors cfg := Config{...} literal init elsewhere in the pack,
// but kept as a function so Load can reset viper's defaults independent of
// flag registration order.
func defaults() Config {
	return Config{
		DBPath:      "./logcore-data",
		Persist:     true,
		Restore:     true,
		KeepLast:    0,
		LogLevel:    "info",
		MetricsAddr: ":9090",
	}
}

// BindFlags registers logcore's persistent flags on cmd and binds them to
// viper, so flags take precedence over environment variables and a config
// file, which in turn take precedence over the defaults.
func BindFlags(cmd *cobra.Command) {
	d := defaults()

	cmd.PersistentFlags().String("db-path", d.DBPath, "directory holding persisted store files")
	cmd.PersistentFlags().Bool("persist", d.Persist, "persist state to db-path on shutdown")
	cmd.PersistentFlags().Bool("restore", d.Restore, "restore state from db-path on startup")
	cmd.PersistentFlags().Int("keep-last", d.KeepLast, "keep only the last N dates on restore (0 = unlimited)")
	cmd.PersistentFlags().String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	cmd.PersistentFlags().String("metrics-addr", d.MetricsAddr, "address the Prometheus exposition endpoint listens on")

	_ = viper.BindPFlag("db_path", cmd.PersistentFlags().Lookup("db-path"))
	_ = viper.BindPFlag("persist", cmd.PersistentFlags().Lookup("persist"))
	_ = viper.BindPFlag("restore", cmd.PersistentFlags().Lookup("restore"))
	_ = viper.BindPFlag("keep_last", cmd.PersistentFlags().Lookup("keep-last"))
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("metrics_addr", cmd.PersistentFlags().Lookup("metrics-addr"))
}

// Load reads configuration from (in ascending precedence) defaults, the
// config file at configFile (read only when configFile is non-empty; no
// search path is used), LOGCORE_ prefixed environment variables, and flags
// already bound via BindFlags.
func Load(configFile string) (Config, error) {
	v := viper.GetViper()

	for key, val := range structToMap(defaults()) {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("logcore")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func structToMap(c Config) map[string]any {
	return map[string]any{
		"db_path":      c.DBPath,
		"persist":      c.Persist,
		"restore":      c.Restore,
		"keep_last":    c.KeepLast,
		"log_level":    c.LogLevel,
		"metrics_addr": c.MetricsAddr,
	}
}
