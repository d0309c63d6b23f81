package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "./logcore-data", cfg.DBPath)
	assert.True(t, cfg.Persist)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestBindFlagsOverridesDefault(t *testing.T) {
	viper.Reset()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Set("db-path", "/tmp/custom"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", cfg.DBPath)
}
