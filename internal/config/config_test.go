package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/concursohub/crawler/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.SetDefaults()
	cfg := config.Load()

	require.Equal(t, "development", cfg.App.Environment)
	require.True(t, cfg.Logger.Development)
	require.Equal(t, "info", string(cfg.Logger.Level))

	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, "5432", cfg.Database.Port)
	require.Equal(t, "concursohub", cfg.Database.DBName)

	require.False(t, cfg.MinIO.Enabled)
	require.Equal(t, "listing-logos", cfg.MinIO.Bucket)

	require.Equal(t, 3, cfg.Fetch.Attempts)
	require.Equal(t, 500*time.Millisecond, cfg.Fetch.InitialDelay)

	require.Equal(t, 5, cfg.Pipeline.MaxPages)
	require.Equal(t, 100, cfg.Pipeline.BatchSize)
	require.Equal(t, 500, cfg.Pipeline.MinViableListings)

	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, "0 6,18 * * *", cfg.Schedule.Cron)
}

func TestLoad_OverridesWinOverDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config.SetDefaults()
	viper.Set("app.environment", "production")
	viper.Set("database.host", "db.internal")
	viper.Set("pipeline.min_viable_listings", 750)

	cfg := config.Load()

	require.Equal(t, "production", cfg.App.Environment)
	require.False(t, cfg.Logger.Development)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, 750, cfg.Pipeline.MinViableListings)
}
