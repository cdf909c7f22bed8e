// Package config loads the application configuration from viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/concursohub/crawler/internal/fetch"
	"github.com/concursohub/crawler/internal/images"
	"github.com/concursohub/crawler/internal/logger"
	"github.com/concursohub/crawler/internal/pipeline"
	"github.com/concursohub/crawler/internal/store"
)

// Config is the aggregated application configuration.
type Config struct {
	App      AppConfig
	Logger   logger.Config
	Database store.Config
	MinIO    images.Config
	Fetch    fetch.Config
	Pipeline pipeline.Config
	Server   ServerConfig
	Schedule ScheduleConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// ScheduleConfig holds the cron scheduling settings.
type ScheduleConfig struct {
	// Cron is a cron spec; runs the pipeline for every content type.
	Cron string `yaml:"cron"`
}

// SetDefaults registers every configuration default with viper. Called before
// reading the config file so missing keys fall back cleanly.
func SetDefaults() {
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	dbDefaults := store.NewConfig()
	viper.SetDefault("database.host", dbDefaults.Host)
	viper.SetDefault("database.port", dbDefaults.Port)
	viper.SetDefault("database.user", dbDefaults.User)
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", dbDefaults.DBName)
	viper.SetDefault("database.sslmode", dbDefaults.SSLMode)

	minioDefaults := images.NewConfig()
	viper.SetDefault("minio.enabled", minioDefaults.Enabled)
	viper.SetDefault("minio.endpoint", minioDefaults.Endpoint)
	viper.SetDefault("minio.access_key", "")
	viper.SetDefault("minio.secret_key", "")
	viper.SetDefault("minio.use_ssl", minioDefaults.UseSSL)
	viper.SetDefault("minio.bucket", minioDefaults.Bucket)
	viper.SetDefault("minio.concurrency", minioDefaults.Concurrency)

	fetchDefaults := fetch.NewConfig()
	viper.SetDefault("fetch.attempts", fetchDefaults.Attempts)
	viper.SetDefault("fetch.initial_delay", fetchDefaults.InitialDelay)
	viper.SetDefault("fetch.timeout", fetchDefaults.Timeout)
	viper.SetDefault("fetch.user_agent", fetchDefaults.UserAgent)

	pipelineDefaults := pipeline.NewConfig()
	viper.SetDefault("pipeline.max_pages", pipelineDefaults.MaxPages)
	viper.SetDefault("pipeline.page_delay", pipelineDefaults.PageDelay)
	viper.SetDefault("pipeline.batch_size", pipelineDefaults.BatchSize)
	viper.SetDefault("pipeline.empty_page_limit", pipelineDefaults.EmptyPageLimit)
	viper.SetDefault("pipeline.min_viable_listings", pipelineDefaults.MinViableListings)

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("schedule.cron", "0 6,18 * * *")
}

// Load builds the aggregated configuration from viper's current state.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Logger: logger.Config{
			Level:       logger.Level(viper.GetString("logger.level")),
			Encoding:    viper.GetString("logger.encoding"),
			Development: viper.GetString("app.environment") == "development",
		},
		Database: store.Config{
			Host:     viper.GetString("database.host"),
			Port:     viper.GetString("database.port"),
			User:     viper.GetString("database.user"),
			Password: viper.GetString("database.password"),
			DBName:   viper.GetString("database.dbname"),
			SSLMode:  viper.GetString("database.sslmode"),
		},
		MinIO: images.Config{
			Enabled:     viper.GetBool("minio.enabled"),
			Endpoint:    viper.GetString("minio.endpoint"),
			AccessKey:   viper.GetString("minio.access_key"),
			SecretKey:   viper.GetString("minio.secret_key"),
			UseSSL:      viper.GetBool("minio.use_ssl"),
			Bucket:      viper.GetString("minio.bucket"),
			Concurrency: viper.GetInt("minio.concurrency"),
		},
		Fetch: fetch.Config{
			Attempts:     viper.GetInt("fetch.attempts"),
			InitialDelay: viper.GetDuration("fetch.initial_delay"),
			Timeout:      viper.GetDuration("fetch.timeout"),
			UserAgent:    viper.GetString("fetch.user_agent"),
		},
		Pipeline: pipeline.Config{
			MaxPages:          viper.GetInt("pipeline.max_pages"),
			PageDelay:         viper.GetDuration("pipeline.page_delay"),
			BatchSize:         viper.GetInt("pipeline.batch_size"),
			EmptyPageLimit:    viper.GetInt("pipeline.empty_page_limit"),
			MinViableListings: viper.GetInt("pipeline.min_viable_listings"),
		},
		Server: ServerConfig{
			Address: viper.GetString("server.address"),
		},
		Schedule: ScheduleConfig{
			Cron: viper.GetString("schedule.cron"),
		},
	}
}
