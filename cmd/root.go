// Package cmd implements the command-line interface for the concurso
// scraping pipeline.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/concursohub/crawler/cmd/httpd"
	"github.com/concursohub/crawler/cmd/postings"
	cmdschedule "github.com/concursohub/crawler/cmd/schedule"
	"github.com/concursohub/crawler/cmd/scrape"
	"github.com/concursohub/crawler/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// rootCmd represents the root command for the CLI.
	rootCmd = &cobra.Command{
		Use:   "crawler",
		Short: "Concurso and news scraping pipeline",
		Long:  `Scrapes public concurso postings and news, normalizes them and reconciles them into the store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)

	rootCmd.AddCommand(scrape.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(cmdschedule.Command())
	rootCmd.AddCommand(postings.Command())
}

// initConfig reads the config file and environment variables into viper.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	config.SetDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindEnvAliases(); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Running on defaults and environment only is fine.
	}

	return nil
}

// bindEnvAliases maps the conventional environment variable names onto
// config keys.
func bindEnvAliases() error {
	aliases := map[string][]string{
		"app.environment":   {"APP_ENV"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"database.host":     {"DB_HOST"},
		"database.port":     {"DB_PORT"},
		"database.user":     {"DB_USER"},
		"database.password": {"DB_PASSWORD"},
		"database.dbname":   {"DB_NAME"},
		"minio.endpoint":    {"MINIO_ENDPOINT"},
		"minio.access_key":  {"MINIO_ACCESS_KEY", "MINIO_ROOT_USER"},
		"minio.secret_key":  {"MINIO_SECRET_KEY", "MINIO_ROOT_PASSWORD"},
		"server.address":    {"SERVER_ADDRESS"},
	}

	for key, envs := range aliases {
		input := append([]string{key}, envs...)
		if err := viper.BindEnv(input...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}
