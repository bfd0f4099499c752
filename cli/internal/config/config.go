// Package config loads quarry configuration from files, environment
// variables and .env files.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the application configuration.
type Config struct {
	DatabaseURL     string
	Provider        string
	Port            int
	Environment     string
	LogQueries      bool
	MigrationsTable string
	MigrationsPath  string
}

// LoadConfig loads configuration from various sources.
func LoadConfig() (*Config, error) {
	// Find home directory
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	// Set config file paths
	viper.SetConfigName(".quarry")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "quarry"))

	// Set environment variable prefix
	viper.SetEnvPrefix("QUARRY")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("provider", "postgres")
	viper.SetDefault("port", 5432)
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_queries", false)
	viper.SetDefault("migrations_table", "_quarry_migrations")
	viper.SetDefault("migrations_path", "db/migrations")

	// Try to read config file (ignore if not found)
	_ = viper.ReadInConfig()

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Provider:        viper.GetString("provider"),
		Port:            viper.GetInt("port"),
		Environment:     viper.GetString("environment"),
		LogQueries:      viper.GetBool("log_queries"),
		MigrationsTable: viper.GetString("migrations_table"),
		MigrationsPath:  viper.GetString("migrations_path"),
	}

	return cfg, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(cfg *Config) error {
	viper.Set("provider", cfg.Provider)
	viper.Set("port", cfg.Port)
	viper.Set("environment", cfg.Environment)
	viper.Set("log_queries", cfg.LogQueries)
	viper.Set("migrations_table", cfg.MigrationsTable)
	viper.Set("migrations_path", cfg.MigrationsPath)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "quarry")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(configPath, ".quarry.yaml")
	return viper.WriteConfigAs(configFile)
}
