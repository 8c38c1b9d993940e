package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var the host shell can set.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Local store
	DBPath string `mapstructure:"DB_PATH"`

	// Remote authority
	ServerURL        string `mapstructure:"SERVER_URL"`
	ServerAPIKey     string `mapstructure:"SERVER_API_KEY"`
	RemoteTimeoutSec int    `mapstructure:"REMOTE_TIMEOUT_SEC"`

	// Sync
	SyncIntervalSec int `mapstructure:"SYNC_INTERVAL_SEC"` // 0 disables the cron
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for a terminal running next to the host shell
	viper.SetDefault("PORT", 8700)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_PATH", "vopecs_pos.db")
	viper.SetDefault("SERVER_URL", "http://vopecspos.test")
	viper.SetDefault("SERVER_API_KEY", "")
	viper.SetDefault("REMOTE_TIMEOUT_SEC", 30)
	viper.SetDefault("SYNC_INTERVAL_SEC", 60)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
