package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=mange port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	LogLevel    string
}

func Load() *Config {
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("DATABASE_DSN", defaultDSN)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	cfg := &Config{
		HTTPPort:    viper.GetString("HTTP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		CORSOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Warn().Msg("DATABASE_DSN not set, using the local development default")
	}

	return cfg
}
