package config

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"time"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	OpenWeatherBaseURL string
	OpenWeatherAPIKey  string
	ProviderTimeout    time.Duration
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32

	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// IngestSchedule is a cron expression; empty disables scheduled ingestion.
	IngestSchedule string
	IngestTimeout  time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-stats")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:5000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", 60)
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/onecall")
	v.SetDefault("PROVIDER_TIMEOUT", 10*time.Second)
	v.SetDefault("BREAKER_TIMEOUT", 30*time.Second)
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("CACHE_CLEANUP_INTERVAL", time.Minute)
	v.SetDefault("INGEST_SCHEDULE", "")
	v.SetDefault("INGEST_TIMEOUT", 2*time.Minute)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:          v.GetString("SERVICE_NAME"),
		ServerAddress:        v.GetString("SERVER_ADDRESS"),
		DBName:               v.GetString("DATABASE_NAME"),
		DBPassword:           v.GetString("DATABASE_PASSWORD"),
		DBUser:               v.GetString("DATABASE_USER"),
		DBPort:               v.GetString("DATABASE_PORT"),
		DBHost:               v.GetString("DATABASE_HOST"),
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		HTTPTimeout:          v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherBaseURL:   v.GetString("OPENWEATHER_BASE_URL"),
		OpenWeatherAPIKey:    v.GetString("OPENWEATHER_API_KEY"),
		ProviderTimeout:      v.GetDuration("PROVIDER_TIMEOUT"),
		BreakerTimeout:       v.GetDuration("BREAKER_TIMEOUT"),
		BreakerMaxFailures:   v.GetUint32("BREAKER_MAX_FAILURES"),
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		CacheCleanupInterval: v.GetDuration("CACHE_CLEANUP_INTERVAL"),
		IngestSchedule:       v.GetString("INGEST_SCHEDULE"),
		IngestTimeout:        v.GetDuration("INGEST_TIMEOUT"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	if config.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY is empty, provider calls will be rejected")
	}

	return config, nil
}

// minDuration rejects zero, negative and unit-less values; viper reads a bare
// "300" as 300ns.
const minDuration = time.Millisecond

func (c *Config) validate() error {
	durations := []struct {
		key   string
		value time.Duration
	}{
		{"PROVIDER_TIMEOUT", c.ProviderTimeout},
		{"BREAKER_TIMEOUT", c.BreakerTimeout},
		{"CACHE_TTL", c.CacheTTL},
		{"CACHE_CLEANUP_INTERVAL", c.CacheCleanupInterval},
		{"INGEST_TIMEOUT", c.IngestTimeout},
	}
	for _, d := range durations {
		if d.value < minDuration {
			return fmt.Errorf("%s must be a duration with a unit such as 30s, got %s", d.key, d.value)
		}
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be a positive number of seconds, got %d", c.HTTPTimeout)
	}

	return nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
