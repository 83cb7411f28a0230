package main

import (
	"context"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ulascansenturk/weather-stats/config"
	"ulascansenturk/weather-stats/internal/api/v1/handlers"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
	"ulascansenturk/weather-stats/internal/inmemorycache"
	"ulascansenturk/weather-stats/internal/providers"
	"ulascansenturk/weather-stats/internal/scheduler"
	"ulascansenturk/weather-stats/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	db, dbErr := initializeDatabase(conf)
	if dbErr != nil {
		log.Fatal().Err(dbErr).Msg("failed to initialize database")
	}

	weatherRepo := weatherdata.NewRepository(db)

	cacheProvider := inmemorycache.NewInMemoryCacheProvider(conf.CacheCleanupInterval)

	forecastProvider := providers.NewOpenWeatherService(providers.OpenWeatherConfig{
		BaseURL:            conf.OpenWeatherBaseURL,
		APIKey:             conf.OpenWeatherAPIKey,
		Timeout:            conf.ProviderTimeout,
		BreakerTimeout:     conf.BreakerTimeout,
		BreakerMaxFailures: conf.BreakerMaxFailures,
	})

	ingestionService := service.NewIngestionService(
		forecastProvider,
		weatherRepo,
		cacheProvider,
		service.DefaultLocations,
		conf.IngestTimeout,
	)
	statsService := service.NewStatsService(weatherRepo, cacheProvider, conf.CacheTTL)

	var ingestScheduler *scheduler.Scheduler
	if conf.IngestSchedule != "" {
		ingestScheduler, err = scheduler.New(ingestionService, conf.IngestSchedule, conf.IngestTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create ingestion scheduler")
		}
		ingestScheduler.Start()
	}

	handler := handlers.NewWeatherHandler(statsService, ingestionService, weatherRepo, conf.HTTPTimeoutDuration())

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func(shutdownCtx context.Context) {
		if ingestScheduler != nil {
			if err := ingestScheduler.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("scheduled ingestion did not finish in time")
			}
		}

		shutdownErr := httpServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}

		cacheProvider.Stop()

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(weatherdata.Models()...); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func(shutdownCtx context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback(shutdownCtx)

		cancel()
		cancelCtx()
	}()
}
