package service

import (
	"context"
	"fmt"
	"sort"
	"time"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
	"ulascansenturk/weather-stats/internal/inmemorycache"
	"ulascansenturk/weather-stats/internal/providers"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Location struct {
	City string
	Lat  float64
	Lon  float64
}

// DefaultLocations is the static set of ingested cities.
var DefaultLocations = []Location{
	{City: "Kiev", Lat: 50.45, Lon: 30.52},
	{City: "Lviv", Lat: 49.83, Lon: 24.02},
	{City: "Odessa", Lat: 46.47, Lon: 30.73},
	{City: "Kharkiv", Lat: 49.98, Lon: 36.25},
	{City: "Dnepr", Lat: 48.45, Lon: 34.98},
}

type IngestionService interface {
	// IngestAll fetches every location and stores the completed days. It
	// returns the number of day rows actually inserted.
	IngestAll(ctx context.Context) (int64, error)
}

// DefaultRunTimeout bounds a run when no positive timeout is configured.
const DefaultRunTimeout = 2 * time.Minute

type ingestionService struct {
	provider   providers.ForecastProvider
	repo       weatherdata.Repository
	cache      inmemorycache.Cache
	locations  []Location
	runTimeout time.Duration
	runs       singleflight.Group
}

func NewIngestionService(
	provider providers.ForecastProvider,
	repo weatherdata.Repository,
	cache inmemorycache.Cache,
	locations []Location,
	runTimeout time.Duration,
) IngestionService {
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}

	return &ingestionService{
		provider:   provider,
		repo:       repo,
		cache:      cache,
		locations:  locations,
		runTimeout: runTimeout,
	}
}

// IngestAll coalesces concurrent callers into a single run; every caller
// receives that run's result. The run is detached from the caller that
// started it and bounded by runTimeout, so a caller giving up only stops its
// own wait.
func (s *ingestionService) IngestAll(ctx context.Context) (int64, error) {
	results := s.runs.DoChan("ingest", func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.runTimeout)
		defer cancel()
		return s.ingest(runCtx)
	})

	select {
	case res := <-results:
		if res.Shared {
			log.Debug().Msg("joined an ingestion run already in progress")
		}
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	case <-ctx.Done():
		return 0, fmt.Errorf("stopped waiting for ingestion run: %w", ctx.Err())
	}
}

func (s *ingestionService) ingest(ctx context.Context) (int64, error) {
	started := time.Now()

	cities := make([]*weatherdata.City, len(s.locations))
	for i, location := range s.locations {
		city, err := s.repo.FindOrCreateCity(ctx, location.City)
		if err != nil {
			return 0, fmt.Errorf("%w: resolving %s city: %v", ErrStoreFailure, location.City, err)
		}
		cities[i] = city
	}

	batches := make([][]weatherdata.DayWeather, len(s.locations))
	g, gctx := errgroup.WithContext(ctx)
	for i, location := range s.locations {
		i, location := i, location
		g.Go(func() error {
			forecast, err := s.provider.GetDailyForecast(gctx, location.Lat, location.Lon)
			if err != nil {
				return fmt.Errorf("%w: fetching %s city: %v", ErrUpstreamFailure, location.City, err)
			}
			batches[i] = DaysFromForecast(cities[i].ID, forecast)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("ingestion aborted, nothing was stored")
		return 0, err
	}

	var days []weatherdata.DayWeather
	for _, batch := range batches {
		days = append(days, batch...)
	}

	written, err := s.repo.SaveDays(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("%w: saving days: %v", ErrStoreFailure, err)
	}

	if written > 0 && s.cache != nil {
		s.cache.Purge()
	}

	log.Info().
		Int("cities", len(s.locations)).
		Int("days_received", len(days)).
		Int64("days_written", written).
		Dur("elapsed", time.Since(started)).
		Msg("ingestion completed")

	return written, nil
}

// DaysFromForecast converts the daily series into rows for cityID. The first
// element is today and still incomplete, so it is skipped. Dates are taken in
// the payload's own timezone.
func DaysFromForecast(cityID uint, forecast *providers.OneCallResponse) []weatherdata.DayWeather {
	if forecast == nil || len(forecast.Daily) < 2 {
		return nil
	}

	zone := time.FixedZone(forecast.Timezone, forecast.TimezoneOffset)
	seen := make(map[time.Time]bool, len(forecast.Daily)-1)
	days := make([]weatherdata.DayWeather, 0, len(forecast.Daily)-1)

	for _, daily := range forecast.Daily[1:] {
		local := time.Unix(daily.Dt, 0).In(zone)
		date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
		if seen[date] {
			continue
		}
		seen[date] = true

		pcp := 0.0
		if daily.Rain != nil {
			pcp = *daily.Rain
		}

		days = append(days, weatherdata.DayWeather{
			CityID:    cityID,
			Date:      date,
			Temp:      dailyTemperature(daily.Temp),
			Pcp:       &pcp,
			Clouds:    daily.Clouds,
			Pressure:  daily.Pressure,
			Humidity:  daily.Humidity,
			WindSpeed: daily.WindSpeed,
		})
	}

	return days
}

// dailyTemperature averages all per-period readings of a day.
func dailyTemperature(readings map[string]float64) *float64 {
	if len(readings) == 0 {
		return nil
	}

	periods := make([]string, 0, len(readings))
	for period := range readings {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	values := make([]float64, 0, len(periods))
	for _, period := range periods {
		values = append(values, readings[period])
	}

	mean, _ := Mean(values)
	temp := Round1(mean)
	return &temp
}
