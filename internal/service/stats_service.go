package service

import (
	"context"
	"fmt"
	"time"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
	"ulascansenturk/weather-stats/internal/inmemorycache"

	"github.com/rs/zerolog/log"
)

const (
	// DateLayout is the DD-MM-YYYY format of range query parameters and result keys.
	DateLayout = "02-01-2006"

	MaxRangeDays     = 7
	movingMeanWindow = 3
)

type StatsService interface {
	Cities(ctx context.Context) ([]string, error)
	Mean(ctx context.Context, city, valueType string) (float64, error)
	MovingMean(ctx context.Context, city, valueType string) (float64, error)
	Records(ctx context.Context, city, startDate, endDate string) (map[string]map[string]string, error)
}

type statsService struct {
	repo     weatherdata.Repository
	cache    inmemorycache.Cache
	cacheTTL time.Duration
}

// NewStatsService builds the read side. cache may be nil to disable caching.
func NewStatsService(repo weatherdata.Repository, cache inmemorycache.Cache, cacheTTL time.Duration) StatsService {
	return &statsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *statsService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	names := make([]string, 0, len(cities))
	for _, city := range cities {
		names = append(names, city.Name)
	}
	return names, nil
}

func (s *statsService) Mean(ctx context.Context, city, valueType string) (float64, error) {
	return s.cached(ctx, "mean", city, valueType, func(series []float64) (float64, error) {
		mean, _ := Mean(series)
		return Round1(mean), nil
	})
}

func (s *statsService) MovingMean(ctx context.Context, city, valueType string) (float64, error) {
	return s.cached(ctx, "moving_mean", city, valueType, func(series []float64) (float64, error) {
		smoothed := MovingAverage(series, movingMeanWindow)
		mean, ok := Mean(smoothed)
		if !ok {
			return 0, fmt.Errorf("%w: moving mean needs at least %d values of %s for %s city, got %d",
				ErrNotFound, movingMeanWindow, valueType, city, len(series))
		}
		return Round1(mean), nil
	})
}

func (s *statsService) cached(
	ctx context.Context,
	kind, city, valueType string,
	compute func(series []float64) (float64, error),
) (float64, error) {
	if city == "" || valueType == "" {
		return 0, fmt.Errorf("%w: city or value type was not specified", ErrInvalidQuery)
	}
	metric, err := ParseMetric(valueType)
	if err != nil {
		return 0, err
	}

	key := kind + ":" + city + ":" + string(metric)
	var generation uint64
	if s.cache != nil {
		generation = s.cache.Generation()
		data, found, err := s.cache.Get(key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to read stats cache")
		} else if found {
			return data.Value, nil
		}
	}

	series, err := s.resolveSeries(ctx, city, metric)
	if err != nil {
		return 0, err
	}

	value, err := compute(series)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(key, &inmemorycache.StatsCacheData{Value: value}, s.cacheTTL, generation); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to write stats cache")
		}
	}

	return value, nil
}

func (s *statsService) resolveSeries(ctx context.Context, city string, metric Metric) ([]float64, error) {
	days, err := s.repo.ListCityDays(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no data stored for %s city", ErrNotFound, city)
	}

	series := Series(days, metric)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no %s values stored for %s city", ErrNotFound, metric, city)
	}

	return series, nil
}

// Records returns the days of city between startDate and endDate, keyed by
// DD-MM-YYYY. The day before startDate is included as lead-in.
func (s *statsService) Records(ctx context.Context, city, startDate, endDate string) (map[string]map[string]string, error) {
	if city == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: one of the query parameters is not specified", ErrInvalidQuery)
	}

	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q is not in DD-MM-YYYY format", ErrInvalidQuery, startDate)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q is not in DD-MM-YYYY format", ErrInvalidQuery, endDate)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidRange)
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range is longer than %d days", ErrInvalidRange, MaxRangeDays)
	}

	days, err := s.repo.ListCityDaysBetween(ctx, city, start.AddDate(0, 0, -1), end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	records := make(map[string]map[string]string, len(days))
	for _, day := range days {
		records[day.Date.Format(DateLayout)] = day.AsRecord()
	}
	return records, nil
}
