package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ForecastProvider fetches the multi-day daily series for a coordinate.
type ForecastProvider interface {
	GetDailyForecast(ctx context.Context, lat, lon float64) (*OneCallResponse, error)
	GetHTTPClient() *http.Client
}

type OpenWeatherConfig struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32
}

type openWeatherService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewOpenWeatherService(cfg OpenWeatherConfig) ForecastProvider {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A caller abandoning the request says nothing about the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &openWeatherService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: breaker,
	}
}

type OneCallResponse struct {
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	Timezone       string          `json:"timezone"`
	TimezoneOffset int             `json:"timezone_offset"`
	Daily          []DailyForecast `json:"daily"`
}

// DailyForecast is one element of the "daily" array. Temp holds the
// per-period readings (day, min, max, night, eve, morn).
type DailyForecast struct {
	Dt        int64              `json:"dt"`
	Temp      map[string]float64 `json:"temp"`
	Rain      *float64           `json:"rain,omitempty"`
	Clouds    *float64           `json:"clouds"`
	Pressure  *float64           `json:"pressure"`
	Humidity  *float64           `json:"humidity"`
	WindSpeed *float64           `json:"wind_speed"`
}

type openWeatherError struct {
	Message string `json:"message"`
}

func (s *openWeatherService) GetDailyForecast(ctx context.Context, lat, lon float64) (*OneCallResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("OpenWeather request not sent: %w", err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx, lat, lon)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("OpenWeather unavailable: %w", err)
		}
		return nil, err
	}

	return result.(*OneCallResponse), nil
}

func (s *openWeatherService) fetch(ctx context.Context, lat, lon float64) (*OneCallResponse, error) {
	if s.apiKey == "" {
		return nil, errors.New("OpenWeather API key is not configured")
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("exclude", "current,minutely,hourly,alerts")
	params.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("OpenWeather request could not be built: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenWeather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr openWeatherError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("OpenWeather returned status code %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("OpenWeather returned status code: %d", resp.StatusCode)
	}

	var apiResp OneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("OpenWeather returned malformed JSON: %w", err)
	}

	if apiResp.Daily == nil {
		return nil, errors.New("OpenWeather returned malformed JSON: missing daily series")
	}

	return &apiResp, nil
}

func (s *openWeatherService) GetHTTPClient() *http.Client {
	return s.client
}
