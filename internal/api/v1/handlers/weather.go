package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"ulascansenturk/weather-stats/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type WeatherHandler struct {
	statsService     service.StatsService
	ingestionService service.IngestionService
	store            Pinger
	timeout          time.Duration
	routes           map[string]http.HandlerFunc
}

func NewWeatherHandler(
	statsService service.StatsService,
	ingestionService service.IngestionService,
	store Pinger,
	timeout time.Duration,
) *WeatherHandler {
	h := &WeatherHandler{
		statsService:     statsService,
		ingestionService: ingestionService,
		store:            store,
		timeout:          timeout,
	}

	h.routes = map[string]http.HandlerFunc{
		"/get_data":    h.GetData,
		"/cities":      h.GetCities,
		"/mean":        h.GetMean,
		"/moving_mean": h.GetMovingMean,
		"/records":     h.GetRecords,
		"/health":      h.GetHealth,
	}

	return h
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, ok := h.routes[r.URL.Path]
	switch {
	case !ok:
		respondWithError(w, http.StatusNotFound, "not found")
	case r.Method != http.MethodGet:
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	default:
		route(w, r)
	}
}

func (h *WeatherHandler) GetData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	written, err := h.ingestionService.IngestAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to ingest weather data")
		respondWithServiceError(w, err)
		return
	}

	log.Debug().Int64("days_written", written).Msg("weather data ingested")
	respondWithJSON(w, http.StatusCreated, Response{Result: "created"})
}

func (h *WeatherHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cities, err := h.statsService.Cities(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list cities")
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{Result: cities})
}

func (h *WeatherHandler) GetMean(w http.ResponseWriter, r *http.Request) {
	h.serveStat(w, r, "Mean", h.statsService.Mean)
}

func (h *WeatherHandler) GetMovingMean(w http.ResponseWriter, r *http.Request) {
	h.serveStat(w, r, "Moving mean", h.statsService.MovingMean)
}

func (h *WeatherHandler) serveStat(
	w http.ResponseWriter,
	r *http.Request,
	label string,
	compute func(ctx context.Context, city, valueType string) (float64, error),
) {
	city := r.URL.Query().Get("city")
	valueType := r.URL.Query().Get("value_type")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	value, err := compute(ctx, city, valueType)
	if err != nil {
		logFailure(err).Err(err).Str("city", city).Str("metric", valueType).Msgf("%s query failed", label)
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Result: fmt.Sprintf("%s for %s=%s for %s city", label, valueType, formatValue(value), city),
	})
}

func (h *WeatherHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	city := query.Get("city")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	records, err := h.statsService.Records(ctx, city, query.Get("start_dt"), query.Get("end_dt"))
	if err != nil {
		logFailure(err).Err(err).Str("city", city).Msg("records query failed")
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{Result: records})
}

func (h *WeatherHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("store ping failed")
		respondWithError(w, http.StatusServiceUnavailable, "store is unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, Response{Result: "ok"})
}

// logFailure logs client errors at warn and everything else at error.
func logFailure(err error) *zerolog.Event {
	if errors.Is(err, service.ErrInvalidQuery) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrInvalidRange) {
		return log.Warn()
	}
	return log.Error()
}
