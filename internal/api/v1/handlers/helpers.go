package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"ulascansenturk/weather-stats/internal/service"

	"github.com/rs/zerolog/log"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	errorCode := "INTERNAL_ERROR"
	title := "Internal Server Error"

	switch code {
	case http.StatusBadRequest:
		errorCode = "BAD_REQUEST"
		title = "Bad Request"
	case http.StatusNotFound:
		errorCode = "NOT_FOUND"
		title = "Not Found"
	case http.StatusMethodNotAllowed:
		errorCode = "METHOD_NOT_ALLOWED"
		title = "Method Not Allowed"
	case http.StatusBadGateway:
		errorCode = "UPSTREAM_ERROR"
		title = "Bad Gateway"
	case http.StatusServiceUnavailable:
		errorCode = "UNAVAILABLE"
		title = "Service Unavailable"
	}

	respondWithJSON(w, code, ErrorResponse{
		Result: message,
		Errors: []Error{
			{
				Code:   errorCode,
				Detail: message,
				Status: code,
				Title:  title,
			},
		},
	})
}

const (
	upstreamFailureDetail = "weather provider is unavailable"
	internalErrorDetail   = "internal server error"
)

// respondWithServiceError maps the service error taxonomy onto status codes.
// Only client errors echo the error text; 5xx bodies carry a fixed detail and
// callers log the cause.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuery),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrInvalidRange):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUpstreamFailure):
		respondWithError(w, http.StatusBadGateway, upstreamFailureDetail)
	default:
		respondWithError(w, http.StatusInternalServerError, internalErrorDetail)
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// formatValue keeps at least one decimal so whole numbers read as 3.0.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
