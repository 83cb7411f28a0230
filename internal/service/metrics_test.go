package service_test

import (
	"errors"
	"testing"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
	"ulascansenturk/weather-stats/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestParseMetric(t *testing.T) {
	for _, name := range []string{"temp", "pcp", "clouds", "pressure", "humidity", "wind_speed"} {
		metric, err := service.ParseMetric(name)
		require.NoError(t, err)
		assert.Equal(t, service.Metric(name), metric)
	}

	_, err := service.ParseMetric("visibility")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotFound))
	assert.Contains(t, err.Error(), "visibility")
}

func TestSeriesSkipsNulls(t *testing.T) {
	days := []weatherdata.DayWeather{
		{Temp: ptr(1.5), Humidity: ptr(80)},
		{Temp: nil, Humidity: ptr(82)},
		{Temp: ptr(-0.5), Humidity: nil},
	}

	assert.Equal(t, []float64{1.5, -0.5}, service.Series(days, service.MetricTemp))
	assert.Equal(t, []float64{80, 82}, service.Series(days, service.MetricHumidity))
	assert.Empty(t, service.Series(days, service.MetricPressure))
}

func TestMean(t *testing.T) {
	mean, ok := service.Mean([]float64{1, 2, 3, 4})
	assert.True(t, ok)
	assert.Equal(t, 2.5, mean)

	_, ok = service.Mean(nil)
	assert.False(t, ok)
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{name: "exact window", values: []float64{1, 2, 3}, window: 3, want: []float64{2}},
		{name: "sliding", values: []float64{1, 2, 3, 4, 5}, window: 3, want: []float64{2, 3, 4}},
		{name: "short series", values: []float64{1, 2}, window: 3, want: nil},
		{name: "zero window", values: []float64{1, 2, 3}, window: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.MovingAverage(tt.values, tt.window))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 2.3, service.Round1(2.25))
	assert.Equal(t, -0.3, service.Round1(-0.25))
	assert.Equal(t, -2.1, service.Round1(-2.0833))
	assert.Equal(t, 3.0, service.Round1(2.96))
	assert.Equal(t, 0.0, service.Round1(0.04))
}
