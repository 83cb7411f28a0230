package service

import (
	"fmt"
	"math"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
)

type Metric string

const (
	MetricTemp      Metric = "temp"
	MetricPcp       Metric = "pcp"
	MetricClouds    Metric = "clouds"
	MetricPressure  Metric = "pressure"
	MetricHumidity  Metric = "humidity"
	MetricWindSpeed Metric = "wind_speed"
)

var metrics = map[Metric]func(day weatherdata.DayWeather) *float64{
	MetricTemp:      func(day weatherdata.DayWeather) *float64 { return day.Temp },
	MetricPcp:       func(day weatherdata.DayWeather) *float64 { return day.Pcp },
	MetricClouds:    func(day weatherdata.DayWeather) *float64 { return day.Clouds },
	MetricPressure:  func(day weatherdata.DayWeather) *float64 { return day.Pressure },
	MetricHumidity:  func(day weatherdata.DayWeather) *float64 { return day.Humidity },
	MetricWindSpeed: func(day weatherdata.DayWeather) *float64 { return day.WindSpeed },
}

func ParseMetric(name string) (Metric, error) {
	metric := Metric(name)
	if _, ok := metrics[metric]; !ok {
		return "", fmt.Errorf("%w: value type %q is not valid", ErrNotFound, name)
	}
	return metric, nil
}

// Series extracts the metric from days, keeping their order and skipping nulls.
func Series(days []weatherdata.DayWeather, metric Metric) []float64 {
	value := metrics[metric]
	series := make([]float64, 0, len(days))
	for _, day := range days {
		if v := value(day); v != nil {
			series = append(series, *v)
		}
	}
	return series
}

// Mean returns the arithmetic mean of values; ok is false for an empty input.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// MovingAverage returns the simple moving average over a window of size n,
// valid windows only: len(values)-n+1 points, nil when there is no full window.
func MovingAverage(values []float64, n int) []float64 {
	if n <= 0 || len(values) < n {
		return nil
	}

	out := make([]float64, 0, len(values)-n+1)
	for i := n - 1; i < len(values); i++ {
		var sum float64
		for _, v := range values[i-n+1 : i+1] {
			sum += v
		}
		out = append(out, sum/float64(n))
	}
	return out
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
