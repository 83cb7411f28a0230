package weatherdata_test

import (
	"testing"
	"time"
	"ulascansenturk/weather-stats/internal/db/weatherdata"

	"github.com/stretchr/testify/assert"
)

func TestDayWeatherAsRecord(t *testing.T) {
	temp, pcp, clouds, wind := -1.25, 0.0, 75.0, 3.4
	day := weatherdata.DayWeather{
		ID:        12,
		CityID:    3,
		Date:      time.Date(2021, 12, 15, 0, 0, 0, 0, time.UTC),
		Temp:      &temp,
		Pcp:       &pcp,
		Clouds:    &clouds,
		WindSpeed: &wind,
	}

	assert.Equal(t, map[string]string{
		"id":         "12",
		"city":       "3",
		"date":       "2021-12-15",
		"temp":       "-1.25",
		"pcp":        "0.0",
		"clouds":     "75.0",
		"pressure":   "null",
		"humidity":   "null",
		"wind_speed": "3.4",
	}, day.AsRecord())
}
