package weatherdata

import (
	"strconv"
	"strings"
	"time"
)

type City struct {
	ID   uint         `json:"id" gorm:"primaryKey"`
	Name string       `json:"name" gorm:"type:text;not null;uniqueIndex:idx_cities_name"`
	Days []DayWeather `json:"-" gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (City) TableName() string {
	return "cities"
}

// DayWeather holds one calendar day of observations for a city. Measurements
// are nullable since the provider may omit any of them.
type DayWeather struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CityID    uint      `json:"city" gorm:"column:city_id;not null;uniqueIndex:idx_day_weathers_city_date,priority:1"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_day_weathers_city_date,priority:2"`
	Temp      *float64  `json:"temp" gorm:"column:temp"`
	Pcp       *float64  `json:"pcp" gorm:"column:pcp"`
	Clouds    *float64  `json:"clouds" gorm:"column:clouds"`
	Pressure  *float64  `json:"pressure" gorm:"column:pressure"`
	Humidity  *float64  `json:"humidity" gorm:"column:humidity"`
	WindSpeed *float64  `json:"wind_speed" gorm:"column:wind_speed"`
}

func (DayWeather) TableName() string {
	return "day_weathers"
}

// AsRecord renders every column as text. Floats keep at least one decimal
// and missing measurements render as "null".
func (d DayWeather) AsRecord() map[string]string {
	return map[string]string{
		"id":         strconv.FormatUint(uint64(d.ID), 10),
		"city":       strconv.FormatUint(uint64(d.CityID), 10),
		"date":       d.Date.Format(time.DateOnly),
		"temp":       formatMeasurement(d.Temp),
		"pcp":        formatMeasurement(d.Pcp),
		"clouds":     formatMeasurement(d.Clouds),
		"pressure":   formatMeasurement(d.Pressure),
		"humidity":   formatMeasurement(d.Humidity),
		"wind_speed": formatMeasurement(d.WindSpeed),
	}
}

func formatMeasurement(v *float64) string {
	if v == nil {
		return "null"
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Models lists every table owned by the store, parents first.
func Models() []interface{} {
	return []interface{}{&City{}, &DayWeather{}}
}
