package weatherdata

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindOrCreateCity(ctx context.Context, name string) (*City, error)
	ListCities(ctx context.Context) ([]City, error)
	ListCityDays(ctx context.Context, cityName string) ([]DayWeather, error)
	ListCityDaysBetween(ctx context.Context, cityName string, from, to time.Time) ([]DayWeather, error)
	SaveDays(ctx context.Context, days []DayWeather) (int64, error)
	Ping(ctx context.Context) error
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

// FindOrCreateCity resolves a city by exact name, inserting it when missing.
// A concurrent insert of the same name loses on the unique index and the
// caller falls back to the committed row.
func (r *WeatherSQLRepository) FindOrCreateCity(ctx context.Context, name string) (*City, error) {
	var city City

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&city).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		city = City{Name: name}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&city)
		if res.Error != nil {
			return res.Error
		}
		if city.ID != 0 {
			return nil
		}

		return tx.Where("name = ?", name).First(&city).Error
	})
	if err != nil {
		return nil, err
	}

	return &city, nil
}

func (r *WeatherSQLRepository) ListCities(ctx context.Context) ([]City, error) {
	var cities []City
	if err := r.db.WithContext(ctx).Order("id").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// ListCityDays returns every stored day of the named city in chronological
// order, ties broken by insertion order.
func (r *WeatherSQLRepository) ListCityDays(ctx context.Context, cityName string) ([]DayWeather, error) {
	var days []DayWeather
	err := r.cityDays(ctx, cityName).Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// ListCityDaysBetween is ListCityDays restricted to from <= date <= to.
func (r *WeatherSQLRepository) ListCityDaysBetween(ctx context.Context, cityName string, from, to time.Time) ([]DayWeather, error) {
	var days []DayWeather
	err := r.cityDays(ctx, cityName).
		Where("day_weathers.date BETWEEN ? AND ?", from, to).
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *WeatherSQLRepository) cityDays(ctx context.Context, cityName string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&DayWeather{}).
		Joins("JOIN cities ON cities.id = day_weathers.city_id").
		Where("cities.name = ?", cityName).
		Order("day_weathers.date, day_weathers.id")
}

// SaveDays inserts all days in a single transaction. Days already stored for
// the same (city, date) are left untouched; the returned count only includes
// rows that were actually inserted.
func (r *WeatherSQLRepository) SaveDays(ctx context.Context, days []DayWeather) (int64, error) {
	if len(days) == 0 {
		return 0, nil
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "city_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&days)
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

func (r *WeatherSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
