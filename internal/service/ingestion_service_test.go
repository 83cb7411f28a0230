package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"ulascansenturk/weather-stats/internal/db/weatherdata"
	"ulascansenturk/weather-stats/internal/mocks"
	"ulascansenturk/weather-stats/internal/providers"
	"ulascansenturk/weather-stats/internal/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testLocations = []service.Location{
	{City: "Kiev", Lat: 50.45, Lon: 30.52},
	{City: "Lviv", Lat: 49.83, Lon: 24.02},
}

// forecast builds a payload for a city two hours east of UTC whose first
// element is today, 2021-12-15.
func forecast(days int) *providers.OneCallResponse {
	response := &providers.OneCallResponse{
		Lat:            50.45,
		Lon:            30.52,
		Timezone:       "Europe/Kiev",
		TimezoneOffset: 7200,
	}
	for i := 0; i < days; i++ {
		dt := time.Date(2021, 12, 15+i, 10, 0, 0, 0, time.UTC).Unix()
		response.Daily = append(response.Daily, providers.DailyForecast{
			Dt:        dt,
			Temp:      map[string]float64{"day": float64(i) + 2, "night": float64(i)},
			Clouds:    ptr(75),
			Pressure:  ptr(1012),
			Humidity:  ptr(88),
			WindSpeed: ptr(4.3),
		})
	}
	return response
}

type IngestionServiceTestSuite struct {
	suite.Suite
	mockProvider *mocks.MockForecastProvider
	mockRepo     *mocks.MockRepository
	mockCache    *mocks.MockCache
	service      service.IngestionService
	ctx          context.Context
}

func (s *IngestionServiceTestSuite) SetupTest() {
	s.mockProvider = mocks.NewMockForecastProvider(s.T())
	s.mockRepo = mocks.NewMockRepository(s.T())
	s.mockCache = mocks.NewMockCache(s.T())
	s.service = service.NewIngestionService(s.mockProvider, s.mockRepo, s.mockCache, testLocations, time.Minute)
	s.ctx = context.Background()
}

func (s *IngestionServiceTestSuite) expectCities() {
	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Kiev").Return(&weatherdata.City{ID: 1, Name: "Kiev"}, nil).Once()
	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Lviv").Return(&weatherdata.City{ID: 2, Name: "Lviv"}, nil).Once()
}

func (s *IngestionServiceTestSuite) TestIngestAll() {
	s.expectCities()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 50.45, 30.52).Return(forecast(3), nil).Once()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 49.83, 24.02).Return(forecast(3), nil).Once()

	var saved []weatherdata.DayWeather
	s.mockRepo.On("SaveDays", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]weatherdata.DayWeather)
		}).
		Return(int64(4), nil).Once()
	s.mockCache.On("Purge").Once()

	written, err := s.service.IngestAll(s.ctx)

	s.NoError(err)
	s.Equal(int64(4), written)
	s.Require().Len(saved, 4)

	perCity := map[uint]int{}
	for _, d := range saved {
		perCity[d.CityID]++
		s.NotEqual("2021-12-15", d.Date.Format(time.DateOnly))
	}
	s.Equal(map[uint]int{1: 2, 2: 2}, perCity)
}

func (s *IngestionServiceTestSuite) TestIngestAllNothingNew() {
	s.expectCities()
	s.mockProvider.On("GetDailyForecast", mock.Anything, mock.Anything, mock.Anything).Return(forecast(3), nil).Twice()
	s.mockRepo.On("SaveDays", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	written, err := s.service.IngestAll(s.ctx)

	s.NoError(err)
	s.Equal(int64(0), written)
	s.mockCache.AssertNotCalled(s.T(), "Purge")
}

func (s *IngestionServiceTestSuite) TestIngestAllUpstreamFailure() {
	s.expectCities()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 50.45, 30.52).Return(forecast(3), nil).Maybe()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 49.83, 24.02).
		Return(nil, errors.New("status code 401: Invalid API key")).Once()

	written, err := s.service.IngestAll(s.ctx)

	s.ErrorIs(err, service.ErrUpstreamFailure)
	s.Contains(err.Error(), "Lviv")
	s.Equal(int64(0), written)
	s.mockRepo.AssertNotCalled(s.T(), "SaveDays", mock.Anything, mock.Anything)
	s.mockCache.AssertNotCalled(s.T(), "Purge")
}

func (s *IngestionServiceTestSuite) TestIngestAllCityStoreFailure() {
	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Kiev").Return(nil, errors.New("connection reset")).Once()

	_, err := s.service.IngestAll(s.ctx)

	s.ErrorIs(err, service.ErrStoreFailure)
	s.mockProvider.AssertNotCalled(s.T(), "GetDailyForecast", mock.Anything, mock.Anything, mock.Anything)
}

func (s *IngestionServiceTestSuite) TestIngestAllSaveFailure() {
	s.expectCities()
	s.mockProvider.On("GetDailyForecast", mock.Anything, mock.Anything, mock.Anything).Return(forecast(3), nil).Twice()
	s.mockRepo.On("SaveDays", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock detected")).Once()

	_, err := s.service.IngestAll(s.ctx)

	s.ErrorIs(err, service.ErrStoreFailure)
	s.mockCache.AssertNotCalled(s.T(), "Purge")
}

func (s *IngestionServiceTestSuite) TestConcurrentCallsShareOneRun() {
	started := make(chan struct{})
	release := make(chan struct{})

	svc := service.NewIngestionService(s.mockProvider, s.mockRepo, s.mockCache, testLocations[:1], time.Minute)

	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Kiev").Return(&weatherdata.City{ID: 1, Name: "Kiev"}, nil).Once()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 50.45, 30.52).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(forecast(3), nil).Once()
	s.mockRepo.On("SaveDays", mock.Anything, mock.Anything).Return(int64(2), nil).Once()
	s.mockCache.On("Purge").Once()

	const callers = 4
	results := make([]int64, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.IngestAll(s.ctx)
	}()
	<-started

	for i := 1; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.IngestAll(s.ctx)
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		s.NoError(errs[i])
		s.Equal(int64(2), results[i])
	}
}

func (s *IngestionServiceTestSuite) TestRunSurvivesFirstCallerLeaving() {
	started := make(chan struct{})
	release := make(chan struct{})
	var runCtxErr error

	svc := service.NewIngestionService(s.mockProvider, s.mockRepo, s.mockCache, testLocations[:1], time.Minute)

	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Kiev").Return(&weatherdata.City{ID: 1, Name: "Kiev"}, nil).Once()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 50.45, 30.52).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			runCtxErr = args.Get(0).(context.Context).Err()
		}).
		Return(forecast(3), nil).Once()
	s.mockRepo.On("SaveDays", mock.Anything, mock.Anything).Return(int64(2), nil).Once()
	s.mockCache.On("Purge").Once()

	firstCtx, cancelFirst := context.WithCancel(s.ctx)
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.IngestAll(firstCtx)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		written int64
		err     error
	}
	second := make(chan outcome, 1)
	go func() {
		written, err := svc.IngestAll(s.ctx)
		second <- outcome{written, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancelFirst()
	s.ErrorIs(<-firstErr, context.Canceled)

	close(release)
	result := <-second
	s.NoError(result.err)
	s.Equal(int64(2), result.written)
	s.NoError(runCtxErr)
}

func (s *IngestionServiceTestSuite) TestRunHasItsOwnDeadline() {
	svc := service.NewIngestionService(s.mockProvider, s.mockRepo, s.mockCache, testLocations[:1], 50*time.Millisecond)

	s.mockRepo.On("FindOrCreateCity", mock.Anything, "Kiev").Return(&weatherdata.City{ID: 1, Name: "Kiev"}, nil).Once()
	s.mockProvider.On("GetDailyForecast", mock.Anything, 50.45, 30.52).
		Return(func(ctx context.Context, lat, lon float64) (*providers.OneCallResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	_, err := svc.IngestAll(s.ctx)

	s.ErrorIs(err, service.ErrUpstreamFailure)
	s.mockRepo.AssertNotCalled(s.T(), "SaveDays", mock.Anything, mock.Anything)
}

func TestIngestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceTestSuite))
}

func TestDaysFromForecast(t *testing.T) {
	days := service.DaysFromForecast(7, forecast(4))

	if len(days) != 3 {
		t.Fatalf("expected 3 completed days, got %d", len(days))
	}

	first := days[0]
	if got := first.Date.Format(time.DateOnly); got != "2021-12-16" {
		t.Errorf("expected first date 2021-12-16, got %s", got)
	}
	if first.CityID != 7 {
		t.Errorf("expected city id 7, got %d", first.CityID)
	}
	if first.Temp == nil || *first.Temp != 2.0 {
		t.Errorf("expected temp 2.0 as the mean of all readings, got %v", first.Temp)
	}
	if first.Pcp == nil || *first.Pcp != 0 {
		t.Errorf("expected pcp to default to 0 without rain, got %v", first.Pcp)
	}
	if first.Humidity == nil || *first.Humidity != 88 {
		t.Errorf("expected humidity 88, got %v", first.Humidity)
	}
}

func TestDaysFromForecastTimezone(t *testing.T) {
	response := forecast(2)
	// 23:30 UTC on the 16th is already the 17th two hours east.
	response.Daily[1].Dt = time.Date(2021, 12, 16, 23, 30, 0, 0, time.UTC).Unix()
	response.Daily[1].Rain = ptr(1.25)
	response.Daily[1].Temp = nil

	days := service.DaysFromForecast(1, response)

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if got := days[0].Date.Format(time.DateOnly); got != "2021-12-17" {
		t.Errorf("expected local date 2021-12-17, got %s", got)
	}
	if days[0].Pcp == nil || *days[0].Pcp != 1.25 {
		t.Errorf("expected pcp 1.25, got %v", days[0].Pcp)
	}
	if days[0].Temp != nil {
		t.Errorf("expected nil temp without readings, got %v", *days[0].Temp)
	}
}

func TestDaysFromForecastDuplicateDates(t *testing.T) {
	response := forecast(3)
	response.Daily[2].Dt = response.Daily[1].Dt + 3600

	days := service.DaysFromForecast(1, response)

	if len(days) != 1 {
		t.Fatalf("expected duplicate dates to collapse to 1 day, got %d", len(days))
	}
}

func TestDaysFromForecastOnlyToday(t *testing.T) {
	if days := service.DaysFromForecast(1, forecast(1)); len(days) != 0 {
		t.Fatalf("expected no completed days, got %d", len(days))
	}
	if days := service.DaysFromForecast(1, nil); len(days) != 0 {
		t.Fatalf("expected no days for a nil forecast, got %d", len(days))
	}
}
