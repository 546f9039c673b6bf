package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/metinatakli/cinema-booking-system/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
	client *mocks.MockRedisClient
	cache  *RedisBookedSeatsCache
}

func (s *CacheTestSuite) SetupTest() {
	s.client = new(mocks.MockRedisClient)
	s.cache = NewRedisBookedSeatsCache(s.client, time.Minute)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) entry(version int64, tickets []domain.Ticket) string {
	raw, err := json.Marshal(bookedSeatsEntry{Version: version, Tickets: tickets})
	s.Require().NoError(err)

	return string(raw)
}

func (s *CacheTestSuite) TestGetMiss() {
	s.client.On("Get", mock.Anything, "booked_seats_version:5").Return(redis.NewStringResult("", redis.Nil))
	s.client.On("Get", mock.Anything, "booked_seats:5").Return(redis.NewStringResult("", redis.Nil))

	tickets, version, ok, err := s.cache.Get(context.Background(), 5)

	s.NoError(err)
	s.False(ok)
	s.Zero(version)
	s.Nil(tickets)
	s.client.AssertExpectations(s.T())
}

func (s *CacheTestSuite) TestGetHit() {
	cached := []domain.Ticket{{ID: 1, SeatID: 3, SeatNumber: "A3", Row: "A", Col: 3, Price: decimal.NewFromInt(75000)}}

	s.client.On("Get", mock.Anything, "booked_seats_version:5").Return(redis.NewStringResult("2", nil))
	s.client.On("Get", mock.Anything, "booked_seats:5").Return(redis.NewStringResult(s.entry(2, cached), nil))

	tickets, version, ok, err := s.cache.Get(context.Background(), 5)

	s.Require().NoError(err)
	s.True(ok)
	s.EqualValues(2, version)
	s.Require().Len(tickets, 1)
	s.Equal("A3", tickets[0].SeatNumber)
	s.True(decimal.NewFromInt(75000).Equal(tickets[0].Price))
}

// An entry written by a reader that loaded the seats before the last
// invalidation carries the old version and must not be served.
func (s *CacheTestSuite) TestGetIgnoresEntryFromBeforeInvalidation() {
	stale := []domain.Ticket{{ID: 1, SeatID: 3, SeatNumber: "A3", Row: "A", Col: 3, Price: decimal.NewFromInt(75000)}}

	s.client.On("Get", mock.Anything, "booked_seats_version:5").Return(redis.NewStringResult("3", nil))
	s.client.On("Get", mock.Anything, "booked_seats:5").Return(redis.NewStringResult(s.entry(2, stale), nil))

	tickets, version, ok, err := s.cache.Get(context.Background(), 5)

	s.NoError(err)
	s.False(ok)
	s.EqualValues(3, version)
	s.Nil(tickets)
}

func (s *CacheTestSuite) TestGetError() {
	s.client.On("Get", mock.Anything, "booked_seats_version:5").Return(redis.NewStringResult("", errors.New("connection refused")))

	_, _, ok, err := s.cache.Get(context.Background(), 5)

	s.Error(err)
	s.False(ok)
}

func (s *CacheTestSuite) TestSetStoresEmptyListForNil() {
	s.client.On("Set", mock.Anything, "booked_seats:9", []byte(`{"version":4,"tickets":[]}`), time.Minute).
		Return(redis.NewStatusResult("OK", nil))

	err := s.cache.Set(context.Background(), 9, 4, nil)

	s.NoError(err)
	s.client.AssertExpectations(s.T())
}

func (s *CacheTestSuite) TestInvalidate() {
	s.client.On("Incr", mock.Anything, "booked_seats_version:9").Return(redis.NewIntResult(5, nil))
	s.client.On("Del", mock.Anything, []string{"booked_seats:9"}).Return(redis.NewIntResult(1, nil))

	err := s.cache.Invalidate(context.Background(), 9)

	s.NoError(err)
	s.client.AssertExpectations(s.T())
}

func (s *CacheTestSuite) TestInvalidateStopsWhenVersionBumpFails() {
	s.client.On("Incr", mock.Anything, "booked_seats_version:9").Return(redis.NewIntResult(0, errors.New("connection refused")))

	err := s.cache.Invalidate(context.Background(), 9)

	s.Error(err)
	s.client.AssertNotCalled(s.T(), "Del", mock.Anything, mock.Anything)
}
