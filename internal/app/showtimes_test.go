package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/metinatakli/cinema-booking-system/internal/mocks"
	"github.com/metinatakli/cinema-booking-system/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShowtimesTestSuite struct {
	suite.Suite
	app             *Application
	showtimeService *mocks.MockShowtimeService
}

func (s *ShowtimesTestSuite) SetupTest() {
	s.showtimeService = new(mocks.MockShowtimeService)
	s.app = newTestApplication(func(a *Application) {
		a.showtimeService = s.showtimeService
	})
}

func TestShowtimesSuite(t *testing.T) {
	suite.Run(t, new(ShowtimesTestSuite))
}

var (
	afternoon = time.Date(2095, 3, 1, 15, 0, 0, 0, time.UTC)
	ticket    = decimal.RequireFromString("75000")
)

func matchShowtimeInput(want domain.ShowtimeInput) any {
	return mock.MatchedBy(func(got domain.ShowtimeInput) bool {
		if got.MovieID != want.MovieID || got.RoomID != want.RoomID {
			return false
		}
		if !got.StartTime.Equal(want.StartTime) || !got.Price.Equal(want.Price) {
			return false
		}
		if (got.EndTime == nil) != (want.EndTime == nil) {
			return false
		}
		return got.EndTime == nil || got.EndTime.Equal(*want.EndTime)
	})
}

func (s *ShowtimesTestSuite) TestCreateShowtime() {
	tests := []struct {
		name           string
		caller         domain.Caller
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantConflicts  []int
	}{
		{
			name:           "missing movie",
			caller:         admin,
			body:           api.ShowtimeRequest{RoomId: 1, StartTime: afternoon, Price: ticket},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name:           "non positive price",
			caller:         admin,
			body:           api.ShowtimeRequest{MovieId: 1, RoomId: 1, StartTime: afternoon, Price: decimal.Zero},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPositive,
		},
		{
			name:   "customer cannot schedule",
			caller: customer,
			body:   api.ShowtimeRequest{MovieId: 1, RoomId: 1, StartTime: afternoon, Price: ticket},
			setupMock: func() {
				s.showtimeService.On("Create", mock.Anything, customer, mock.Anything).Return(nil, domain.ErrForbidden)
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:   "overlapping showtime",
			caller: admin,
			body:   api.ShowtimeRequest{MovieId: 1, RoomId: 1, StartTime: afternoon, Price: ticket},
			setupMock: func() {
				s.showtimeService.On("Create", mock.Anything, admin, mock.Anything).Return(nil, &domain.SchedulingConflictError{
					Conflicts: []domain.Showtime{{
						ID:        7,
						MovieID:   2,
						RoomID:    1,
						StartTime: afternoon.Add(-time.Hour),
						EndTime:   afternoon.Add(70 * time.Minute),
						Price:     ticket,
					}},
				})
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrSchedulingConflict,
			wantConflicts:  []int{7},
		},
		{
			name:   "movie has ended",
			caller: admin,
			body:   api.ShowtimeRequest{MovieId: 3, RoomId: 1, StartTime: afternoon, Price: ticket},
			setupMock: func() {
				s.showtimeService.On("Create", mock.Anything, admin, mock.Anything).
					Return(nil, domain.InvalidRequest("movie %d has ended", 3))
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid request: movie 3 has ended",
		},
		{
			name:   "scheduled back to back",
			caller: admin,
			body:   api.ShowtimeRequest{MovieId: 1, RoomId: 1, StartTime: afternoon, Price: ticket},
			setupMock: func() {
				input := domain.ShowtimeInput{MovieID: 1, RoomID: 1, StartTime: afternoon, Price: ticket}
				s.showtimeService.On("Create", mock.Anything, admin, matchShowtimeInput(input)).Return(&domain.Showtime{
					ID:        8,
					MovieID:   1,
					RoomID:    1,
					StartTime: afternoon,
					EndTime:   afternoon.Add(2 * time.Hour),
					Price:     ticket,
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showtimeService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/showtimes", tt.body)
			authenticate(s.T(), s.app, r, tt.caller)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			switch {
			case tt.wantStatus == http.StatusCreated:
				var response api.Showtime
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Equal(8, response.Id)
				s.True(response.EndTime.Equal(afternoon.Add(2 * time.Hour)))

			case tt.wantConflicts != nil:
				var response api.SchedulingConflictResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Equal(tt.wantErrMessage, response.Message)

				ids := make([]int, len(response.Conflicts))
				for i, c := range response.Conflicts {
					ids[i] = c.Id
				}
				s.Equal(tt.wantConflicts, ids)

			default:
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{
					wantStatus:     tt.wantStatus,
					wantErrMessage: tt.wantErrMessage,
				})
			}
		})
	}
}

func (s *ShowtimesTestSuite) TestGetShowtimesByDate() {
	tests := []struct {
		name           string
		url            string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "date missing",
			url:            "/showtimes",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "date query parameter is required",
		},
		{
			name:           "malformed date",
			url:            "/showtimes?date=01-03-2095",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "date must be formatted as YYYY-MM-DD",
		},
		{
			name: "listed for date",
			url:  "/showtimes?date=2095-03-01",
			setupMock: func() {
				date := time.Date(2095, 3, 1, 0, 0, 0, 0, time.UTC)
				s.showtimeService.On("ListByDate", mock.Anything, date).Return([]domain.Showtime{
					{ID: 1, StartTime: afternoon, EndTime: afternoon.Add(time.Hour), Price: ticket},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showtimeService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.ShowtimeListResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Len(response.Showtimes, 1)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *ShowtimesTestSuite) TestCheckShowtimeConflicts() {
	start := afternoon.Format(time.RFC3339)
	end := afternoon.Add(2 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name           string
		url            string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantConflict   bool
	}{
		{
			name:           "end before start",
			url:            fmt.Sprintf("/showtimes/conflicts?roomId=1&startTime=%s&endTime=%s", end, start),
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrInvalid,
		},
		{
			name:           "bad timestamp",
			url:            "/showtimes/conflicts?roomId=1&startTime=tomorrow",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "startTime must be an RFC 3339 timestamp",
		},
		{
			name: "free slot",
			url:  fmt.Sprintf("/showtimes/conflicts?roomId=1&startTime=%s&endTime=%s", start, end),
			setupMock: func() {
				s.showtimeService.On("FindConflicts", mock.Anything, 1, mock.Anything, mock.Anything, 0).
					Return([]domain.Showtime{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "overlapping slot excluding itself",
			url:  fmt.Sprintf("/showtimes/conflicts?roomId=1&startTime=%s&endTime=%s&excludeId=4", start, end),
			setupMock: func() {
				s.showtimeService.On("FindConflicts", mock.Anything, 1, mock.Anything, mock.Anything, 4).
					Return([]domain.Showtime{{ID: 9, RoomID: 1, StartTime: afternoon, EndTime: afternoon.Add(time.Hour)}}, nil)
			},
			wantStatus:   http.StatusOK,
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showtimeService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			authenticate(s.T(), s.app, r, admin)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.ConflictCheckResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Equal(tt.wantConflict, response.HasConflict)
				s.NotNil(response.Conflicts)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *ShowtimesTestSuite) TestDeleteShowtimeWithBookings() {
	s.showtimeService.On("Delete", mock.Anything, admin, 3).
		Return(domain.InvalidRequest("showtime %d has active bookings", 3))

	w, r := executeRequest(s.T(), http.MethodDelete, "/showtimes/3", nil)
	authenticate(s.T(), s.app, r, admin)

	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusBadRequest, w.Code)
	s.showtimeService.AssertExpectations(s.T())
}
