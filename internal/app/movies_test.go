package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
	"github.com/metinatakli/cinema-booking-system/internal/mocks"
	"github.com/metinatakli/cinema-booking-system/internal/validator"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MoviesTestSuite struct {
	suite.Suite
	app            *Application
	catalogService *mocks.MockCatalogService
}

func (s *MoviesTestSuite) SetupTest() {
	s.catalogService = new(mocks.MockCatalogService)
	s.app = newTestApplication(func(a *Application) {
		a.catalogService = s.catalogService
	})
}

func TestMoviesSuite(t *testing.T) {
	suite.Run(t, new(MoviesTestSuite))
}

func (s *MoviesTestSuite) TestGetMovies() {
	release := time.Date(2095, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2095, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.MovieListResponse
	}{
		{
			name:           "unsupported sort",
			url:            "/movies?sort=rating",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrOneOf, "id -id title -title release_date -release_date"),
		},
		{
			name:           "page size too large",
			url:            "/movies?pageSize=101",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxValue, "100"),
		},
		{
			name:           "search term too long",
			url:            "/movies?term=" + fmt.Sprintf("%051d", 0),
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMaxLength, "50"),
		},
		{
			name: "defaults applied",
			url:  "/movies?term=incep&sort=-release_date",
			setupMock: func() {
				s.catalogService.On("ListMovies", mock.Anything, domain.Pagination{
					Page:     domain.DefaultPage,
					PageSize: domain.DefaultPageSize,
					Term:     "incep",
					Sort:     "-release_date",
				}).Return([]*domain.Movie{{
					ID:          1,
					Title:       "Inception",
					Duration:    148,
					ReleaseDate: release,
					EndDate:     end,
					Status:      domain.MovieNowShowing,
				}}, domain.NewMetadata(1, 1, 10), nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.MovieListResponse{
				Movies: []api.Movie{{
					Id:          1,
					Title:       "Inception",
					Duration:    148,
					ReleaseDate: openapi_types.Date{Time: release},
					EndDate:     openapi_types.Date{Time: end},
					Status:      api.NOWSHOWING,
					Cast:        []string{},
				}},
				Metadata: &api.Metadata{CurrentPage: 1, FirstPage: 1, LastPage: 1, PageSize: 10, TotalRecords: 1},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.catalogService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.MovieListResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))

				diff := cmp.Diff(tt.wantResponse, &response)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
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

func (s *MoviesTestSuite) TestGetMovieById() {
	tests := []struct {
		name           string
		url            string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "negative id",
			url:            "/movies/-1",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid id parameter",
		},
		{
			name: "unknown movie",
			url:  "/movies/42",
			setupMock: func() {
				s.catalogService.On("GetMovie", mock.Anything, 42).Return(nil, domain.NotFound("movie", 42))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "movie 42: record not found",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.catalogService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

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

func (s *MoviesTestSuite) TestCreateMovie() {
	body := `{
		"title": "Inception",
		"duration": 148,
		"releaseDate": "2095-01-01",
		"endDate": "2095-03-01",
		"status": "NOW_SHOWING",
		"cast": ["Leonardo DiCaprio"]
	}`

	tests := []struct {
		name           string
		caller         domain.Caller
		body           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "unknown status",
			caller:         admin,
			body:           `{"title": "Inception", "duration": 148, "releaseDate": "2095-01-01", "endDate": "2095-03-01", "status": "SOON"}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrOneOf, "COMING_SOON NOW_SHOWING ENDED"),
		},
		{
			name:           "zero duration",
			caller:         admin,
			body:           `{"title": "Inception", "duration": 0, "releaseDate": "2095-01-01", "endDate": "2095-03-01", "status": "ENDED"}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name:   "customer cannot create",
			caller: customer,
			body:   body,
			setupMock: func() {
				s.catalogService.On("CreateMovie", mock.Anything, customer, mock.Anything).Return(domain.ErrForbidden)
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:   "end before release",
			caller: admin,
			body:   body,
			setupMock: func() {
				s.catalogService.On("CreateMovie", mock.Anything, admin, mock.Anything).
					Return(domain.InvalidRequest("end date must not precede release date"))
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid request: end date must not precede release date",
		},
		{
			name:   "created",
			caller: admin,
			body:   body,
			setupMock: func() {
				s.catalogService.On("CreateMovie", mock.Anything, admin, mock.MatchedBy(func(m *domain.Movie) bool {
					return m.Title == "Inception" && m.Status == domain.MovieNowShowing && len(m.Cast) == 1
				})).Run(func(args mock.Arguments) {
					args.Get(2).(*domain.Movie).ID = 5
				}).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.catalogService.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/movies", tt.body)
			authenticate(s.T(), s.app, r, tt.caller)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var response api.Movie
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Equal(5, response.Id)
				s.Equal("2095-01-01", response.ReleaseDate.String())
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
