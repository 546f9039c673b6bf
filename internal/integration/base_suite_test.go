package integration_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/app"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName         = "cinema_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app      *TestApp
	postgres *postgres.PostgresContainer
	redis    *tcredis.RedisContainer
	server   *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	var (
		dsn       string
		redisAddr string
		err       error
	)

	s.postgres, dsn, err = startPostgres(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}

	s.redis, redisAddr, err = startRedis(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			DSN:          dsn,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisAddr,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
			SeatsTTL:     time.Minute,
		},
		JWT: app.JWTConfig{
			Secret: TestJWTSecret,
			TTL:    time.Hour,
		},
	}

	testApp, err := newTestApp(cfg)
	if err != nil {
		s.T().Fatalf("cannot initialize app: %s", err)
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) SetupTest() {
	execSQL(s.T(), s.app, `TRUNCATE booking_refreshments, tickets, bookings, showtimes, seats, rooms,
		cinemas, movies, refreshments, users RESTART IDENTITY CASCADE`)

	require.NoError(s.T(), s.app.Redis.FlushDB(context.Background()).Err())
	s.app.Mailer.Reset()
	s.app.Publisher.Reset()
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.DB.Close()
		s.app.Redis.Close()
	}
	if s.postgres != nil {
		if err := testcontainers.TerminateContainer(s.postgres); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.redis != nil {
		if err := testcontainers.TerminateContainer(s.redis); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

// startPostgres runs the schema migrations against a fresh database and
// returns its DSN.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
					dbUser, dbPassword, host, port.Port(), dbName)
			}).WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start DB container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("failed to get connection string: %w", err)
	}

	err = migrateUp(dsn, "file://../../migrations")
	if err != nil {
		return container, "", fmt.Errorf("failed to run migrations: %w", err)
	}

	return container, dsn, nil
}

func migrateUp(dsn string, migrationsPath string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "pgx", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// startRedis returns the host:port the go-redis client dials.
func startRedis(ctx context.Context) (*tcredis.RedisContainer, string, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start cache container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, "", err
	}

	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return container, "", err
	}

	return container, fmt.Sprintf("%s:%s", host, port.Port()), nil
}

// registerUser signs a user up through the API and returns an access token.
func (s *BaseSuite) registerUser(username, email string, role api.Role) string {
	t := s.T()

	call(t, s.app, http.MethodPost, "/auth/register", "", api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: TestUserPassword,
		FullName: TestCustomerFullName,
	}, http.StatusCreated, nil)

	if role == api.ADMIN {
		execSQL(t, s.app, `UPDATE users SET role = 'ADMIN' WHERE email = $1`, email)
	}

	var auth api.AuthResponse
	call(t, s.app, http.MethodPost, "/auth/login", "", api.LoginRequest{
		Email:    email,
		Password: TestUserPassword,
	}, http.StatusOK, &auth)

	return auth.Token
}

type catalog struct {
	MovieID    int
	CinemaID   int
	RoomID     int
	ShowtimeID int
	PopcornID  int
	Seats      map[string]int
}

// seedCatalog builds a movie, a 3x4 room, one showtime at TestShowStart and a
// refreshment through the admin API.
func (s *BaseSuite) seedCatalog(adminToken string) catalog {
	t := s.T()
	c := catalog{Seats: make(map[string]int)}

	var movie api.Movie
	call(t, s.app, http.MethodPost, "/movies", adminToken, api.CreateMovieRequest{
		Title:       TestMovieTitle,
		Duration:    TestMovieDuration,
		ReleaseDate: openapi_types.Date{Time: time.Date(2095, 1, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:     openapi_types.Date{Time: time.Date(2095, 6, 30, 0, 0, 0, 0, time.UTC)},
		Status:      api.NOWSHOWING,
		Cast:        []string{},
	}, http.StatusCreated, &movie)
	c.MovieID = movie.Id

	var cinema api.Cinema
	call(t, s.app, http.MethodPost, "/cinemas", adminToken, api.CreateCinemaRequest{
		Name:    TestCinemaName,
		Address: "1 Main St",
	}, http.StatusCreated, &cinema)
	c.CinemaID = cinema.Id

	var room api.RoomSeatsResponse
	call(t, s.app, http.MethodPost, fmt.Sprintf("/cinemas/%d/rooms", cinema.Id), adminToken, api.CreateRoomRequest{
		RoomNumber: TestRoomNumber,
		TotalRows:  3,
		TotalCols:  4,
	}, http.StatusCreated, &room)
	c.RoomID = room.Room.Id

	for _, seat := range room.Seats {
		c.Seats[seat.SeatNumber] = seat.Id
	}

	var showtime api.Showtime
	call(t, s.app, http.MethodPost, "/showtimes", adminToken, api.ShowtimeRequest{
		MovieId:   c.MovieID,
		RoomId:    c.RoomID,
		StartTime: TestShowStart,
		Price:     decimal.RequireFromString(TestTicketPrice),
	}, http.StatusCreated, &showtime)
	c.ShowtimeID = showtime.Id

	var popcorn api.Refreshment
	call(t, s.app, http.MethodPost, "/refreshments", adminToken, api.CreateRefreshmentRequest{
		Name:  "Popcorn",
		Price: decimal.RequireFromString(TestPopcornPrice),
	}, http.StatusCreated, &popcorn)
	c.PopcornID = popcorn.Id

	return c
}

func (c catalog) seatIDs(numbers ...string) []int {
	ids := make([]int, len(numbers))
	for i, n := range numbers {
		ids[i] = c.Seats[n]
	}

	return ids
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
