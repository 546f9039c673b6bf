package integration_test

import "time"

const (
	TestJWTSecret = "integration-secret"

	// User related constants
	TestCustomerUsername = "jane"
	TestCustomerEmail    = "jane@example.com"
	TestCustomerFullName = "Jane Doe"
	TestAdminUsername    = "root"
	TestAdminEmail       = "admin@example.com"
	TestUserPassword     = "Test123!@#"

	// Catalog related constants
	TestMovieTitle    = "Inception"
	TestMovieDuration = 120
	TestCinemaName    = "Downtown"
	TestRoomNumber    = "1"
	TestTicketPrice   = "75000"
	TestPopcornPrice  = "30000"
)

const (
	defaultWait = 2 * time.Second
	defaultTick = 20 * time.Millisecond
)

var (
	// far enough ahead that every showtime is bookable
	TestShowDay   = time.Date(2095, 3, 1, 0, 0, 0, 0, time.UTC)
	TestShowStart = TestShowDay.Add(15 * time.Hour)
)
