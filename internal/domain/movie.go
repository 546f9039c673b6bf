package domain

import (
	"context"
	"time"
)

type MovieStatus string

const (
	MovieComingSoon MovieStatus = "COMING_SOON"
	MovieNowShowing MovieStatus = "NOW_SHOWING"
	MovieEnded      MovieStatus = "ENDED"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	Genre       string
	Duration    int
	PosterUrl   string
	TrailerUrl  string
	ReleaseDate time.Time
	EndDate     time.Time
	Status      MovieStatus
	AgeRating   string
	Director    string
	Cast        []string
	CreatedAt   time.Time
}

// Validate checks the invariants a movie must hold before it is stored.
func (m *Movie) Validate() error {
	if m.Duration <= 0 {
		return InvalidRequest("movie duration must be positive")
	}

	if m.EndDate.Before(m.ReleaseDate) {
		return InvalidRequest("movie end date must not be before its release date")
	}

	return nil
}

// ShowsOn reports whether the calendar day of t falls inside the movie's run.
// The comparison is made on dates in t's own location.
func (m *Movie) ShowsOn(t time.Time) bool {
	day := dateOf(t)

	return !day.Before(dateOf(m.ReleaseDate)) && !day.After(dateOf(m.EndDate))
}

func dateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
}
