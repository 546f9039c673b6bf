package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShowtimeStartTolerance is how far in the past a new start time may lie.
const ShowtimeStartTolerance = time.Minute

type Showtime struct {
	ID         int
	MovieID    int
	MovieTitle string
	RoomID     int
	RoomNumber string
	CinemaID   int
	CinemaName string
	StartTime  time.Time
	EndTime    time.Time
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching endpoints do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

func (s *Showtime) Overlaps(other *Showtime) bool {
	return Overlaps(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

func (s *Showtime) HasStarted(now time.Time) bool {
	return s.StartTime.Before(now)
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id int) error
	GetById(ctx context.Context, id int) (*Showtime, error)
	// Lock reads the showtime and holds it until the surrounding transaction ends.
	Lock(ctx context.Context, id int) (*Showtime, error)
	// FindConflicting returns showtimes in the room whose interval overlaps [start, end),
	// skipping excludeID when it is non-zero.
	FindConflicting(ctx context.Context, roomID int, start, end time.Time, excludeID int) ([]Showtime, error)
	GetByMovieStartingAfter(ctx context.Context, movieID int, after time.Time) ([]Showtime, error)
	GetBetween(ctx context.Context, from, to time.Time) ([]Showtime, error)
}
