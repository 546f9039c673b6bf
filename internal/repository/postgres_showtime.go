package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type PostgresShowtimeRepository struct {
	db querier
}

func NewPostgresShowtimeRepository(db querier) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

const showtimeSelect = `
	SELECT s.id, s.movie_id, m.title, s.room_id, r.room_number, c.id, c.name,
		s.start_time, s.end_time, s.price, s.created_at
	FROM showtimes s
	JOIN movies m ON m.id = s.movie_id
	JOIN rooms r ON r.id = s.room_id
	JOIN cinemas c ON c.id = r.cinema_id
`

func scanShowtime(row pgx.Row, s *domain.Showtime) error {
	return row.Scan(
		&s.ID,
		&s.MovieID,
		&s.MovieTitle,
		&s.RoomID,
		&s.RoomNumber,
		&s.CinemaID,
		&s.CinemaName,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.CreatedAt,
	)
}

// translateShowtimeError maps constraint failures raised by a concurrent writer
// to the same errors the scheduler reports.
func translateShowtimeError(err error, s *domain.Showtime) error {
	switch pgErrorCode(err) {
	case pgerrcode.ExclusionViolation:
		return &domain.SchedulingConflictError{}
	case pgerrcode.CheckViolation:
		return domain.InvalidRequest("showtime violates constraint %s", constraintName(err))
	case pgerrcode.ForeignKeyViolation:
		return domain.InvalidRequest("movie %d or room %d does not exist", s.MovieID, s.RoomID)
	}

	return err
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, room_id, start_time, end_time, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := p.db.QueryRow(ctx,
		query,
		showtime.MovieID,
		showtime.RoomID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price).Scan(&showtime.ID)

	if err != nil {
		return translateShowtimeError(err, showtime)
	}

	return p.reload(ctx, showtime)
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $1, room_id = $2, start_time = $3, end_time = $4, price = $5
		WHERE id = $6
	`

	tag, err := p.db.Exec(ctx,
		query,
		showtime.MovieID,
		showtime.RoomID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.ID)

	if err != nil {
		return translateShowtimeError(err, showtime)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return p.reload(ctx, showtime)
}

func (p *PostgresShowtimeRepository) reload(ctx context.Context, showtime *domain.Showtime) error {
	stored, err := p.GetById(ctx, showtime.ID)
	if err != nil {
		return err
	}

	*showtime = *stored

	return nil
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == pgerrcode.ForeignKeyViolation {
			return domain.InvalidRequest("showtime %d still has bookings", id)
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	return p.getShowtime(ctx, showtimeSelect+` WHERE s.id = $1`, id)
}

func (p *PostgresShowtimeRepository) Lock(ctx context.Context, id int) (*domain.Showtime, error) {
	return p.getShowtime(ctx, showtimeSelect+` WHERE s.id = $1 FOR UPDATE OF s`, id)
}

func (p *PostgresShowtimeRepository) getShowtime(ctx context.Context, query string, id int) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := scanShowtime(p.db.QueryRow(ctx, query, id), &showtime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) FindConflicting(
	ctx context.Context,
	roomID int,
	start, end time.Time,
	excludeID int) ([]domain.Showtime, error) {

	query := showtimeSelect + `
		WHERE s.room_id = $1
			AND s.start_time < $3
			AND s.end_time > $2
			AND s.id <> $4
		ORDER BY s.start_time, s.id
	`

	return p.list(ctx, query, roomID, start, end, excludeID)
}

func (p *PostgresShowtimeRepository) GetByMovieStartingAfter(
	ctx context.Context,
	movieID int,
	after time.Time) ([]domain.Showtime, error) {

	query := showtimeSelect + `
		WHERE s.movie_id = $1 AND s.start_time >= $2
		ORDER BY s.start_time, s.id
	`

	return p.list(ctx, query, movieID, after)
}

func (p *PostgresShowtimeRepository) GetBetween(ctx context.Context, from, to time.Time) ([]domain.Showtime, error) {
	query := showtimeSelect + `
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY s.start_time, s.id
	`

	return p.list(ctx, query, from, to)
}

func (p *PostgresShowtimeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Showtime, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(row pgx.Rows, s *domain.Showtime) error {
		return scanShowtime(row, s)
	})
}
