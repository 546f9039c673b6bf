package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type PostgresStore struct {
	db   *pgxpool.Pool
	q    querier
	inTx bool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		q:  db,
	}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	return runInTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&PostgresStore{db: s.db, q: tx, inTx: true})
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	txOptions := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (s *PostgresStore) Movies() domain.MovieRepository {
	return NewPostgresMovieRepository(s.q)
}

func (s *PostgresStore) Cinemas() domain.CinemaRepository {
	return NewPostgresCinemaRepository(s.q)
}

func (s *PostgresStore) Rooms() domain.RoomRepository {
	return NewPostgresRoomRepository(s.q)
}

func (s *PostgresStore) Seats() domain.SeatRepository {
	return NewPostgresSeatRepository(s.q)
}

func (s *PostgresStore) Showtimes() domain.ShowtimeRepository {
	return NewPostgresShowtimeRepository(s.q)
}

func (s *PostgresStore) Bookings() domain.BookingRepository {
	return NewPostgresBookingRepository(s.q)
}

func (s *PostgresStore) Tickets() domain.TicketRepository {
	return NewPostgresTicketRepository(s.q)
}

func (s *PostgresStore) BookingRefreshments() domain.BookingRefreshmentRepository {
	return NewPostgresBookingRefreshmentRepository(s.q)
}

func (s *PostgresStore) Refreshments() domain.RefreshmentRepository {
	return NewPostgresRefreshmentRepository(s.q)
}

func (s *PostgresStore) Users() domain.UserRepository {
	return NewPostgresUserRepository(s.q)
}

var _ domain.Store = (*PostgresStore)(nil)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}

func collectRows[T any](rows pgx.Rows, scan func(pgx.Rows, *T) error) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)

	for rows.Next() {
		var item T

		err := scan(rows, &item)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func errorDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Detail
	}

	return ""
}
