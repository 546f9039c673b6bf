package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type PostgresCinemaRepository struct {
	db querier
}

func NewPostgresCinemaRepository(db querier) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `INSERT INTO cinemas (name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return p.db.QueryRow(ctx, query, cinema.Name, cinema.Address, cinema.Phone, cinema.Email).
		Scan(&cinema.ID, &cinema.CreatedAt)
}

func (p *PostgresCinemaRepository) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	query := `SELECT id, name, address, phone, email, created_at FROM cinemas ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(row pgx.Rows, c *domain.Cinema) error {
		return row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.CreatedAt)
	})
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `SELECT id, name, address, phone, email, created_at FROM cinemas WHERE id = $1`

	var c domain.Cinema

	err := p.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &c, nil
}

type PostgresRoomRepository struct {
	db querier
}

func NewPostgresRoomRepository(db querier) *PostgresRoomRepository {
	return &PostgresRoomRepository{
		db: db,
	}
}

func (p *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		WITH inserted AS (
			INSERT INTO rooms (cinema_id, room_number, total_rows, total_cols, total_seats)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, cinema_id, created_at
		)
		SELECT i.id, c.name, i.created_at
		FROM inserted i
		JOIN cinemas c ON c.id = i.cinema_id
	`

	err := p.db.QueryRow(ctx,
		query,
		room.CinemaID,
		room.RoomNumber,
		room.TotalRows,
		room.TotalCols,
		room.TotalSeats).Scan(&room.ID, &room.CinemaName, &room.CreatedAt)

	if err != nil {
		switch pgErrorCode(err) {
		case pgerrcode.UniqueViolation:
			return domain.InvalidRequest("room %s already exists in cinema %d", room.RoomNumber, room.CinemaID)
		case pgerrcode.ForeignKeyViolation:
			return domain.NotFound("cinema", room.CinemaID)
		}

		return err
	}

	return nil
}

const roomSelect = `
	SELECT r.id, r.cinema_id, c.name, r.room_number, r.total_rows, r.total_cols, r.total_seats, r.created_at
	FROM rooms r
	JOIN cinemas c ON c.id = r.cinema_id
`

func scanRoom(row pgx.Row, r *domain.Room) error {
	return row.Scan(&r.ID, &r.CinemaID, &r.CinemaName, &r.RoomNumber, &r.TotalRows, &r.TotalCols, &r.TotalSeats, &r.CreatedAt)
}

func (p *PostgresRoomRepository) GetById(ctx context.Context, id int) (*domain.Room, error) {
	return p.getRoom(ctx, roomSelect+` WHERE r.id = $1`, id)
}

func (p *PostgresRoomRepository) Lock(ctx context.Context, id int) (*domain.Room, error) {
	return p.getRoom(ctx, roomSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

func (p *PostgresRoomRepository) getRoom(ctx context.Context, query string, id int) (*domain.Room, error) {
	var room domain.Room

	err := scanRoom(p.db.QueryRow(ctx, query, id), &room)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &room, nil
}

func (p *PostgresRoomRepository) GetByCinema(ctx context.Context, cinemaID int) ([]domain.Room, error) {
	rows, err := p.db.Query(ctx, roomSelect+` WHERE r.cinema_id = $1 ORDER BY r.id`, cinemaID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(row pgx.Rows, r *domain.Room) error {
		return scanRoom(row, r)
	})
}
