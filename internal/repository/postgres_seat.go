package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type PostgresSeatRepository struct {
	db querier
}

func NewPostgresSeatRepository(db querier) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) CreateAll(ctx context.Context, seats []domain.Seat) error {
	query := `
		INSERT INTO seats (room_id, seat_number, seat_row, seat_col, seat_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for i := range seats {
		s := &seats[i]
		batch.Queue(query, s.RoomID, s.SeatNumber, s.Row, s.Col, s.Type).QueryRow(func(row pgx.Row) error {
			return row.Scan(&s.ID)
		})
	}

	return p.db.SendBatch(ctx, batch).Close()
}

func scanSeat(row pgx.Rows, s *domain.Seat) error {
	return row.Scan(&s.ID, &s.RoomID, &s.SeatNumber, &s.Row, &s.Col, &s.Type)
}

func (p *PostgresSeatRepository) GetByIds(ctx context.Context, ids []int) ([]domain.Seat, error) {
	query := `
		SELECT id, room_id, seat_number, seat_row, seat_col, seat_type
		FROM seats
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanSeat)
}

func (p *PostgresSeatRepository) GetByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	query := `
		SELECT id, room_id, seat_number, seat_row, seat_col, seat_type
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := p.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanSeat)
}
