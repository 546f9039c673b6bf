package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type PostgresRefreshmentRepository struct {
	db querier
}

func NewPostgresRefreshmentRepository(db querier) *PostgresRefreshmentRepository {
	return &PostgresRefreshmentRepository{
		db: db,
	}
}

func (p *PostgresRefreshmentRepository) Create(ctx context.Context, refreshment *domain.Refreshment) error {
	query := `INSERT INTO refreshments (name, picture_url, price, is_current)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return p.db.QueryRow(ctx,
		query,
		refreshment.Name,
		refreshment.PictureUrl,
		refreshment.Price,
		refreshment.IsCurrent).Scan(&refreshment.ID, &refreshment.CreatedAt)
}

func scanRefreshment(row pgx.Rows, r *domain.Refreshment) error {
	return row.Scan(&r.ID, &r.Name, &r.PictureUrl, &r.Price, &r.IsCurrent, &r.CreatedAt)
}

func (p *PostgresRefreshmentRepository) GetAll(ctx context.Context, onlyCurrent bool) ([]domain.Refreshment, error) {
	query := `
		SELECT id, name, picture_url, price, is_current, created_at
		FROM refreshments
		WHERE is_current OR NOT $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, onlyCurrent)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanRefreshment)
}

func (p *PostgresRefreshmentRepository) GetByIds(ctx context.Context, ids []int) ([]domain.Refreshment, error) {
	query := `
		SELECT id, name, picture_url, price, is_current, created_at
		FROM refreshments
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanRefreshment)
}
