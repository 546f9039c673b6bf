package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Refreshment struct {
	ID         int
	Name       string
	PictureUrl string
	Price      decimal.Decimal
	IsCurrent  bool
	CreatedAt  time.Time
}

type RefreshmentRepository interface {
	Create(ctx context.Context, refreshment *Refreshment) error
	GetAll(ctx context.Context, onlyCurrent bool) ([]Refreshment, error)
	GetByIds(ctx context.Context, ids []int) ([]Refreshment, error)
}
