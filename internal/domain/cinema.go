package domain

import (
	"context"
	"fmt"
	"time"
)

type Cinema struct {
	ID        int
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
}

type Room struct {
	ID         int
	CinemaID   int
	CinemaName string
	RoomNumber string
	TotalRows  int
	TotalCols  int
	TotalSeats int
	CreatedAt  time.Time
}

type SeatType string

const (
	SeatNormal SeatType = "NORMAL"
	SeatVIP    SeatType = "VIP"
)

// vipRows is the number of rows at the back of a room that are generated as VIP.
const vipRows = 2

// maxRows is bounded by the single-letter row labels A..Z.
const maxRows = 26

type Seat struct {
	ID         int
	RoomID     int
	SeatNumber string
	Row        string
	Col        int
	Type       SeatType
}

// NewRoom derives the seat count from the room's grid and validates its shape.
func NewRoom(cinemaID int, roomNumber string, rows, cols int) (*Room, error) {
	if rows < 1 || rows > maxRows {
		return nil, InvalidRequest("room must have between 1 and %d rows", maxRows)
	}

	if cols < 1 {
		return nil, InvalidRequest("room must have at least one column")
	}

	return &Room{
		CinemaID:   cinemaID,
		RoomNumber: roomNumber,
		TotalRows:  rows,
		TotalCols:  cols,
		TotalSeats: rows * cols,
	}, nil
}

// GenerateSeats lays out the room's seats row by row: rows are labelled A, B, ...
// and columns start at 1, so the seat number is the row letter followed by the column.
// The last two rows are VIP.
func (r *Room) GenerateSeats() []Seat {
	seats := make([]Seat, 0, r.TotalRows*r.TotalCols)

	for i := 0; i < r.TotalRows; i++ {
		row := string(rune('A' + i))

		seatType := SeatNormal
		if i >= r.TotalRows-vipRows {
			seatType = SeatVIP
		}

		for col := 1; col <= r.TotalCols; col++ {
			seats = append(seats, Seat{
				RoomID:     r.ID,
				SeatNumber: fmt.Sprintf("%s%d", row, col),
				Row:        row,
				Col:        col,
				Type:       seatType,
			})
		}
	}

	return seats
}

type CinemaRepository interface {
	Create(ctx context.Context, cinema *Cinema) error
	GetAll(ctx context.Context) ([]Cinema, error)
	GetById(ctx context.Context, id int) (*Cinema, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetById(ctx context.Context, id int) (*Room, error)
	// Lock reads the room and holds it until the surrounding transaction ends.
	Lock(ctx context.Context, id int) (*Room, error)
	GetByCinema(ctx context.Context, cinemaID int) ([]Room, error)
}

type SeatRepository interface {
	CreateAll(ctx context.Context, seats []Seat) error
	GetByIds(ctx context.Context, ids []int) ([]Seat, error)
	GetByRoom(ctx context.Context, roomID int) ([]Seat, error)
}
