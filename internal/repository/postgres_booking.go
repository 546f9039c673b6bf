package repository

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type PostgresBookingRepository struct {
	db querier
}

func NewPostgresBookingRepository(db querier) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

const bookingColumns = `id, user_id, showtime_id, booking_code, status, total_price, payment_time, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(
		&b.ID,
		&b.UserID,
		&b.ShowtimeID,
		&b.BookingCode,
		&b.Status,
		&b.TotalPrice,
		&b.PaymentTime,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, booking_code, status, total_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (booking_code) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(ctx,
		query,
		booking.UserID,
		booking.ShowtimeID,
		booking.BookingCode,
		booking.Status,
		booking.TotalPrice).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDuplicateBookingCode
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking domain.Booking

	err := scanBooking(p.db.QueryRow(ctx, query, id), &booking)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetAll(
	ctx context.Context,
	filter domain.BookingFilter) ([]domain.Booking, *domain.Metadata, error) {

	query := `
		SELECT count(*) OVER(), ` + bookingColumns + `
		FROM bookings
		WHERE ($1::bigint = 0 OR user_id = $1)
			AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.Query(ctx, query, filter.UserID, string(filter.Status), filter.Limit(), filter.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	totalRecords := 0

	for rows.Next() {
		var b domain.Booking

		err := rows.Scan(
			&totalRecords,
			&b.ID,
			&b.UserID,
			&b.ShowtimeID,
			&b.BookingCode,
			&b.Status,
			&b.TotalPrice,
			&b.PaymentTime,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filter.Page, filter.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetByShowtime(ctx context.Context, showtimeID int) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE showtime_id = $1 ORDER BY id`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(row pgx.Rows, b *domain.Booking) error {
		return scanBooking(row, b)
	})
}

func (p *PostgresBookingRepository) UpdateStatus(
	ctx context.Context,
	booking *domain.Booking,
	from domain.BookingStatus) error {

	query := `
		UPDATE bookings
		SET status = $1, payment_time = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx, query, booking.Status, booking.PaymentTime, booking.ID, from).Scan(&booking.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	if booking.Status == domain.BookingCancelled {
		_, err = p.db.Exec(ctx, `UPDATE tickets SET active = FALSE WHERE booking_id = $1`, booking.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == pgerrcode.ForeignKeyViolation {
			return domain.InvalidRequest("booking %d still has tickets or refreshments", id)
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

type PostgresTicketRepository struct {
	db querier
}

func NewPostgresTicketRepository(db querier) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

var activeSeatKeyDetail = regexp.MustCompile(`\(showtime_id, seat_id\)=\((\d+), (\d+)\)`)

// seatConflictFromError recovers the clashing seat from the unique index violation detail.
func seatConflictFromError(err error, tickets []domain.Ticket) error {
	var numbers []string

	var detail string
	if m := activeSeatKeyDetail.FindStringSubmatch(errorDetail(err)); m != nil {
		detail = m[2]
	}

	for _, t := range tickets {
		if strconv.Itoa(t.SeatID) == detail {
			numbers = append(numbers, t.SeatNumber)
		}
	}

	return &domain.SeatConflictError{SeatNumbers: numbers}
}

func (p *PostgresTicketRepository) CreateAll(ctx context.Context, tickets []domain.Ticket) error {
	query := `
		INSERT INTO tickets (booking_id, showtime_id, seat_id, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	batch := &pgx.Batch{}
	for i := range tickets {
		t := &tickets[i]
		batch.Queue(query, t.BookingID, t.ShowtimeID, t.SeatID, t.Price).QueryRow(func(row pgx.Row) error {
			return row.Scan(&t.ID, &t.CreatedAt)
		})
	}

	err := p.db.SendBatch(ctx, batch).Close()
	if err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation && constraintName(err) == "tickets_showtime_seat_active_key" {
			return seatConflictFromError(err, tickets)
		}

		return err
	}

	return nil
}

const ticketSelect = `
	SELECT t.id, t.booking_id, t.showtime_id, t.seat_id, se.seat_number, se.seat_row, se.seat_col,
		se.seat_type, t.price, t.created_at
	FROM tickets t
	JOIN bookings b ON b.id = t.booking_id
	JOIN seats se ON se.id = t.seat_id
`

func scanTicket(row pgx.Rows, t *domain.Ticket) error {
	return row.Scan(
		&t.ID,
		&t.BookingID,
		&t.ShowtimeID,
		&t.SeatID,
		&t.SeatNumber,
		&t.Row,
		&t.Col,
		&t.SeatType,
		&t.Price,
		&t.CreatedAt,
	)
}

func (p *PostgresTicketRepository) GetByBooking(ctx context.Context, bookingID int) ([]domain.Ticket, error) {
	return p.list(ctx, ticketSelect+` WHERE t.booking_id = $1 ORDER BY t.id`, bookingID)
}

func (p *PostgresTicketRepository) FindOccupied(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Ticket, error) {
	query := ticketSelect + `
		WHERE t.showtime_id = $1
			AND t.seat_id = ANY($2)
			AND b.status <> 'CANCELLED'
		ORDER BY t.id
	`

	return p.list(ctx, query, showtimeID, seatIDs)
}

func (p *PostgresTicketRepository) GetBookedByShowtime(ctx context.Context, showtimeID int) ([]domain.Ticket, error) {
	query := ticketSelect + `
		WHERE t.showtime_id = $1 AND b.status <> 'CANCELLED'
		ORDER BY se.seat_row, se.seat_col
	`

	return p.list(ctx, query, showtimeID)
}

func (p *PostgresTicketRepository) DeleteByBooking(ctx context.Context, bookingID int) error {
	_, err := p.db.Exec(ctx, `DELETE FROM tickets WHERE booking_id = $1`, bookingID)
	return err
}

func (p *PostgresTicketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanTicket)
}

type PostgresBookingRefreshmentRepository struct {
	db querier
}

func NewPostgresBookingRefreshmentRepository(db querier) *PostgresBookingRefreshmentRepository {
	return &PostgresBookingRefreshmentRepository{
		db: db,
	}
}

func (p *PostgresBookingRefreshmentRepository) CreateAll(ctx context.Context, items []domain.BookingRefreshment) error {
	query := `
		INSERT INTO booking_refreshments (booking_id, refreshment_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for i := range items {
		item := &items[i]
		batch.Queue(query, item.BookingID, item.RefreshmentID, item.Quantity, item.UnitPrice, item.TotalPrice).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&item.ID)
			})
	}

	err := p.db.SendBatch(ctx, batch).Close()
	if err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation {
			return domain.InvalidRequest("a refreshment is listed more than once")
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRefreshmentRepository) GetByBooking(
	ctx context.Context,
	bookingID int) ([]domain.BookingRefreshment, error) {

	query := `
		SELECT br.id, br.booking_id, br.refreshment_id, r.name, br.quantity, br.unit_price, br.total_price
		FROM booking_refreshments br
		JOIN refreshments r ON r.id = br.refreshment_id
		WHERE br.booking_id = $1
		ORDER BY br.id
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(row pgx.Rows, br *domain.BookingRefreshment) error {
		return row.Scan(&br.ID, &br.BookingID, &br.RefreshmentID, &br.Name, &br.Quantity, &br.UnitPrice, &br.TotalPrice)
	})
}

func (p *PostgresBookingRefreshmentRepository) DeleteByBooking(ctx context.Context, bookingID int) error {
	_, err := p.db.Exec(ctx, `DELETE FROM booking_refreshments WHERE booking_id = $1`, bookingID)
	return err
}
