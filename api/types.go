// Package api holds the request and response bodies of the HTTP API. Request types carry
// validator tags; api.yaml documents the same shapes.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	PENDING   BookingStatus = "PENDING"
	PAID      BookingStatus = "PAID"
	CANCELLED BookingStatus = "CANCELLED"
)

type MovieStatus string

const (
	COMINGSOON MovieStatus = "COMING_SOON"
	NOWSHOWING MovieStatus = "NOW_SHOWING"
	ENDED      MovieStatus = "ENDED"
)

type SeatType string

const (
	NORMAL SeatType = "NORMAL"
	VIP    SeatType = "VIP"
)

type Role string

const (
	ADMIN    Role = "ADMIN"
	CUSTOMER Role = "CUSTOMER"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SeatConflictResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
	Seats     []string  `json:"seats"`
}

type SchedulingConflictResponse struct {
	Message   string     `json:"message"`
	RequestId string     `json:"requestId"`
	Timestamp time.Time  `json:"timestamp"`
	Conflicts []Showtime `json:"conflicts"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type PaginationParams struct {
	Page     *int `validate:"omitempty,min=1,max=10000000"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}

// Auth

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string  `json:"email" validate:"required,email,max=100"`
	Password string  `json:"password" validate:"required,password"`
	FullName string  `json:"fullName" validate:"required,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// Movies

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1,max=10000000"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Sort     *string `validate:"omitempty,oneof=id -id title -title release_date -release_date"`
	Term     *string `validate:"omitempty,max=50"`
}

type CreateMovieRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	Genre       string             `json:"genre" validate:"max=100"`
	Duration    int                `json:"duration" validate:"required,min=1,max=600"`
	PosterUrl   string             `json:"posterUrl" validate:"omitempty,url"`
	TrailerUrl  string             `json:"trailerUrl" validate:"omitempty,url"`
	ReleaseDate openapi_types.Date `json:"releaseDate" validate:"required"`
	EndDate     openapi_types.Date `json:"endDate" validate:"required"`
	Status      MovieStatus        `json:"status" validate:"required,oneof=COMING_SOON NOW_SHOWING ENDED"`
	AgeRating   string             `json:"ageRating" validate:"max=10"`
	Director    string             `json:"director" validate:"max=100"`
	Cast        []string           `json:"cast" validate:"max=50,dive,required,max=100"`
}

type Movie struct {
	Id          int                `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Genre       string             `json:"genre"`
	Duration    int                `json:"duration"`
	PosterUrl   string             `json:"posterUrl"`
	TrailerUrl  string             `json:"trailerUrl"`
	ReleaseDate openapi_types.Date `json:"releaseDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	Status      MovieStatus        `json:"status"`
	AgeRating   string             `json:"ageRating"`
	Director    string             `json:"director"`
	Cast        []string           `json:"cast"`
}

type MovieListResponse struct {
	Movies   []Movie   `json:"movies"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Cinemas and rooms

type CreateCinemaRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type Cinema struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type CinemaListResponse struct {
	Cinemas []Cinema `json:"cinemas"`
}

type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
	TotalRows  int    `json:"totalRows" validate:"required,min=1,max=26"`
	TotalCols  int    `json:"totalCols" validate:"required,min=1,max=50"`
}

type Room struct {
	Id         int    `json:"id"`
	CinemaId   int    `json:"cinemaId"`
	CinemaName string `json:"cinemaName,omitempty"`
	RoomNumber string `json:"roomNumber"`
	TotalRows  int    `json:"totalRows"`
	TotalCols  int    `json:"totalCols"`
	TotalSeats int    `json:"totalSeats"`
}

type Seat struct {
	Id         int      `json:"id"`
	SeatNumber string   `json:"seatNumber"`
	Row        string   `json:"row"`
	Col        int      `json:"col"`
	Type       SeatType `json:"type"`
}

type RoomSeatsResponse struct {
	Room  Room   `json:"room"`
	Seats []Seat `json:"seats"`
}

// Showtimes

type ShowtimeRequest struct {
	MovieId   int             `json:"movieId" validate:"required,min=1"`
	RoomId    int             `json:"roomId" validate:"required,min=1"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   *time.Time      `json:"endTime,omitempty"`
	Price     decimal.Decimal `json:"price" validate:"gt=0"`
}

type Showtime struct {
	Id         int             `json:"id"`
	MovieId    int             `json:"movieId"`
	MovieTitle string          `json:"movieTitle,omitempty"`
	RoomId     int             `json:"roomId"`
	RoomNumber string          `json:"roomNumber,omitempty"`
	CinemaId   int             `json:"cinemaId,omitempty"`
	CinemaName string          `json:"cinemaName,omitempty"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	Price      decimal.Decimal `json:"price"`
}

type ShowtimeListResponse struct {
	Showtimes []Showtime `json:"showtimes"`
}

type ConflictCheckParams struct {
	RoomId    int       `validate:"required,min=1"`
	StartTime time.Time `validate:"required"`
	EndTime   time.Time `validate:"required,gtfield=StartTime"`
	ExcludeId int       `validate:"min=0"`
}

type ConflictCheckResponse struct {
	HasConflict bool       `json:"hasConflict"`
	Conflicts   []Showtime `json:"conflicts"`
}

// Bookings

type RefreshmentOrder struct {
	RefreshmentId int `json:"refreshmentId" validate:"required,min=1"`
	Quantity      int `json:"quantity" validate:"required,min=1,max=20"`
}

type CreateBookingRequest struct {
	ShowtimeId   int                `json:"showtimeId" validate:"required,min=1"`
	SeatIds      []int              `json:"seatIds" validate:"required,min=1,max=10,unique,dive,min=1"`
	Refreshments []RefreshmentOrder `json:"refreshments" validate:"max=20,dive"`
}

type GetBookingsParams struct {
	Page     *int           `validate:"omitempty,min=1,max=10000000"`
	PageSize *int           `validate:"omitempty,min=1,max=100"`
	Status   *BookingStatus `validate:"omitempty,booking_status"`
}

type Ticket struct {
	Id         int             `json:"id"`
	SeatId     int             `json:"seatId"`
	SeatNumber string          `json:"seatNumber"`
	Row        string          `json:"row"`
	Col        int             `json:"col"`
	SeatType   SeatType        `json:"seatType"`
	Price      decimal.Decimal `json:"price"`
}

type BookingRefreshment struct {
	RefreshmentId int             `json:"refreshmentId"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

type UserSummary struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type BookingSummary struct {
	Id          int             `json:"id"`
	BookingCode string          `json:"bookingCode"`
	UserId      int             `json:"userId"`
	ShowtimeId  int             `json:"showtimeId"`
	Status      BookingStatus   `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	PaymentTime *time.Time      `json:"paymentTime,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BookingResponse struct {
	Id           int                  `json:"id"`
	BookingCode  string               `json:"bookingCode"`
	Status       BookingStatus        `json:"status"`
	TotalPrice   decimal.Decimal      `json:"totalPrice"`
	PaymentTime  *time.Time           `json:"paymentTime,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	User         UserSummary          `json:"user"`
	Showtime     Showtime             `json:"showtime"`
	Tickets      []Ticket             `json:"tickets"`
	Refreshments []BookingRefreshment `json:"refreshments"`
}

type BookingListResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type BookedSeatsResponse struct {
	ShowtimeId int      `json:"showtimeId"`
	SeatIds    []int    `json:"seatIds"`
	Seats      []string `json:"seats"`
}

type TicketListResponse struct {
	Tickets []Ticket `json:"tickets"`
}

// Refreshments

type CreateRefreshmentRequest struct {
	Name       string          `json:"name" validate:"required,max=100"`
	PictureUrl string          `json:"pictureUrl" validate:"omitempty,url"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	IsCurrent  *bool           `json:"isCurrent,omitempty"`
}

type Refreshment struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	PictureUrl string          `json:"pictureUrl"`
	Price      decimal.Decimal `json:"price"`
	IsCurrent  bool            `json:"isCurrent"`
}

type RefreshmentListResponse struct {
	Refreshments []Refreshment `json:"refreshments"`
}
