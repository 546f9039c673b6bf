package app

import (
	"net/http"
	"time"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	bookingInput := domain.CreateBookingInput{
		ShowtimeID:   input.ShowtimeId,
		SeatIDs:      input.SeatIds,
		Refreshments: make([]domain.RefreshmentOrder, len(input.Refreshments)),
	}

	for i, order := range input.Refreshments {
		bookingInput.Refreshments[i] = domain.RefreshmentOrder{
			RefreshmentID: order.RefreshmentId,
			Quantity:      order.Quantity,
		}
	}

	detail, err := app.bookingService.Create(r.Context(), app.contextGetCaller(r), bookingInput)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("booking created", "booking_id", detail.ID, "booking_code", detail.BookingCode, "showtime_id", detail.ShowtimeID)

	err = app.writeJSON(w, http.StatusCreated, toApiBooking(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookings(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	page, err := readIntParam(qs, "page")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	pageSize, err := readIntParam(qs, "pageSize")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := api.GetBookingsParams{
		Page:     page,
		PageSize: pageSize,
	}

	if status := readStringParam(qs, "status"); status != nil {
		params.Status = (*api.BookingStatus)(status)
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filter := domain.BookingFilter{
		Status: domain.BookingStatus(valueOr(params.Status, "")),
		Pagination: domain.Pagination{
			Page:     valueOr(params.Page, domain.DefaultPage),
			PageSize: valueOr(params.PageSize, domain.DefaultPageSize),
		},
	}

	bookings, metadata, err := app.bookingService.List(r.Context(), app.contextGetCaller(r), filter)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: make([]api.BookingSummary, len(bookings)),
	}

	if m := toApiMetadata(metadata); m != nil {
		resp.Metadata = *m
	}

	for i, b := range bookings {
		resp.Bookings[i] = api.BookingSummary{
			Id:          b.ID,
			BookingCode: b.BookingCode,
			UserId:      b.UserID,
			ShowtimeId:  b.ShowtimeID,
			Status:      api.BookingStatus(b.Status),
			TotalPrice:  b.TotalPrice,
			PaymentTime: b.PaymentTime,
			CreatedAt:   b.CreatedAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingById(w http.ResponseWriter, r *http.Request, id int) {
	detail, err := app.bookingService.Get(r.Context(), app.contextGetCaller(r), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiBooking(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ConfirmBooking(w http.ResponseWriter, r *http.Request, id int) {
	detail, err := app.bookingService.Confirm(r.Context(), app.contextGetCaller(r), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("booking confirmed", "booking_id", detail.ID)

	app.sendMailAsync(r, detail.User.Email, "booking_confirmed.tmpl", bookingMailData(detail))

	err = app.writeJSON(w, http.StatusOK, toApiBooking(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, id int) {
	detail, err := app.bookingService.Cancel(r.Context(), app.contextGetCaller(r), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("booking cancelled", "booking_id", detail.ID)

	err = app.writeJSON(w, http.StatusOK, toApiBooking(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteBooking(w http.ResponseWriter, r *http.Request, id int) {
	err := app.bookingService.Delete(r.Context(), app.contextGetCaller(r), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetBookedSeats(w http.ResponseWriter, r *http.Request, showtimeID int) {
	tickets, err := app.bookingService.BookedSeats(r.Context(), showtimeID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.BookedSeatsResponse{
		ShowtimeId: showtimeID,
		SeatIds:    make([]int, len(tickets)),
		Seats:      make([]string, len(tickets)),
	}

	for i, t := range tickets {
		resp.SeatIds[i] = t.SeatID
		resp.Seats[i] = t.SeatNumber
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTicketsByBooking(w http.ResponseWriter, r *http.Request, bookingID int) {
	tickets, err := app.bookingService.TicketsByBooking(r.Context(), app.contextGetCaller(r), bookingID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.TicketListResponse{Tickets: toApiTickets(tickets)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func bookingMailData(detail *domain.BookingDetail) map[string]any {
	seats := make([]string, len(detail.Tickets))
	for i, t := range detail.Tickets {
		seats[i] = t.SeatNumber
	}

	return map[string]any{
		"fullName":    detail.User.FullName,
		"bookingCode": detail.BookingCode,
		"movieTitle":  detail.Showtime.MovieTitle,
		"cinemaName":  detail.Showtime.CinemaName,
		"roomNumber":  detail.Showtime.RoomNumber,
		"startTime":   detail.Showtime.StartTime.Format(time.DateTime),
		"seats":       seats,
		"totalPrice":  detail.TotalPrice.String(),
	}
}

func toApiBooking(detail *domain.BookingDetail) api.BookingResponse {
	resp := api.BookingResponse{
		Id:          detail.ID,
		BookingCode: detail.BookingCode,
		Status:      api.BookingStatus(detail.Status),
		TotalPrice:  detail.TotalPrice,
		PaymentTime: detail.PaymentTime,
		CreatedAt:   detail.CreatedAt,
		User: api.UserSummary{
			Id:       detail.User.ID,
			Username: detail.User.Username,
			Email:    detail.User.Email,
			FullName: detail.User.FullName,
		},
		Showtime:     toApiShowtime(&detail.Showtime),
		Tickets:      toApiTickets(detail.Tickets),
		Refreshments: make([]api.BookingRefreshment, len(detail.Refreshments)),
	}

	for i, item := range detail.Refreshments {
		resp.Refreshments[i] = api.BookingRefreshment{
			RefreshmentId: item.RefreshmentID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
		}
	}

	return resp
}

func toApiTickets(tickets []domain.Ticket) []api.Ticket {
	result := make([]api.Ticket, len(tickets))

	for i, t := range tickets {
		result[i] = api.Ticket{
			Id:         t.ID,
			SeatId:     t.SeatID,
			SeatNumber: t.SeatNumber,
			Row:        t.Row,
			Col:        t.Col,
			SeatType:   api.SeatType(t.SeatType),
			Price:      t.Price,
		}
	}

	return result
}
