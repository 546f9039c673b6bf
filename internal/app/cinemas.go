package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

func (app *Application) GetCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := app.catalogService.ListCinemas(r.Context())
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.CinemaListResponse{
		Cinemas: make([]api.Cinema, len(cinemas)),
	}

	for i := range cinemas {
		resp.Cinemas[i] = toApiCinema(&cinemas[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var input api.CreateCinemaRequest

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

	cinema := domain.Cinema{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
	}

	err = app.catalogService.CreateCinema(r.Context(), app.contextGetCaller(r), &cinema)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiCinema(&cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateRoom(w http.ResponseWriter, r *http.Request, cinemaID int) {
	var input api.CreateRoomRequest

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

	room, seats, err := app.catalogService.CreateRoom(
		r.Context(),
		app.contextGetCaller(r),
		cinemaID,
		input.RoomNumber,
		input.TotalRows,
		input.TotalCols,
	)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toRoomSeatsResponse(room, seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRoomSeats(w http.ResponseWriter, r *http.Request, roomID int) {
	room, seats, err := app.catalogService.GetRoomSeats(r.Context(), roomID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toRoomSeatsResponse(room, seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiCinema(cinema *domain.Cinema) api.Cinema {
	return api.Cinema{
		Id:      cinema.ID,
		Name:    cinema.Name,
		Address: cinema.Address,
		Phone:   cinema.Phone,
		Email:   cinema.Email,
	}
}

func toRoomSeatsResponse(room *domain.Room, seats []domain.Seat) api.RoomSeatsResponse {
	resp := api.RoomSeatsResponse{
		Room: api.Room{
			Id:         room.ID,
			CinemaId:   room.CinemaID,
			CinemaName: room.CinemaName,
			RoomNumber: room.RoomNumber,
			TotalRows:  room.TotalRows,
			TotalCols:  room.TotalCols,
			TotalSeats: room.TotalSeats,
		},
		Seats: make([]api.Seat, len(seats)),
	}

	for i, seat := range seats {
		resp.Seats[i] = api.Seat{
			Id:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Row:        seat.Row,
			Col:        seat.Col,
			Type:       api.SeatType(seat.Type),
		}
	}

	return resp
}
