package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

const dateLayout = time.DateOnly

func (app *Application) GetShowtimeById(w http.ResponseWriter, r *http.Request, id int) {
	showtime, err := app.showtimeService.Get(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimesByMovie(w http.ResponseWriter, r *http.Request, movieID int) {
	showtimes, err := app.showtimeService.ListByMovie(r.Context(), movieID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeListResponse{Showtimes: toApiShowtimes(showtimes)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimesByDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		app.badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date must be formatted as YYYY-MM-DD"))
		return
	}

	showtimes, err := app.showtimeService.ListByDate(r.Context(), date)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeListResponse{Showtimes: toApiShowtimes(showtimes)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := app.showtimeService.Create(r.Context(), app.contextGetCaller(r), input)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("showtime scheduled", "showtime_id", showtime.ID, "room_id", showtime.RoomID)

	err = app.writeJSON(w, http.StatusCreated, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request, id int) {
	input, ok := app.readShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := app.showtimeService.Update(r.Context(), app.contextGetCaller(r), id, input)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request, id int) {
	err := app.showtimeService.Delete(r.Context(), app.contextGetCaller(r), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) CheckShowtimeConflicts(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	roomID, err := readIntParam(qs, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	excludeID, err := readIntParam(qs, "excludeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	start, err := readTimeParam(qs, "startTime")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	end, err := readTimeParam(qs, "endTime")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := api.ConflictCheckParams{
		RoomId:    valueOr(roomID, 0),
		StartTime: start,
		EndTime:   end,
		ExcludeId: valueOr(excludeID, 0),
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	conflicts, err := app.showtimeService.FindConflicts(r.Context(), params.RoomId, params.StartTime, params.EndTime, params.ExcludeId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ConflictCheckResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   toApiShowtimes(conflicts),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) readShowtimeRequest(w http.ResponseWriter, r *http.Request) (domain.ShowtimeInput, bool) {
	var input api.ShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return domain.ShowtimeInput{}, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return domain.ShowtimeInput{}, false
	}

	return domain.ShowtimeInput{
		MovieID:   input.MovieId,
		RoomID:    input.RoomId,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Price:     input.Price,
	}, true
}

func toApiShowtimes(showtimes []domain.Showtime) []api.Showtime {
	result := make([]api.Showtime, len(showtimes))

	for i := range showtimes {
		result[i] = toApiShowtime(&showtimes[i])
	}

	return result
}

func toApiShowtime(showtime *domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:         showtime.ID,
		MovieId:    showtime.MovieID,
		MovieTitle: showtime.MovieTitle,
		RoomId:     showtime.RoomID,
		RoomNumber: showtime.RoomNumber,
		CinemaId:   showtime.CinemaID,
		CinemaName: showtime.CinemaName,
		StartTime:  showtime.StartTime,
		EndTime:    showtime.EndTime,
		Price:      showtime.Price,
	}
}
