package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

func (app *Application) GetRefreshments(w http.ResponseWriter, r *http.Request) {
	includeRetired, err := readBoolParam(r.URL.Query(), "all")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	refreshments, err := app.catalogService.ListRefreshments(r.Context(), app.contextGetCaller(r), includeRetired)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.RefreshmentListResponse{
		Refreshments: make([]api.Refreshment, len(refreshments)),
	}

	for i := range refreshments {
		resp.Refreshments[i] = toApiRefreshment(&refreshments[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateRefreshment(w http.ResponseWriter, r *http.Request) {
	var input api.CreateRefreshmentRequest

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

	refreshment := domain.Refreshment{
		Name:       input.Name,
		PictureUrl: input.PictureUrl,
		Price:      input.Price,
		IsCurrent:  valueOr(input.IsCurrent, true),
	}

	err = app.catalogService.CreateRefreshment(r.Context(), app.contextGetCaller(r), &refreshment)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiRefreshment(&refreshment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiRefreshment(refreshment *domain.Refreshment) api.Refreshment {
	return api.Refreshment{
		Id:         refreshment.ID,
		Name:       refreshment.Name,
		PictureUrl: refreshment.PictureUrl,
		Price:      refreshment.Price,
		IsCurrent:  refreshment.IsCurrent,
	}
}
