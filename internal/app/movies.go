package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const DefaultSort = "id"

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
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

	params := api.GetMoviesParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     readStringParam(qs, "sort"),
		Term:     readStringParam(qs, "term"),
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, metadata, err := app.catalogService.ListMovies(r.Context(), toMovieFilters(params))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toApiMovies(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, id int) {
	movie, err := app.catalogService.GetMovie(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

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

	movie := domain.Movie{
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Duration:    input.Duration,
		PosterUrl:   input.PosterUrl,
		TrailerUrl:  input.TrailerUrl,
		ReleaseDate: input.ReleaseDate.Time,
		EndDate:     input.EndDate.Time,
		Status:      domain.MovieStatus(input.Status),
		AgeRating:   input.AgeRating,
		Director:    input.Director,
		Cast:        input.Cast,
	}

	err = app.catalogService.CreateMovie(r.Context(), app.contextGetCaller(r), &movie)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiMovie(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.Pagination {
	return domain.Pagination{
		Page:     valueOr(params.Page, domain.DefaultPage),
		PageSize: valueOr(params.PageSize, domain.DefaultPageSize),
		Sort:     valueOr(params.Sort, DefaultSort),
		Term:     valueOr(params.Term, ""),
	}
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))

	for i, movie := range movies {
		result[i] = toApiMovie(movie)
	}

	return result
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}

	return api.Movie{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		PosterUrl:   movie.PosterUrl,
		TrailerUrl:  movie.TrailerUrl,
		ReleaseDate: openapi_types.Date{Time: movie.ReleaseDate},
		EndDate:     openapi_types.Date{Time: movie.EndDate},
		Status:      api.MovieStatus(movie.Status),
		AgeRating:   movie.AgeRating,
		Director:    movie.Director,
		Cast:        cast,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
