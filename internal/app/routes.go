package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPISpec)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)
	})

	// public catalog
	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{id}", app.withID(app.GetMovieById))
	r.Get("/cinemas", app.GetCinemas)
	r.Get("/rooms/{id}/seats", app.withID(app.GetRoomSeats))
	r.Get("/showtimes", app.GetShowtimesByDate)
	r.Get("/showtimes/{id}", app.withID(app.GetShowtimeById))
	r.Get("/showtimes/movie/{id}", app.withID(app.GetShowtimesByMovie))
	r.Get("/bookings/showtime/{id}/seats", app.withID(app.GetBookedSeats))

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)

		r.Post("/movies", app.CreateMovie)
		r.Post("/cinemas", app.CreateCinema)
		r.Post("/cinemas/{id}/rooms", app.withID(app.CreateRoom))

		r.Post("/showtimes", app.CreateShowtime)
		r.Get("/showtimes/conflicts", app.CheckShowtimeConflicts)
		r.Put("/showtimes/{id}", app.withID(app.UpdateShowtime))
		r.Delete("/showtimes/{id}", app.withID(app.DeleteShowtime))

		r.Post("/bookings", app.CreateBooking)
		r.Get("/bookings", app.GetBookings)
		r.Get("/bookings/{id}", app.withID(app.GetBookingById))
		r.Delete("/bookings/{id}", app.withID(app.DeleteBooking))
		r.Put("/bookings/{id}/confirm", app.withID(app.ConfirmBooking))
		r.Put("/bookings/{id}/cancel", app.withID(app.CancelBooking))

		r.Get("/tickets/booking/{id}", app.withID(app.GetTicketsByBooking))

		r.Get("/refreshments", app.GetRefreshments)
		r.Post("/refreshments", app.CreateRefreshment)
	})

	return r
}
