package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}

// requireAuthentication resolves the Bearer token into a caller and rejects the request
// when it is missing or invalid.
func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		header := r.Header.Get("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		caller, err := app.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			app.contextGetLogger(r).Warn("rejected access token", "error", err)
			app.unauthorizedAccessResponse(w, r)
			return
		}

		logger := app.contextGetLogger(r).With("user_id", caller.UserID, "role", caller.Role)

		r = app.contextSetCaller(r, caller)
		r = app.contextSetLogger(r, logger)

		next.ServeHTTP(w, r)
	})
}
