package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

type contextKey string

const (
	callerContextKey = contextKey("caller")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextSetCaller(r *http.Request, caller domain.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), callerContextKey, caller)
	return r.WithContext(ctx)
}

// contextGetCaller returns the authenticated caller. Only call it behind requireAuthentication.
func (app *Application) contextGetCaller(r *http.Request) domain.Caller {
	caller, ok := r.Context().Value(callerContextKey).(domain.Caller)
	if !ok {
		panic("missing caller in request context")
	}

	return caller
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
