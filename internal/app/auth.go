package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/cinema-booking-system/api"
	"github.com/metinatakli/cinema-booking-system/internal/domain"
)

func (app *Application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

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

	user := domain.User{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    valueOr(input.Phone, ""),
	}

	err = app.userService.Register(r.Context(), &user, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("registration attempt for existing email or username")
			// do not reveal which accounts exist
			app.badRequestResponse(w, r, errors.New(ErrInvalidRegistration))
		default:
			logger.Error("failed to create user", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.sendMailAsync(r, user.Email, "user_welcome.tmpl", map[string]any{
		"fullName": user.FullName,
		"userID":   user.ID,
	})

	err = app.writeJSON(w, http.StatusCreated, toApiUser(&user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	user, err := app.userService.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			logger.Warn("login failed due to invalid credentials")
			app.invalidCredentialsResponse(w, r)
		case errors.Is(err, domain.ErrForbidden):
			logger.Warn("login attempt for locked account")
			app.forbiddenResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	raw, expiresAt, err := app.tokens.Issue(user.ID, user.Role)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AuthResponse{
		Token:     raw,
		ExpiresAt: expiresAt,
		User:      toApiUser(user),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	user, err := app.userService.GetById(r.Context(), caller.UserID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiUser(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// sendMailAsync delivers mail in the background. Failures are logged and never reach
// the client.
func (app *Application) sendMailAsync(r *http.Request, recipient, templateFile string, data any) {
	ctx := context.WithoutCancel(r.Context())

	go func(ctx context.Context) {
		// inherit the request logger so the mail is traceable to its request
		gLogger := app.contextGetLogger(r.WithContext(ctx)).With("template", templateFile)

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending mail", "panic", err)
			}
		}()

		err := app.mailer.Send(recipient, templateFile, data)
		if err != nil {
			gLogger.Error("failed to send email", "error", err)
		} else {
			gLogger.Info("email sent successfully")
		}
	}(ctx)
}

func toApiUser(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      api.Role(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}
