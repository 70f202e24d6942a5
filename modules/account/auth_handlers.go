package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/validator"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

type registerResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

type userView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Success      bool      `json:"success"`
	Token        string    `json:"token,omitempty"`
	User         *userView `json:"user,omitempty"`
	TOTPEnabled  bool      `json:"totpEnabled"`
	RequiresTOTP bool      `json:"requiresTOTP,omitempty"`
	Message      string    `json:"message,omitempty"`
}

func (m *Module) register(ctx handler.Context, req registerRequest) handler.Response {
	account, err := m.auth.Register(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return handler.JSONError(handler.NewHTTPError(http.StatusConflict, "User already exists"))
	case validator.IsValidationError(err):
		return handler.JSONError(err)
	default:
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Registration failed"))
	}

	return handler.JSON(registerResponse{
		Success: true,
		Message: "User registered successfully",
		UserID:  account.ID,
	})
}

func (m *Module) login(ctx handler.Context, req loginRequest) handler.Response {
	if err := validator.Apply(
		validator.Required("email", req.Email),
		validator.Required("password", req.Password),
	); err != nil {
		return handler.JSONError(err)
	}

	res, err := m.auth.Login(ctx, authsvc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Code:     req.TOTPCode,
	})
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		return handler.JSONError(handler.NewHTTPError(http.StatusUnauthorized, "Invalid credentials"))
	case errors.Is(err, mfa.ErrInvalidCode):
		return handler.JSONError(handler.NewHTTPError(http.StatusUnauthorized, "Invalid code"))
	default:
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Login failed"))
	}

	if res.SecondFactorRequired {
		return handler.JSON(loginResponse{
			RequiresTOTP: true,
			TOTPEnabled:  true,
			Message:      "Please enter your authenticator code",
		})
	}

	return handler.JSON(loginResponse{
		Success: true,
		Token:   res.Token,
		User: &userView{
			ID:        res.Account.ID,
			Email:     res.Account.Email,
			CreatedAt: res.Account.CreatedAt,
		},
		TOTPEnabled: res.SecondFactorEnabled,
	})
}

func (m *Module) me(ctx handler.Context, _ empty) handler.Response {
	account := authsvc.GetAccountFromContext(ctx)
	profile, err := m.auth.Profile(ctx, account.ID)
	if errors.Is(err, auth.ErrAccountNotFound) {
		return handler.JSONError(handler.NewHTTPError(http.StatusNotFound, "User not found"))
	}
	if err != nil {
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Failed to get user profile"))
	}
	return handler.JSON(profile)
}
