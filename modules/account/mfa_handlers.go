package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/sanitizer"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

type setupResponse struct {
	Success bool `json:"success"`
	*mfa.SetupResult
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (m *Module) setupTOTP(ctx handler.Context, _ empty) handler.Response {
	account := authsvc.GetAccountFromContext(ctx)

	res, err := m.mfa.Setup(ctx, account.ID, account.Email)
	if errors.Is(err, mfa.ErrAlreadyEnabled) {
		return handler.JSONError(handler.NewHTTPError(http.StatusConflict, "TOTP already enabled"))
	}
	if err != nil {
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Failed to setup TOTP"))
	}

	return handler.JSON(setupResponse{Success: true, SetupResult: res})
}

func (m *Module) verifyTOTP(ctx handler.Context, req verifyRequest) handler.Response {
	code := sanitizer.NormalizeCode(req.Code)
	if code == "" {
		return handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "TOTP code required"))
	}

	account := authsvc.GetAccountFromContext(ctx)
	err := m.mfa.Verify(ctx, account.ID, code)
	switch {
	case err == nil:
		return handler.JSON(messageResponse{Success: true, Message: "TOTP verified"})
	case errors.Is(err, mfa.ErrNotSetUp):
		return handler.JSONError(handler.NewHTTPError(http.StatusBadRequest, "TOTP not set up"))
	case errors.Is(err, mfa.ErrInvalidCode):
		return handler.JSONError(handler.NewHTTPError(http.StatusUnauthorized, "Invalid code"))
	default:
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Failed to verify TOTP"))
	}
}

func (m *Module) totpStatus(ctx handler.Context, _ empty) handler.Response {
	account := authsvc.GetAccountFromContext(ctx)
	status, err := m.mfa.Status(ctx, account.ID)
	if err != nil {
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Failed to get TOTP status"))
	}
	return handler.JSON(status)
}

func (m *Module) disableTOTP(ctx handler.Context, _ empty) handler.Response {
	account := authsvc.GetAccountFromContext(ctx)
	if err := m.mfa.Disable(ctx, account.ID); err != nil {
		m.logFailure(ctx, err)
		return handler.JSONError(handler.NewHTTPError(http.StatusInternalServerError, "Failed to disable TOTP"))
	}
	return handler.JSON(messageResponse{Success: true, Message: "TOTP disabled successfully"})
}
