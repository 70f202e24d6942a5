package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/jwt"
	"github.com/dmitrymomot/authkit/pkg/logger"
	authsvc "github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

// Authenticator is the login flow used by the module.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*auth.Account, error)
	Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.LoginResult, error)
	Profile(ctx context.Context, accountID uuid.UUID) (*authsvc.Profile, error)
}

// SecondFactor is the TOTP management used by the module.
type SecondFactor interface {
	Setup(ctx context.Context, accountID uuid.UUID, label string) (*mfa.SetupResult, error)
	Verify(ctx context.Context, accountID uuid.UUID, code string) error
	Status(ctx context.Context, accountID uuid.UUID) (mfa.Status, error)
	Disable(ctx context.Context, accountID uuid.UUID) error
}

// Module serves the account JSON API.
type Module struct {
	auth         Authenticator
	mfa          SecondFactor
	accounts     authsvc.AccountReader
	tokens       *jwt.Service
	logger       *slog.Logger
	errorHandler handler.ErrorHandler
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates the module.
func New(authn Authenticator, second SecondFactor, accounts authsvc.AccountReader, tokens *jwt.Service, opts ...Option) *Module {
	m := &Module{
		auth:     authn,
		mfa:      second,
		accounts: accounts,
		tokens:   tokens,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.errorHandler = handler.NewErrorHandler(m.logger)
	return m
}

// Routes mounts every endpoint under /api.
func (m *Module) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", wrap(m, m.register))
		r.Post("/login", wrap(m, m.login))
	})

	r.Group(func(r chi.Router) {
		r.Use(m.requireAccount)

		r.Route("/mfa/totp", func(r chi.Router) {
			r.Post("/setup", wrap(m, m.setupTOTP))
			r.Post("/verify", wrap(m, m.verifyTOTP))
			r.Get("/status", wrap(m, m.totpStatus))
			r.Post("/disable", wrap(m, m.disableTOTP))
		})
		r.Get("/user/me", wrap(m, m.me))
	})

	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](bindJSON[R]()),
		handler.WithErrorHandler[R](m.errorHandler),
	)
}

// requireAccount verifies the bearer token and loads the account it names.
func (m *Module) requireAccount(next http.Handler) http.Handler {
	loadAccount := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwt.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		id, err := claims.AccountUUID()
		if err != nil {
			writeError(w, http.StatusForbidden, "Invalid token")
			return
		}

		account, err := m.accounts.GetAccountByID(r.Context(), id)
		if errors.Is(err, auth.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			m.errorHandler(handler.NewContext(w, r), err)
			return
		}

		next.ServeHTTP(w, r.WithContext(authsvc.SetAccountToContext(r.Context(), account)))
	})

	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Service: m.tokens,
		ErrorHandler: func(w http.ResponseWriter, _ *http.Request, status int, _ error) {
			if status == http.StatusUnauthorized {
				writeError(w, status, "Access token required")
				return
			}
			writeError(w, status, "Invalid token")
		},
	})(loadAccount)
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = handler.JSONError(handler.NewHTTPError(status, message)).Render(w, nil)
}

// logFailure records an unexpected error; the caller writes the response.
func (m *Module) logFailure(ctx handler.Context, err error) {
	r := ctx.Request()
	m.logger.ErrorContext(ctx, "request failed",
		logger.Error(err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("account"),
	)
}
