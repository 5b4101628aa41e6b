package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/auth"
	"github.com/ladanze/auth-api/pkg/cookie"
	"github.com/ladanze/auth-api/pkg/logger"
	"github.com/ladanze/auth-api/pkg/ratelimit"
)

// AuthService is the slice of orchestrator operations the transport
// exposes.
type AuthService interface {
	Signup(ctx context.Context, email, username, password string) (*auth.TokenPair, error)
	Login(ctx context.Context, identifier, password string) (*auth.TokenPair, error)
	ConfirmEmail(ctx context.Context, tokenValue string) (*auth.TokenPair, error)
	RequestPasswordReset(ctx context.Context, identifier string) error
	ValidateResetToken(ctx context.Context, tokenValue string) error
	ResetPassword(ctx context.Context, tokenValue, newPassword string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, tokenValue string) (*auth.TokenPair, error)
	Account(ctx context.Context, accountID string) (*account.Account, error)
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) (*auth.TokenPair, error)
	ChangeEmailAndUsername(ctx context.Context, accountID, newEmail, newUsername string) (*auth.TokenPair, error)
}

// API wires the auth service to HTTP routes.
type API struct {
	cfg     Config
	service AuthService
	cookies *cookie.Manager
	limiter *ratelimit.Bucket
	logger  *slog.Logger

	healthProbe func(context.Context) error
}

// APIOption configures the API.
type APIOption func(*API)

// WithLogger sets a custom logger for the API.
func WithLogger(log *slog.Logger) APIOption {
	return func(a *API) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithRateLimiter throttles the unauthenticated /auth routes per
// client IP.
func WithRateLimiter(limiter *ratelimit.Bucket) APIOption {
	return func(a *API) { a.limiter = limiter }
}

// NewAPI creates the HTTP transport for the auth service.
func NewAPI(cfg Config, service AuthService, cookies *cookie.Manager, opts ...APIOption) *API {
	a := &API{
		cfg:     cfg,
		service: service,
		cookies: cookies,
		logger:  logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithHealthcheck adds a readiness probe run by the /health endpoint.
func WithHealthcheck(probe func(context.Context) error) APIOption {
	return func(a *API) { a.healthProbe = probe }
}

// Router builds the chi router. Routes under /account require a valid
// bearer access token; everything under /auth is reachable with either
// no credential or a token sent in the body or refresh cookie.
func (a *API) Router(verifier TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		if a.limiter != nil {
			r.Use(ratelimit.Middleware(a.limiter, ratelimit.ByClientIP()))
		}
		r.Post("/signup", a.handleSignup)
		r.Post("/login", a.handleLogin)
		r.Post("/confirm-email", a.handleConfirmEmail)
		r.Post("/request-password-reset", a.handleRequestPasswordReset)
		r.Post("/reset-password", a.handleResetPassword)
		r.Post("/refresh-token", a.handleRefreshToken)

		// The emailed call-to-action links land here as plain GETs.
		r.Get("/confirm-email", a.handleConfirmEmailLink)
		r.Get("/reset-password", a.handleResetPasswordLink)
	})

	r.Route("/account", func(r chi.Router) {
		r.Use(requireAccessToken(verifier))
		r.Get("/me", a.handleMyAccount)
		r.Post("/change-password", a.handleChangePassword)
		r.Post("/change-email-username", a.handleChangeEmailAndUsername)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if a.healthProbe != nil {
			if err := a.healthProbe(r.Context()); err != nil {
				a.logFailure(r, "healthcheck failed", err)
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
