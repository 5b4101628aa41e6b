package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ladanze/auth-api/internal/auth"
	"github.com/ladanze/auth-api/pkg/cookie"
	"github.com/ladanze/auth-api/pkg/logger"
)

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type requestResetRequest struct {
	Identifier string `json:"identifier"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type changeEmailUsernameRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		a.logFailure(r, "signup failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusCreated, pair)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		a.logFailure(r, "login failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

func (a *API) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.ConfirmEmail(r.Context(), req.Token)
	if err != nil {
		a.logFailure(r, "email confirmation failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

func (a *API) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := a.service.RequestPasswordReset(r.Context(), req.Identifier); err != nil {
		a.logFailure(r, "password reset request failed", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "reset email sent"})
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		a.logFailure(r, "password reset failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

// handleConfirmEmailLink completes confirmation straight from the
// emailed link, with the token in the query string.
func (a *API) handleConfirmEmailLink(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("token")
	if value == "" {
		respondError(w, ErrInvalidRequestBody)
		return
	}

	pair, err := a.service.ConfirmEmail(r.Context(), value)
	if err != nil {
		a.logFailure(r, "email confirmation failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

// handleResetPasswordLink checks the emailed reset link. The token is
// not consumed; the caller follows up with the new password via POST.
func (a *API) handleResetPasswordLink(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("token")
	if value == "" {
		respondError(w, ErrInvalidRequestBody)
		return
	}

	if err := a.service.ValidateResetToken(r.Context(), value); err != nil {
		a.logFailure(r, "reset link validation failed", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

// handleRefreshToken accepts the refresh token from the JSON body or,
// for browser clients, from the signed cookie set on sign-in.
func (a *API) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := a.decode(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, err)
		return
	}

	value := req.RefreshToken
	if value == "" {
		fromCookie, err := a.cookies.GetSigned(r, a.cfg.RefreshCookieName)
		if err != nil {
			respondError(w, ErrMissingRefreshToken)
			return
		}
		value = fromCookie
	}

	pair, err := a.service.Refresh(r.Context(), value)
	if err != nil {
		a.logFailure(r, "token refresh failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

func (a *API) handleMyAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, ErrMissingAccessToken)
		return
	}

	acct, err := a.service.Account(r.Context(), claims.Subject)
	if err != nil {
		a.logFailure(r, "account lookup failed", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, acct)
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, ErrMissingAccessToken)
		return
	}

	var req changePasswordRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.ChangePassword(r.Context(), claims.Subject, req.OldPassword, req.NewPassword)
	if err != nil {
		a.logFailure(r, "password change failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

func (a *API) handleChangeEmailAndUsername(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, ErrMissingAccessToken)
		return
	}

	var req changeEmailUsernameRequest
	if err := a.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.service.ChangeEmailAndUsername(r.Context(), claims.Subject, req.Email, req.Username)
	if err != nil {
		a.logFailure(r, "email/username change failed", err)
		respondError(w, err)
		return
	}
	a.respondPair(w, http.StatusOK, pair)
}

var errEmptyBody = errors.New("empty request body")

func (a *API) decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, a.cfg.MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errEmptyBody
	default:
		return errors.Join(ErrInvalidRequestBody, err)
	}
}

// respondPair writes the token pair to the body and mirrors the
// refresh token into the signed HTTP-only cookie so browser clients
// never handle it in script.
func (a *API) respondPair(w http.ResponseWriter, status int, pair *auth.TokenPair) {
	a.cookies.SetSigned(w, a.cfg.RefreshCookieName, pair.RefreshToken,
		cookie.WithPath("/auth"),
		cookie.WithMaxAge(int(a.cfg.RefreshCookieTTL.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(a.cfg.SecureCookies),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)
	respondJSON(w, status, pair)
}

func (a *API) logFailure(r *http.Request, msg string, err error) {
	a.logger.WarnContext(r.Context(), msg,
		logger.Error(err),
		logger.Component("httpapi"),
	)
}
