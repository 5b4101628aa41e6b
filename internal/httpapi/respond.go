package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ladanze/auth-api/internal/account"
	"github.com/ladanze/auth-api/internal/token"
	"github.com/ladanze/auth-api/pkg/validator"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors onto HTTP statuses and a uniform
// JSON error body. Unrecognized errors become opaque 500s so internal
// details never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	if ve := validator.Extract(err); len(ve) > 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "validation_error",
			Message: ve.Error(),
			Fields:  ve.Fields(),
		}})
		return
	}

	if conflict, ok := account.IsConflict(err); ok {
		respondJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code:    "conflict",
			Message: conflict.Error(),
			Fields:  conflict.Fields,
		}})
		return
	}

	var status int
	var code string
	switch {
	case errors.Is(err, ErrInvalidRequestBody):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, account.ErrAccountNotFound):
		status, code = http.StatusNotFound, "account_not_found"
	case errors.Is(err, account.ErrWrongCredentials):
		status, code = http.StatusUnauthorized, "wrong_credentials"
	case errors.Is(err, ErrMissingAccessToken),
		errors.Is(err, token.ErrInvalidAccessToken):
		status, code = http.StatusUnauthorized, "invalid_access_token"
	case errors.Is(err, ErrMissingRefreshToken),
		errors.Is(err, token.ErrInvalidRefreshToken):
		status, code = http.StatusUnauthorized, "invalid_refresh_token"
	case errors.Is(err, token.ErrInvalidConfirmToken),
		errors.Is(err, token.ErrInvalidResetToken):
		status, code = http.StatusUnauthorized, "invalid_token"
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
			Code:    "internal_error",
			Message: "internal server error",
		}})
		return
	}

	respondJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: err.Error()}})
}
