package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skyfuel/auth-api/internal/application/auth"
	"github.com/skyfuel/auth-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps signup/signin/glogin responses.
type AuthEnvelope struct {
	Bearer string             `json:"Bearer,omitempty"`
	User   *domain.PublicUser `json:"user,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// UserEnvelope wraps single-account reads.
type UserEnvelope struct {
	User  *domain.PublicUser `json:"user,omitempty"`
	Error string             `json:"error,omitempty"`
}

// ExistEnvelope wraps email-existence lookups.
type ExistEnvelope struct {
	Exists bool   `json:"exists"`
	UserID string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

// OTPEnvelope wraps the send-OTP response; uid identifies the pending challenge.
type OTPEnvelope struct {
	PendingID string `json:"uid"`
	Message   string `json:"message,omitempty"`
}

// ResetEnvelope carries the single-use password reset token.
type ResetEnvelope struct {
	ResetToken string `json:"reset_token"`
	Message    string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain errors onto status codes. The status code alone
// conveys the outcome; the body repeats the error text for humans.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidOrExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toAuthEnvelope(res *auth.AuthResult) AuthEnvelope {
	return AuthEnvelope{Bearer: res.Access, User: res.User}
}
