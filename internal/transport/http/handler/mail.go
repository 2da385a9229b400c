package handler

import (
	"encoding/json"
	"net/http"

	"github.com/skyfuel/auth-api/internal/application/auth"
	"github.com/skyfuel/auth-api/internal/domain"
	"github.com/skyfuel/auth-api/internal/pkg/validate"
)

// MailHandler handles the OTP delivery and contact-form endpoints.
type MailHandler struct {
	svc auth.Service
}

func NewMailHandler(svc auth.Service) *MailHandler {
	return &MailHandler{svc: svc}
}

func (h *MailHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.SendOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{PendingID: result.PendingID, Message: "OTP sent"})
}

func (h *MailHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResetEnvelope{ResetToken: result.ResetToken, Message: "OTP verified"})
}

func (h *MailHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.ContactMail(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "message sent"})
}
