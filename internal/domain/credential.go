package domain

import "time"

// Short-lived credential windows. OTPs ride on the email channel and expire
// fast; reset tokens outlive the OTP that minted them but stay strictly
// shorter-lived than a session.
const (
	OTPLength   = 6
	OTPTTL      = 5 * time.Minute
	ResetTTL    = 10 * time.Minute
	SessionTTL  = 15 * time.Minute
	OTPKeyPrefix   = "otp:"
	ResetKeyPrefix = "reset:"
)

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Page  string `json:"page"` // "signup" tweaks the mail copy
	Phone string `json:"phone"`
}

// SendOTPResult carries the transient identifier the caller must present on
// verify. It correlates an issuance with its verification and nothing else.
type SendOTPResult struct {
	PendingID string `json:"uid"`
}

type VerifyOTPRequest struct {
	PendingID string `json:"uid" validate:"required"`
	OTP       string `json:"otp" validate:"required,len=6,numeric"`
	Email     string `json:"email" validate:"required,email"`
}

// VerifyOTPResult returns the single-use reset token. This is the only place
// the token plaintext ever appears; it is never stored or logged.
type VerifyOTPResult struct {
	ResetToken string `json:"reset_token"`
}

// UpdatePasswordRequest deliberately has no account identifier: the target
// account comes exclusively from the redeemed reset token.
type UpdatePasswordRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type ContactMailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}
