// Package auth sequences the credential flows: sign-up, sign-in, social
// login, OTP issuance/verification and the single-use password reset.
// All short-lived state lives in the ephemeral store behind the otp and
// reset components; this service only wires the steps together and maps
// component failures onto the domain error taxonomy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skyfuel/auth-api/internal/domain"
	"github.com/skyfuel/auth-api/internal/infrastructure/google"
	"github.com/skyfuel/auth-api/internal/pkg/id"
	"github.com/skyfuel/auth-api/internal/pkg/password"
)

// AuthResult is returned by every flow that ends in a live session.
type AuthResult struct {
	User   *domain.PublicUser `json:"user"`
	Access string             `json:"access"`
}

// ExistResult reports whether an email already has an account.
type ExistResult struct {
	Exists bool   `json:"exists"`
	UserID string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*AuthResult, error)
	Signin(ctx context.Context, req domain.SigninRequest) (*AuthResult, error)
	GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (*AuthResult, error)
	GetUser(ctx context.Context, userID string) (*domain.PublicUser, error)
	ExistUser(ctx context.Context, email string) (*ExistResult, error)
	CheckCaptcha(ctx context.Context, token string) error

	SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.SendOTPResult, error)
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.VerifyOTPResult, error)
	UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error

	ContactMail(ctx context.Context, req domain.ContactMailRequest) error
}

// Narrow collaborator contracts; production wiring passes the dynamo repo,
// the otp/reset components, the smtp mailer and so on, tests pass fakes.

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	UpdateCredential(ctx context.Context, userID, hash string) error
}

type otpManager interface {
	Issue(ctx context.Context, pendingID, email string) (string, error)
	Verify(ctx context.Context, pendingID, candidate, email string) error
}

type resetTokens interface {
	Issue(ctx context.Context, accountID string) (string, error)
	Consume(ctx context.Context, plain string) (string, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type captchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

type jwtSigner interface {
	Sign(userID string) (string, error)
}

// ServiceDeps bundles the collaborators; optional ones may be nil and the
// flows that need them fail with a clear error instead of at startup.
type ServiceDeps struct {
	UserRepo        userStore
	OTP             otpManager
	ResetTokens     resetTokens
	Mailer          mailer
	SMSSender       smsSender
	GoogleVerifier  google.TokenVerifier
	CaptchaVerifier captchaVerifier
	JWTProvider     jwtSigner
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ── Session flows ───────────────────────────────────────────────────────────

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.deps.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.deps.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	access, err := s.deps.JWTProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u.Public(), Access: access}, nil
}

// noUserHash is a well-formed cost-12 digest of a throwaway value. Comparing
// against it makes an unknown email cost the same bcrypt work as a wrong
// password, so response timing does not reveal which one it was.
const noUserHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

func (s *service) Signin(ctx context.Context, req domain.SigninRequest) (*AuthResult, error) {
	u, err := s.deps.UserRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same message and same hashing cost as a bad password: neither
			// the body nor the timing admits the account's absence.
			_ = password.Verify(req.Password, noUserHash)
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if u.PasswordHash == "" || !password.Verify(req.Password, u.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}

	access, err := s.deps.JWTProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u.Public(), Access: access}, nil
}

func (s *service) GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (*AuthResult, error) {
	if s.deps.GoogleVerifier == nil {
		return nil, fmt.Errorf("google login not configured: %w", domain.ErrUnavailable)
	}
	payload, err := s.deps.GoogleVerifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	if !payload.EmailVerified {
		return nil, fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}

	u, err := s.deps.UserRepo.GetByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("email not found, kindly signup: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if u.GoogleSub == "" {
		if err := s.deps.UserRepo.Update(ctx, u.UserID, map[string]interface{}{
			"google_sub":    payload.Sub,
			"auth_provider": domain.ProviderGoogle,
		}); err != nil {
			slog.Warn("could not link google subject", "user_id", u.UserID, "err", err)
		}
	}

	access, err := s.deps.JWTProvider.Sign(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u.Public(), Access: access}, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	u, err := s.deps.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

func (s *service) ExistUser(ctx context.Context, email string) (*ExistResult, error) {
	u, err := s.deps.UserRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &ExistResult{Exists: false}, nil
		}
		return nil, err
	}
	return &ExistResult{Exists: true, UserID: u.UserID, Name: u.Name}, nil
}

func (s *service) CheckCaptcha(ctx context.Context, token string) error {
	if s.deps.CaptchaVerifier == nil {
		return fmt.Errorf("captcha not configured: %w", domain.ErrUnavailable)
	}
	return s.deps.CaptchaVerifier.Verify(ctx, token)
}

// ── Credential flows ────────────────────────────────────────────────────────

// SendOTP allocates a fresh pending id, issues an OTP under it and delivers
// the code over mail (or SMS when a phone is supplied). The pending id is the
// only handle the caller gets; the code travels exclusively over the side
// channel. The stored record carries the delivery address, so the code is
// redeemable only against that address. If delivery fails the stored code is
// simply left to expire.
func (s *service) SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.SendOTPResult, error) {
	pendingID := uuid.NewString()
	email := normalizeEmail(req.Email)

	code, err := s.deps.OTP.Issue(ctx, pendingID, email)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if s.deps.SMSSender == nil {
			return nil, fmt.Errorf("sms channel not configured: %w", domain.ErrUnavailable)
		}
		if err := s.deps.SMSSender.SendSMS(ctx, req.Phone, "Your Skyfuel verification code: "+code); err != nil {
			slog.Warn("otp sms delivery failed", "err", err)
			return nil, fmt.Errorf("%w: send sms: %v", domain.ErrUnavailable, err)
		}
		return &domain.SendOTPResult{PendingID: pendingID}, nil
	}

	if err := s.deps.Mailer.SendEmail(email, "Skyfuel Account Verification", otpMailBody(req.Name, req.Page, code)); err != nil {
		slog.Warn("otp mail delivery failed", "err", err)
		return nil, fmt.Errorf("%w: send mail: %v", domain.ErrUnavailable, err)
	}
	return &domain.SendOTPResult{PendingID: pendingID}, nil
}

// VerifyOTP checks the code and, on success and within the same request,
// mints the reset token bound to the account behind the request email.
// The check only succeeds when that email is the one the code was delivered
// to, so a code can never be redeemed against some other account. There is
// no durable "verified but not yet reset" state: either the caller walks
// away with a reset token or nothing happened.
func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.VerifyOTPResult, error) {
	email := normalizeEmail(req.Email)
	u, err := s.deps.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.deps.OTP.Verify(ctx, req.PendingID, req.OTP, email); err != nil {
		return nil, err
	}

	token, err := s.deps.ResetTokens.Issue(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.VerifyOTPResult{ResetToken: token}, nil
}

// UpdatePassword redeems the reset token and changes the credential of the
// account the token was bound to. The request carries no account identifier;
// the token's stored binding is the only authority.
func (s *service) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	accountID, err := s.deps.ResetTokens.Consume(ctx, req.ResetToken)
	if err != nil {
		return err
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.deps.UserRepo.UpdateCredential(ctx, accountID, hash)
}

func (s *service) ContactMail(ctx context.Context, req domain.ContactMailRequest) error {
	if err := s.deps.Mailer.SendEmail(req.To, req.Subject, req.Body); err != nil {
		slog.Warn("contact mail delivery failed", "err", err)
		return fmt.Errorf("%w: send mail: %v", domain.ErrUnavailable, err)
	}
	return nil
}
