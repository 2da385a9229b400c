package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skyfuel/auth-api/internal/application/auth"
	"github.com/skyfuel/auth-api/internal/domain"
	jwtinfra "github.com/skyfuel/auth-api/internal/infrastructure/jwt"
	"github.com/skyfuel/auth-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Signup(ctx context.Context, req domain.SignupRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Signin(ctx context.Context, req domain.SigninRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.PublicUser); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ExistUser(ctx context.Context, email string) (*auth.ExistResult, error) {
	args := m.Called(ctx, email)
	if r, _ := args.Get(0).(*auth.ExistResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) CheckCaptcha(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthSvc) SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.SendOTPResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*domain.SendOTPResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.VerifyOTPResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*domain.VerifyOTPResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) ContactMail(ctx context.Context, req domain.ContactMailRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func wrapInvalidOrExpired(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrInvalidOrExpired)
}

// --- Signup ---

func TestSignup_Created(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(&auth.AuthResult{
		User:   &domain.PublicUser{UserID: "u1", Email: "a@b.com"},
		Access: "tok",
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Signup, domain.SignupRequest{
		Email: "a@b.com", Password: "hunter2hunter2", Name: "Alice",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "tok", env.Bearer)
	assert.Equal(t, "u1", env.User.UserID)
}

func TestSignup_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(nil,
		fmt.Errorf("email already registered: %w", domain.ErrConflict))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Signup, domain.SignupRequest{
		Email: "a@b.com", Password: "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignup_ValidationFailure(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Signup, domain.SignupRequest{Email: "not-an-email", Password: "hunter2hunter2"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_MalformedBody(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Signup(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Signin ---

func TestSignin_Unauthorized(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signin", mock.Anything, mock.Anything).Return(nil,
		fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Signin, domain.SigninRequest{Email: "a@b.com", Password: "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSignin_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signin", mock.Anything, mock.Anything).Return(&auth.AuthResult{
		User:   &domain.PublicUser{UserID: "u1"},
		Access: "tok",
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Signin, domain.SigninRequest{Email: "a@b.com", Password: "hunter2hunter2"})
	assert.Equal(t, http.StatusOK, rr.Code)
}

// --- ExistUser ---

func TestExistUser_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ExistUser", mock.Anything, "a@b.com").Return(&auth.ExistResult{
		Exists: true, UserID: "u1", Name: "Alice",
	}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.ExistUser, domain.ExistUserRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var env ExistEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Exists)
	assert.Equal(t, "u1", env.UserID)
}

// --- CheckCaptcha ---

func TestCheckCaptcha_Rejected(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("CheckCaptcha", mock.Anything, "bad").Return(
		fmt.Errorf("captcha rejected: %w", domain.ErrBadRequest))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.CheckCaptcha, domain.CaptchaRequest{Token: "bad"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- GetUser ---

func TestGetUser_SubjectFromClaims(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("GetUser", mock.Anything, "u1").Return(&domain.PublicUser{UserID: "u1", Email: "a@b.com"}, nil)
	h := NewAuthHandler(svc)

	claims := &jwtinfra.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ClaimsKey, claims))
	rr := httptest.NewRecorder()
	h.GetUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertCalled(t, "GetUser", mock.Anything, "u1")

	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NotNil(t, env.User)
	assert.Equal(t, "u1", env.User.UserID)
}

func TestGetUser_NoClaims(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.GetUser(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

// --- UpdatePassword ---

func TestUpdatePassword_InvalidToken401(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("UpdatePassword", mock.Anything, mock.Anything).Return(
		wrapInvalidOrExpired("reset token"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.UpdatePassword, domain.UpdatePasswordRequest{
		ResetToken: "spent", NewPassword: "newpassword123",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdatePassword_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("UpdatePassword", mock.Anything, mock.MatchedBy(func(req domain.UpdatePasswordRequest) bool {
		return req.ResetToken == "tok" && req.NewPassword == "newpassword123"
	})).Return(nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.UpdatePassword, domain.UpdatePasswordRequest{
		ResetToken: "tok", NewPassword: "newpassword123",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
