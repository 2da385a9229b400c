package domain

import "time"

// Auth providers recorded on the account.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	UserID            string     `json:"id" dynamodbav:"user_id"`
	Email             string     `json:"email" dynamodbav:"email"`
	Name              string     `json:"name,omitempty" dynamodbav:"name"`
	PasswordHash      string     `json:"-" dynamodbav:"password_hash"`
	AuthProvider      string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub         string     `json:"-" dynamodbav:"google_sub"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at,omitempty" dynamodbav:"email_verified_at"`
	PasswordChangedAt *time.Time `json:"-" dynamodbav:"password_changed_at"`
	Enable            bool       `json:"enable" dynamodbav:"enable"`
	CreatedAt         time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// PublicUser is the externally visible projection of an account record.
// The password hash and Google subject never leave the service.
type PublicUser struct {
	UserID          string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created"`
	UpdatedAt       time.Time  `json:"updated"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		UserID:          u.UserID,
		Email:           u.Email,
		Name:            u.Name,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ExistUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CaptchaRequest struct {
	Token string `json:"token" validate:"required"`
}
