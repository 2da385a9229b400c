package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skyfuel/auth-api/internal/config"
	"github.com/skyfuel/auth-api/internal/domain"
)

// Verifier checks a client captcha response token with the captcha provider.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

type verifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func NewVerifier(cfg *config.Config) Verifier {
	return &verifier{
		secretKey: cfg.CaptchaSecretKey,
		verifyURL: cfg.CaptchaVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify posts the token to the provider's siteverify endpoint.
// A provider "success: false" is domain.ErrBadRequest (not a human);
// transport failures are domain.ErrUnavailable.
func (v *verifier) Verify(ctx context.Context, token string) error {
	form := url.Values{
		"secret":   {v.secretKey},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: captcha verify: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decode captcha response: %v", domain.ErrUnavailable, err)
	}
	if !out.Success {
		return fmt.Errorf("captcha rejected: %w", domain.ErrBadRequest)
	}
	return nil
}
