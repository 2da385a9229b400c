package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/skyfuel/auth-api/internal/application/auth"
	"github.com/skyfuel/auth-api/internal/application/otp"
	"github.com/skyfuel/auth-api/internal/application/reset"
	"github.com/skyfuel/auth-api/internal/config"
	"github.com/skyfuel/auth-api/internal/infrastructure/captcha"
	"github.com/skyfuel/auth-api/internal/infrastructure/google"
	jwtinfra "github.com/skyfuel/auth-api/internal/infrastructure/jwt"
	redisstore "github.com/skyfuel/auth-api/internal/infrastructure/redis"
	"github.com/skyfuel/auth-api/internal/infrastructure/smtp"
	"github.com/skyfuel/auth-api/internal/infrastructure/sns"
	"github.com/skyfuel/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/skyfuel/auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        UserRepository
	Ephemeral       *redisstore.Store
	Mailer          smtp.Mailer
	SMSSender       sns.SMSSender
	GoogleVerifier  google.TokenVerifier
	CaptchaVerifier captcha.Verifier
	JWTProvider     *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:        deps.UserRepo,
		OTP:             otp.NewManager(deps.Ephemeral),
		ResetTokens:     reset.NewTokens(deps.Ephemeral),
		Mailer:          deps.Mailer,
		SMSSender:       deps.SMSSender,
		GoogleVerifier:  deps.GoogleVerifier,
		CaptchaVerifier: deps.CaptchaVerifier,
		JWTProvider:     deps.JWTProvider,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	mailH := handler.NewMailHandler(authSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/signup", authH.Signup)
		r.With(sensitiveRL.Limit).Post("/auth/signin", authH.Signin)
		r.With(sensitiveRL.Limit).Post("/auth/glogin", authH.GoogleLogin)
		r.Post("/auth/existuser", authH.ExistUser)
		r.Post("/auth/checkcaptcha", authH.CheckCaptcha)
		r.With(sensitiveRL.Limit).Post("/auth/updatepass", authH.UpdatePassword)

		r.With(sensitiveRL.Limit).Post("/mail/sendmail", mailH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/mail/verifyotp", mailH.VerifyOTP)
		r.Post("/mail/contact", mailH.Contact)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/getuser", authH.GetUser)
		})
	})

	return r
}
