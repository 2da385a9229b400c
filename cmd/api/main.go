package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/skyfuel/auth-api/internal/config"
	"github.com/skyfuel/auth-api/internal/infrastructure/captcha"
	"github.com/skyfuel/auth-api/internal/infrastructure/dynamo"
	"github.com/skyfuel/auth-api/internal/infrastructure/google"
	jwtinfra "github.com/skyfuel/auth-api/internal/infrastructure/jwt"
	redisstore "github.com/skyfuel/auth-api/internal/infrastructure/redis"
	"github.com/skyfuel/auth-api/internal/infrastructure/smtp"
	"github.com/skyfuel/auth-api/internal/infrastructure/sns"
	transporthttp "github.com/skyfuel/auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis holds all short-lived credential state (OTPs, reset tokens).
	redisClient, err := redisstore.NewClient(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	ephemeral := redisstore.NewStore(redisClient)

	// JWT provider (optional — graceful fallback if the secret is missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// Google ID-token verifier (optional — glogin disabled without it).
	var googleVerifier google.TokenVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier = google.NewVerifier(cfg.GoogleClientID)
	} else {
		log.Println("WARN: GOOGLE_CLIENT_ID not set, google login disabled")
	}

	deps := &transporthttp.Deps{
		UserRepo:        dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Ephemeral:       ephemeral,
		Mailer:          mailer,
		SMSSender:       smsSender,
		GoogleVerifier:  googleVerifier,
		CaptchaVerifier: captcha.NewVerifier(cfg),
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
