package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/config"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/dynamo"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
	jwtinfra "github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/jwt"
	s3infra "github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/s3"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/sns"
	transporthttp "github.com/sumasrimallavolu/buddha-ceo-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.AppEnv == "development" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — the admin surface degrades if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		slog.Warn("jwt provider not available, admin login disabled", "error", err)
	}

	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg)

	mailer, err := email.NewMailer(cfg)
	if err != nil {
		slog.Error("building mailer", "error", err)
		os.Exit(1)
	}

	// SNS SMS sender (optional — registrations fall back to email only).
	var smsSender sns.SMSSender
	if cfg.SMSEnabled {
		sender, err := sns.NewSender(cfg)
		if err != nil {
			slog.Warn("sns sender not available, sms confirmations disabled", "error", err)
		} else {
			smsSender = sender
		}
	}

	tables := cfg.DynamoTables
	deps := &transporthttp.Deps{
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, tables.Verifications),
		EventRepo:        dynamo.NewEventRepo(dynamoClient, tables.Events),
		RegistrationRepo: dynamo.NewRegistrationRepo(dynamoClient, tables.Registrations),
		TeacherAppRepo:   dynamo.NewTeacherApplicationRepo(dynamoClient, tables.TeacherApplications),
		EnrollmentRepo:   dynamo.NewTeacherEnrollmentRepo(dynamoClient, tables.TeacherEnrollments),
		OpportunityRepo:  dynamo.NewVolunteerOpportunityRepo(dynamoClient, tables.VolunteerOpportunities),
		VolunteerAppRepo: dynamo.NewVolunteerApplicationRepo(dynamoClient, tables.VolunteerApplications),
		ContentRepo:      dynamo.NewContentRepo(dynamoClient, tables.Content),
		ResourceRepo:     dynamo.NewResourceRepo(dynamoClient, tables.Resources),
		MessageRepo:      dynamo.NewMessageRepo(dynamoClient, tables.Messages),
		SubscriberRepo:   dynamo.NewSubscriberRepo(dynamoClient, tables.Subscribers),
		VisitRepo:        dynamo.NewVisitRepo(dynamoClient, tables.Visits),
		UserRepo:         dynamo.NewUserRepo(dynamoClient, tables.Users),
		S3Store:          s3Store,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
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
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
