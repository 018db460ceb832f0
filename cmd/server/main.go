package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"meetlink/config"
	authadapter "meetlink/internal/adapters/auth"
	emailadapter "meetlink/internal/adapters/email"
	httpdelivery "meetlink/internal/delivery/http"
	"meetlink/internal/delivery/http/controllers"
	"meetlink/internal/delivery/http/middleware"
	"meetlink/internal/domain"
	"meetlink/internal/repository/memory"
	"meetlink/internal/repository/postgres"
	"meetlink/internal/services"
)

// @title MeetLink API
// @version 1.0
// @description Registration, directory, and contact exchange backend for networking events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	var (
		eventRepo       domain.EventRepository
		userRepo        domain.UserRepository
		participantRepo domain.ParticipantRepository
		connectionRepo  domain.ConnectionRepository
	)
	switch cfg.Storage {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("ping database", "err", err)
			os.Exit(1)
		}
		eventRepo = postgres.NewEventRepository(db)
		userRepo = postgres.NewUserRepository(db)
		participantRepo = postgres.NewParticipantRepository(db)
		connectionRepo = postgres.NewConnectionRepository(db)
	default:
		store := memory.NewStore()
		if err := memory.LoadFixtures(store); err != nil {
			logger.Error("load fixtures", "err", err)
			os.Exit(1)
		}
		eventRepo = store.Events()
		userRepo = store.Users()
		participantRepo = store.Participants()
		connectionRepo = store.Connections()
		logger.Info("using in-memory storage with demo fixtures")
	}

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Mailer.SES.Region,
			AccessKeyID:     cfg.Mailer.SES.AccessKeyID,
			SecretAccessKey: cfg.Mailer.SES.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	registrationService := services.NewRegistrationService(eventRepo, userRepo, participantRepo, emailService, cfg.PublicBaseURL, logger)
	directoryService := services.NewDirectoryService(eventRepo, userRepo, participantRepo)
	eventService := services.NewEventService(eventRepo, userRepo, participantRepo, 10*time.Second)
	connectionService := services.NewConnectionService(eventRepo, userRepo, participantRepo, connectionRepo)

	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	provider := authadapter.NewOAuthProvider(authadapter.ProviderConfig{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		AuthURL:      cfg.OAuth.AuthURL,
		TokenURL:     cfg.OAuth.TokenURL,
		UserInfoURL:  cfg.OAuth.UserInfoURL,
		Scopes:       cfg.OAuth.Scopes,
	})

	mux := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewDirectoryController(logger, directoryService),
		controllers.NewConnectionController(logger, connectionService),
		controllers.NewAuthController(logger, provider, issuer, cfg.JWTExpiry),
		middleware.RequireAuth(verifier),
		middleware.OptionalAuth(verifier),
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
