// @title EventPass API
// @version 1.0
// @description Entry and meal codes, scanning-station redemption and certificate delivery for events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventpass/config"
	_ "eventpass/docs"
	"eventpass/internal/adapters/artifacts"
	"eventpass/internal/adapters/auth"
	"eventpass/internal/adapters/email"
	"eventpass/internal/adapters/pdf"
	"eventpass/internal/adapters/qrcode"
	httpdelivery "eventpass/internal/delivery/http"
	"eventpass/internal/delivery/http/controllers"
	"eventpass/internal/delivery/http/middleware"
	"eventpass/internal/domain"
	"eventpass/internal/repository/postgres"
	"eventpass/internal/repository/sqlite"
	"eventpass/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, attendees, codes, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	event := domain.EventDetails{
		Title:       cfg.Event.Title,
		Description: cfg.Event.Description,
		Location:    cfg.Event.Location,
		StartsAt:    cfg.Event.StartsAt,
		MealTypes:   cfg.Event.MealTypes,
	}
	dispatcher := services.NewDispatcher(cfg.Dispatch.Workers, cfg.Dispatch.ActTimeout, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), qrcode.NewEncoder(qrcode.DefaultSize), logger)
	issuer := services.NewCodeIssuer(attendees, codes, logger)
	validator := services.NewRedemptionValidator(attendees, codes, logger)
	codeDispatch := services.NewCodeDispatchService(issuer, attendees, codes, emailService, dispatcher, event, logger)
	importer := services.NewAttendeeImportService(attendees, issuer, logger)
	certificates := services.NewCertificateService(attendees, codes, artifacts.NewDirectorySource(cfg.CertificatesDir),
		pdf.NewRenderer(), emailService, dispatcher, event, logger)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:       logger,
		Verifier:     auth.NewJWTVerifier(cfg.JWTSecret),
		Codes:        controllers.NewCodeController(logger, validator, codeDispatch),
		Attendees:    controllers.NewAttendeeController(logger, importer, issuer, codeDispatch),
		Certificates: controllers.NewCertificateController(logger, certificates),
		Health:       controllers.NewHealthController(logger, db),
	})
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

	// Bulk dispatch holds the response until every email is sent.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.RequestTimeout,
		ReadTimeout:       3 * cfg.RequestTimeout,
		WriteTimeout:      30 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("eventpass API listening", "addr", server.Addr, "driver", cfg.DBDriver, "mail_provider", cfg.Mail.Provider)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*sql.DB, domain.AttendeeRepository, domain.RedemptionCodeRepository, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, sqlite.NewAttendeeRepository(db), sqlite.NewRedemptionCodeRepository(db), nil
	default:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, postgres.NewAttendeeRepository(db), postgres.NewRedemptionCodeRepository(db), nil
	}
}
