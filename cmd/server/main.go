package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/syneepse/ResumeFix/internal/api"
	"github.com/syneepse/ResumeFix/internal/api/handlers"
	"github.com/syneepse/ResumeFix/internal/api/services"
	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/config"
	"github.com/syneepse/ResumeFix/internal/documents"
	"github.com/syneepse/ResumeFix/internal/events"
	"github.com/syneepse/ResumeFix/internal/extraction"
	"github.com/syneepse/ResumeFix/internal/logger"
	"github.com/syneepse/ResumeFix/internal/metrics"
	"github.com/syneepse/ResumeFix/internal/repositories"
	"github.com/syneepse/ResumeFix/internal/resumes"
)

const serviceName = "resumefix"

// @title ResumeFix API
// @version 1.0
// @description Upload resumes, extract structured candidate data with an LLM, and manage the results.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "resumefix: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(serviceName, cfg.Server.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repositories.ConnectDatabase(cfg.DBURL)
	if err != nil {
		return err
	}
	log.Info().Msg("database connected")

	store, err := newFileStore(cfg)
	if err != nil {
		return err
	}

	gen, err := extraction.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if gen == nil {
		log.Warn().Msg("GEMINI_API_KEY not set, uploads will be stored without extracted fields")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, serviceName, log.WithComponent("events"))
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	m := metrics.New()
	accounts := repositories.NewAccountRepository(db)

	svc := resumes.NewService(resumes.Deps{
		Accounts:      accounts,
		Resumes:       repositories.NewResumeRepository(db),
		Store:         store,
		Text:          documents.NewExtractor(),
		Info:          extraction.NewClient(gen, cfg.LLM.Timeout, log),
		Events:        publisher,
		Metrics:       m,
		Logger:        log,
		AutoProvision: cfg.Auth.AutoProvision,
	})

	tokens := auth.NewTokenManager(cfg.JWT)
	resolver, err := auth.NewResolver(cfg.Auth, tokens)
	if err != nil {
		return err
	}
	states, err := handlers.NewStateSigner(cfg.JWT.Secret, 10*time.Minute)
	if err != nil {
		return err
	}

	google := services.NewGoogleProvider(cfg.Google)
	if !google.Configured() {
		log.Warn().Msg("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google sign-in will fail")
	}

	handler := api.SetupRouter(api.RouterDeps{
		Resumes: handlers.NewResumeHandler(svc, log),
		Auth: handlers.NewAuthHandler(handlers.AuthHandlerConfig{
			Provider:       google,
			Accounts:       accounts,
			Resolver:       svc,
			Tokens:         tokens,
			States:         states,
			FrontendOrigin: cfg.Server.FrontendOrigin,
			Secure:         cfg.IsProduction(),
			Logger:         log,
		}),
		Resolver: resolver,
		Cors:     cfg.CorsOptions(),
		Metrics:  m,
		Logger:   log,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("auth_mode", cfg.Auth.Mode).
			Str("storage", cfg.Storage.Driver).
			Msg("starting ResumeFix server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Server.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func newFileStore(cfg *config.Config) (repositories.FileStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageR2:
		client := repositories.NewR2Client(cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.AccountID, cfg.R2.Region)
		return repositories.NewR2Store(client, cfg.R2.BucketName), nil
	default:
		store, err := repositories.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
