package api

import (
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/syneepse/ResumeFix/docs"

	"github.com/rs/cors"
	"github.com/syneepse/ResumeFix/internal/api/handlers"
	"github.com/syneepse/ResumeFix/internal/api/middleware"
	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/logger"
	"github.com/syneepse/ResumeFix/internal/metrics"
)

type RouterDeps struct {
	Resumes  *handlers.ResumeHandler
	Auth     *handlers.AuthHandler
	Resolver auth.Resolver
	Cors     cors.Options
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
}

func SetupRouter(d RouterDeps) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(d.Cors)
	protected := middleware.RequireIdentity(d.Resolver)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mainMux.Handle("GET /metrics", d.Metrics.Handler())
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("GET /auth/google", d.Auth.HandleGoogleLogin)
	mainMux.HandleFunc("GET /auth/google/callback", d.Auth.HandleGoogleCallback)
	mainMux.HandleFunc("POST /auth/logout", d.Auth.Logout)

	// ---------- PROTECTED ROUTES ----------
	mainMux.Handle("GET /auth/me", protected(http.HandlerFunc(d.Auth.Me)))

	mainMux.Handle("POST /resumes/upload", protected(http.HandlerFunc(d.Resumes.Upload)))
	mainMux.Handle("POST /resumes/rank", protected(http.HandlerFunc(d.Resumes.Rank)))
	mainMux.Handle("GET /resumes", protected(http.HandlerFunc(d.Resumes.List)))
	mainMux.Handle("GET /resumes/{id}", protected(http.HandlerFunc(d.Resumes.Get)))
	mainMux.Handle("GET /resumes/{id}/download", protected(http.HandlerFunc(d.Resumes.Download)))
	mainMux.Handle("DELETE /resumes/{id}", protected(http.HandlerFunc(d.Resumes.Delete)))

	d.Logger.Info().Msg("router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(d.Logger, d.Metrics)(handler)
	return handler
}
