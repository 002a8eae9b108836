// Package server exposes the dashboard over a JSON HTTP API.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/harmony/internal/advisor"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/recommend"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the API serves.
type Deps struct {
	Store       service.DocumentStore
	Recommender *recommend.Engine
	Content     *content.Pool
	Resources   *content.ResourceFinder
	Advisor     *advisor.Advisor
	Logger      *slog.Logger
	// Now overrides the clock used for new records.
	Now func() time.Time
	// AllowOrigins lists CORS origins; empty means common local dev servers.
	AllowOrigins []string
	// TLS, when set, serves HTTPS with its certificates.
	TLS *tls.Config
}

// Server is the HTTP API.
type Server struct {
	deps     Deps
	logger   *slog.Logger
	profiles *tracker.Profiles
	Engine   *gin.Engine
}

// New builds the server and its routes.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = common.DiscardLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{
		deps:     deps,
		logger:   deps.Logger.With("component", "server"),
		profiles: tracker.NewProfiles(deps.Store, tracker.WithClock(deps.Now)),
	}
	s.Engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	r.Use(corsMiddleware(s.deps.AllowOrigins))

	r.GET("/healthcheck", s.healthCheck)

	api := r.Group("/api")
	api.GET("/students", s.listStudents)

	student := api.Group("/students/:student")
	student.Use(s.loadStudent)
	{
		student.GET("/dashboard", s.dashboard)
		student.GET("/recommendations", s.recommendations)
		student.GET("/content/:kind", s.content)
		student.GET("/resources", s.resources)
		student.POST("/advice", s.advice)
		student.POST("/transactions", s.addTransaction)
		student.POST("/moods", s.logMood)
		student.POST("/semesters", s.addSemester)
	}
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.deps.TLS,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", "addr", addr, "tls", srv.TLSConfig != nil)
		if srv.TLSConfig != nil {
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
