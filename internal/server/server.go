// Package server is the composition root: it wires stores, caches and
// services into the public and admin routers and owns the HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	adminapp "github.com/brokertools/marketplace/api/internal/admin/application"
	"github.com/brokertools/marketplace/api/internal/config"
	adminhttp "github.com/brokertools/marketplace/api/internal/interfaces/http/admin"
	"github.com/brokertools/marketplace/api/internal/interfaces/http/common"
	publichttp "github.com/brokertools/marketplace/api/internal/interfaces/http/public"
	"github.com/brokertools/marketplace/api/internal/platform/logger"
	publicapp "github.com/brokertools/marketplace/api/internal/public/application"
)

// Server manages the HTTP lifecycle and injects services into handlers.
type Server struct {
	logger         *logger.Logger
	addr           string
	allowedOrigins []string
	jwtConfigs     []config.JWTConfig
	jwtAudience    string

	stores       *stores
	applications adminapp.ApplicationService
	assessments  adminapp.AssessmentService
	listings     publicapp.ListingQueryService
}

// New connects the configured stores and builds every service.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*Server, error) {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newServer(cfg, st, log), nil
}

func newServer(cfg config.Config, st *stores, log *logger.Logger) *Server {
	var (
		listingCache publicapp.ListingCache
		invalidator  adminapp.ListingInvalidator
	)
	if st.cache != nil {
		listingCache = st.cache
		invalidator = st.cache
	}

	opts := []adminapp.AssessmentOption{adminapp.WithLogger(log)}
	if invalidator != nil {
		opts = append(opts, adminapp.WithListingInvalidator(invalidator))
	}

	return &Server{
		logger:         log.With("component", "server"),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		stores:         st,
		applications:   adminapp.NewApplicationService(st.applications, invalidator, log),
		assessments:    adminapp.NewAssessmentService(st.assessments, st.applications, opts...),
		listings:       publicapp.NewListingQueryService(st.vendors, listingCache, log),
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:   s.logger,
		Listings: s.listings,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:       s.logger,
		Applications: s.applications,
		Assessments:  s.assessments,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		adminHandler.Register(r)
	})
	return router
}

// Run serves until the process receives SIGINT or SIGTERM.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.stores.ping(ctx); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"store":  s.stores.driver,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.stores.close(shutdownCtx); err != nil {
		s.logger.Error("store shutdown failed", "error", err)
	}
}

func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error("http shutdown failed", "error", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
