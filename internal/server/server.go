// Package server is the composition root: it opens the database, builds the
// repositories, services and handlers, and mounts them on a chi router.
//
// Dependency flow:
//
//	config.Config → sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs. Handlers see services, services see
// repository interfaces, and nothing below this package knows about chi.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio-cms/internal/auth"
	"github.com/sakif/portfolio-cms/internal/config"
	"github.com/sakif/portfolio-cms/internal/handler"
	"github.com/sakif/portfolio-cms/internal/middleware"
	sqliteRepo "github.com/sakif/portfolio-cms/internal/repository/sqlite"
	"github.com/sakif/portfolio-cms/internal/service"
)

// Server owns the router and the database. The database is closed when
// Start returns or when Close is called.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	stages []stage
}

// New opens the database, seeds the admin account if it is missing, and
// wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on shutdown.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes builds the object graph and mounts it.
//
// Route map (S = session required):
//
//	POST   /api/auth/login                      login rate limit
//	POST   /api/auth/logout
//	GET    /api/auth/user                       S
//	GET    /api/projects                        ?featured=true|false
//	GET    /api/projects/{id}
//	POST   /api/projects                        S
//	POST   /api/projects/reorder                S
//	PUT    /api/projects/{id}                   S
//	DELETE /api/projects/{id}                   S
//	GET    /api/skills                          ?category=
//	GET    /api/skills/categories
//	GET    /api/skills/{id}
//	POST   /api/skills                          S
//	POST   /api/skills/reorder                  S
//	PUT    /api/skills/{id}                     S
//	DELETE /api/skills/{id}                     S
//	GET    /api/testimonials                    visible only
//	GET    /api/testimonials/all                S
//	POST   /api/testimonials                    S
//	POST   /api/testimonials/reorder            S
//	PUT    /api/testimonials/{id}               S
//	DELETE /api/testimonials/{id}               S
//	GET    /api/about
//	PUT    /api/about                           S
//	POST   /api/contact                         contact rate limit
//	GET    /api/contact/messages                S
//	GET    /api/contact/messages/unread-count   S
//	PATCH  /api/contact/messages/{id}           S
//	DELETE /api/contact/messages/{id}           S
//	GET    /api/health
func (s *Server) setupRoutes() error {
	cfg := s.config
	logger := s.logger

	// === Auth ===
	passwords := auth.NewPasswordService(cfg.BcryptCost)
	users := s.db.Users()
	strategy, err := auth.NewLocalStrategy(users, passwords)
	if err != nil {
		return fmt.Errorf("creating login strategy: %w", err)
	}
	store := auth.NewSessionStore(cfg.Session.TTL)
	authService := service.NewAuthService(users, strategy, store, passwords, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	sessions := auth.NewSessions(authService, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure || cfg.IsProduction(),
		TTL:    cfg.Session.TTL,
	}, logger)

	// === Content ===
	authHandler := handler.NewAuthHandler(authService, sessions, logger)
	projectHandler := handler.NewProjectHandler(service.NewProjectService(s.db.Projects(), logger), logger)
	skillHandler := handler.NewSkillHandler(service.NewSkillService(s.db.Skills(), logger), logger)
	testimonialHandler := handler.NewTestimonialHandler(service.NewTestimonialService(s.db.Testimonials(), logger), logger)
	aboutHandler := handler.NewAboutHandler(service.NewAboutService(s.db.About(), logger), logger)
	contactHandler := handler.NewContactHandler(service.NewContactService(s.db.Contacts(), logger), logger)
	healthHandler := handler.NewHealthHandler(service.NewHealthService(s.db, cfg.HealthCacheTTL))

	// === Rate limits ===
	limits := cfg.RateLimit
	apiLimit := middleware.NewRateLimiter("api", limits.API.Requests, limits.API.Window, logger)
	loginLimit := middleware.NewRateLimiter("login", limits.Login.Requests, limits.Login.Window, logger)
	contactLimit := middleware.NewRateLimiter("contact", limits.Contact.Requests, limits.Contact.Window, logger)

	// === Global middleware ===
	s.stages = pipeline(cfg.TrustProxy, newCORS(cfg.CORS), apiLimit, sessions, logger)
	for _, st := range s.stages {
		s.router.Use(st.mw)
	}

	// === Routes ===
	// Set before mounting so every subrouter inherits the JSON replies.
	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit.Handler).Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
			r.With(auth.RequireSession).Get("/user", authHandler.HandleUser)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.HandleList)
			r.Get("/{id}", projectHandler.HandleGet)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession)
				r.Post("/", projectHandler.HandleCreate)
				r.Post("/reorder", projectHandler.HandleReorder)
				r.Put("/{id}", projectHandler.HandleUpdate)
				r.Delete("/{id}", projectHandler.HandleDelete)
			})
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", skillHandler.HandleList)
			r.Get("/categories", skillHandler.HandleCategories)
			r.Get("/{id}", skillHandler.HandleGet)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession)
				r.Post("/", skillHandler.HandleCreate)
				r.Post("/reorder", skillHandler.HandleReorder)
				r.Put("/{id}", skillHandler.HandleUpdate)
				r.Delete("/{id}", skillHandler.HandleDelete)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", testimonialHandler.HandleListVisible)
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSession)
				r.Get("/all", testimonialHandler.HandleListAll)
				r.Post("/", testimonialHandler.HandleCreate)
				r.Post("/reorder", testimonialHandler.HandleReorder)
				r.Put("/{id}", testimonialHandler.HandleUpdate)
				r.Delete("/{id}", testimonialHandler.HandleDelete)
			})
		})

		r.Get("/about", aboutHandler.HandleGet)
		r.With(auth.RequireSession).Put("/about", aboutHandler.HandleUpdate)

		r.Route("/contact", func(r chi.Router) {
			r.With(contactLimit.Handler).Post("/", contactHandler.HandleSubmit)
			r.Route("/messages", func(r chi.Router) {
				r.Use(auth.RequireSession)
				r.Get("/", contactHandler.HandleList)
				r.Get("/unread-count", contactHandler.HandleUnreadCount)
				r.Patch("/{id}", contactHandler.HandleUpdateFlags)
				r.Delete("/{id}", contactHandler.HandleDelete)
			})
		})
	})

	return nil
}

// Start serves HTTP until SIGINT/SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("env", s.config.AppEnv),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
