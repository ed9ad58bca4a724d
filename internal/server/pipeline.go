package server

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/portfolio-cms/internal/auth"
	"github.com/sakif/portfolio-cms/internal/config"
	"github.com/sakif/portfolio-cms/internal/middleware"
)

// stage is one named step of the global request pipeline.
type stage struct {
	name string
	mw   func(http.Handler) http.Handler
}

// securityHeaders are set on every response. The API never serves HTML, so
// the CSP allows nothing.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// pipeline returns the global middleware in the order it runs.
//
// The request id must exist before the access log reads it. The access log
// wraps the recoverer so a panic still produces a logged 500. RealIP is only
// mounted behind a trusted proxy: it rewrites RemoteAddr from client-supplied
// headers, and the rate limiter keys on RemoteAddr. CORS answers preflight
// requests before they are counted or authenticated.
func pipeline(trustProxy bool, corsMW *cors.Cors, apiLimit *middleware.RateLimiter, sessions *auth.Sessions, logger *slog.Logger) []stage {
	stages := []stage{{"request-id", chimiddleware.RequestID}}
	if trustProxy {
		stages = append(stages, stage{"real-ip", chimiddleware.RealIP})
	}
	stages = append(stages,
		stage{"access-log", middleware.Logger(logger)},
		stage{"recoverer", middleware.Recoverer(logger)},
	)
	for _, h := range securityHeaders {
		stages = append(stages, stage{"header:" + h[0], chimiddleware.SetHeader(h[0], h[1])})
	}
	return append(stages,
		stage{"cors", corsMW.Handler},
		stage{"rate-limit:api", apiLimit.Handler},
		stage{"session", sessions.Attach},
	)
}

// newCORS allows the configured front-end origins to call the API with the
// session cookie.
func newCORS(cfg config.CORS) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
