package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"

	"dsfs/internal/handlers"
	applog "dsfs/internal/log"
	"dsfs/internal/middleware"
)

const defaultFundingRatePerMinute = 10

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr    string
	Session SessionConfig
	// FundingRatePerMinute caps funding requests per client.
	FundingRatePerMinute int
	// Metrics backs /metrics. The route is omitted when nil.
	Metrics prometheus.Gatherer
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config      Config
	httpServer  *http.Server
	fundLimiter *middleware.RateLimiter
}

// NewSessionManager builds the cookie session manager with defaults applied.
func NewSessionManager(cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = "dsfs_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

// New builds a new Server using the provided configuration. The session
// manager in deps is replaced by one built from cfg.Session.
func New(cfg Config, deps handlers.Dependencies) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)
	if deps.Theme == nil {
		return nil, errors.New("server: theme service is required")
	}

	deps.Sessions = NewSessionManager(cfg.Session)
	h, err := handlers.New(deps)
	if err != nil {
		return nil, err
	}
	applog.Debug(context.Background(), "handler dependencies configured")

	ratePerMinute := cfg.FundingRatePerMinute
	if ratePerMinute <= 0 {
		ratePerMinute = defaultFundingRatePerMinute
	}
	limiter := middleware.NewRateLimiter(middleware.PerMinute(ratePerMinute))

	handler := newRouter(routerDeps{
		handlers:    h,
		sessions:    deps.Sessions,
		appearance:  deps.Theme,
		fundLimiter: limiter,
		metrics:     cfg.Metrics,
	})

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config:      cfg,
		fundLimiter: limiter,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	s.fundLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
