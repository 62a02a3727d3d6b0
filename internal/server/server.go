package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/server/middleware"
	"github.com/jonathan/resume-optimizer/internal/server/ratelimit"
	"github.com/jonathan/resume-optimizer/internal/strategy"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	strategy    strategy.Strategy
	ingestion   ingestion.URLOptions
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	corsOrigins []string
	logger      *slog.Logger
}

// Config holds server configuration. Without a Store only /health and the
// stateless /api routes are served.
type Config struct {
	Port        int
	Strategy    strategy.Strategy
	Store       Store
	Ingestion   ingestion.URLOptions
	JWT         *config.JWTConfig
	Password    *config.PasswordConfig
	RateLimit   *ratelimit.Config
	CORSOrigins []string
	Logger      *slog.Logger
}

// New creates a new server instance. Missing JWT and password settings are
// read from the environment when a Store is configured.
func New(cfg Config) (*Server, error) {
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("server: strategy is required")
	}

	s := &Server{
		store:       cfg.Store,
		strategy:    cfg.Strategy,
		ingestion:   cfg.Ingestion,
		corsOrigins: cfg.CORSOrigins,
		logger:      cfg.Logger,
	}
	if s.logger == nil {
		s.logger = logging.Logger()
	}
	if s.ingestion.Logger == nil {
		s.ingestion.Logger = s.logger
	}

	rateCfg := cfg.RateLimit
	if rateCfg == nil {
		rateCfg = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateCfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/parse-job", s.handleParseJob)
	mux.HandleFunc("POST /api/extract-profile", s.handleExtractProfile)
	mux.HandleFunc("POST /api/analyze-compatibility", s.handleAnalyzeCompatibility)
	mux.HandleFunc("POST /api/generate-optimized", s.handleGenerateOptimized)
	mux.HandleFunc("POST /api/optimize", s.handleOptimize)

	if s.store != nil {
		if err := s.setupAuth(cfg); err != nil {
			s.rateLimiter.Stop()
			return nil, err
		}
		s.registerUserRoutes(mux)
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

func (s *Server) setupAuth(cfg Config) error {
	passwordConfig := cfg.Password
	if passwordConfig == nil {
		var err error
		if passwordConfig, err = config.NewPasswordConfig(); err != nil {
			return fmt.Errorf("failed to create password config: %w", err)
		}
	}
	jwtConfig := cfg.JWT
	if jwtConfig == nil {
		var err error
		if jwtConfig, err = config.NewJWTConfig(); err != nil {
			return fmt.Errorf("failed to create JWT config: %w", err)
		}
	}

	s.userService = NewUserService(s.store, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	return nil
}

func (s *Server) registerUserRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	protected("PUT /auth/password", s.authHandler.UpdatePassword)

	protected("POST /jobs", s.handleCreateJob)
	protected("GET /jobs", s.handleListJobs)
	protected("GET /jobs/{id}", s.handleGetJob)

	protected("POST /resumes", s.handleCreateResume)
	protected("GET /resumes", s.handleListResumes)
	protected("GET /resumes/{id}", s.handleGetResume)

	protected("GET /profile", s.handleGetProfile)
	protected("PUT /profile", s.handleUpdateProfile)

	protected("POST /analyses", s.handleCreateAnalysis)
	protected("GET /analyses", s.handleListAnalyses)
	protected("GET /analyses/{id}", s.handleGetAnalysis)

	protected("POST /optimized-resumes", s.handleCreateOptimizedResume)
	protected("GET /optimized-resumes", s.handleListOptimizedResumes)
	protected("GET /optimized-resumes/{id}", s.handleGetOptimizedResume)
	protected("GET /optimized-resumes/{id}/download", s.handleDownloadOptimizedResume)
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr, "strategy", s.strategy.Name())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers. With no configured origins every origin is allowed.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.corsOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.corsOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs one line per request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client", clientID(r),
		)
	})
}

// withRateLimit rejects clients that exceed their token bucket.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller by the IP of RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"client", clientID(r),
		"method", r.Method,
		"path", r.URL.Path,
		"limit", info.Limit,
	)
	jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports the strategy in use and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":   "ok",
		"strategy": s.strategy.Name(),
		"database": "disabled",
	}
	status := http.StatusOK
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			resp["status"], resp["database"] = "degraded", "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp["database"] = "ok"
		}
	}
	jsonResponse(w, status, resp)
}

// splitOrigins parses a comma-separated origin list.
func splitOrigins(list string) []string {
	var out []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// CORSOriginsFromEnv reads the allowed origins from CORS_ALLOWED_ORIGINS.
func CORSOriginsFromEnv() []string {
	return splitOrigins(config.GetEnv(config.EnvCORSOrigins, ""))
}
