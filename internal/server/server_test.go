package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/server/ratelimit"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJobText = `Desenvolvedor Backend Go
Empresa: Acme Tecnologia

Requisitos:
- Experiência com Go e PostgreSQL
- Conhecimento em Docker e Kubernetes`

	testResumeText = `Maria Silva
maria.silva@example.com
(11) 98765-4321

Experiência
Desenvolvedora backend com Go, PostgreSQL e Docker.

Formação
Bacharelado em Ciência da Computação

Habilidades
Go, PostgreSQL, Docker`
)

func testConfig(store Store) Config {
	return Config{
		Strategy:  strategy.NewLocal(strategy.DefaultScoring()),
		Store:     store,
		RateLimit: &ratelimit.Config{Enabled: false},
		Logger:    logging.Discard(),
		JWT:       &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing-minimum-32-bytes", ExpirationHours: 1},
		Password:  &config.PasswordConfig{BcryptCost: 4},
	}
}

func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	srv, err := New(testConfig(store))
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)
	return srv, store
}

// do sends a JSON request through the full middleware chain.
func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

// register creates a user and returns its token and ID.
func register(t *testing.T, srv *Server, email string) (string, uuid.UUID) {
	t.Helper()
	w := do(t, srv, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name:     "Maria Silva",
		Email:    email,
		Password: "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[types.LoginResponse](t, w)
	return resp.Token, resp.User.ID
}

func TestNew_RequiresStrategy(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Strategy = nil
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_WithoutStoreServesStatelessRoutesOnly(t *testing.T) {
	srv, err := New(testConfig(nil))
	require.NoError(t, err)
	defer srv.rateLimiter.Stop()

	w := do(t, srv, http.MethodPost, "/api/parse-job", "", types.ParseJobRequest{Text: testJobText})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPost, "/auth/register", "", types.CreateUserRequest{Name: "a", Email: "a@b.co", Password: "12345678"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disabled", decode[map[string]string](t, w)["database"])
}

func TestHealth(t *testing.T) {
	srv, store := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "local", body["strategy"])
	assert.Equal(t, "ok", body["database"])

	store.pingErr = errors.New("connection refused")
	w = do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[map[string]string](t, w)["database"])
}

func TestCORS(t *testing.T) {
	t.Run("any origin by default", func(t *testing.T) {
		srv, _ := newTestServer(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/optimize", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("configured origins", func(t *testing.T) {
		cfg := testConfig(newFakeStore())
		cfg.CORSOrigins = []string{"https://app.example.com"}
		srv, err := New(cfg)
		require.NoError(t, err)
		defer srv.rateLimiter.Stop()

		for origin, want := range map[string]string{
			"https://app.example.com":  "https://app.example.com",
			"https://evil.example.com": "",
		} {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", origin)
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(nil)
	cfg.RateLimit = &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/extract-profile", Method: http.MethodPost, Limit: 1, Window: time.Hour, Burst: 1},
		},
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	defer srv.rateLimiter.Stop()

	body := types.ExtractProfileRequest{Text: testResumeText}
	w := do(t, srv, http.MethodPost, "/api/extract-profile", "", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, srv, http.MethodPost, "/api/extract-profile", "", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Unlimited route
	w = do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/nope", "", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, srv, http.MethodGet, "/api/optimize", "", nil).Code)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, splitOrigins(" https://a.com, ,https://b.com "))
	assert.Nil(t, splitOrigins(""))
}
