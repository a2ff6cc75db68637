package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/handler"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
)

type tokenAuth struct {
	ports.AuthService
	sessions map[string]*access.Session
}

func (a tokenAuth) Resolve(_ context.Context, token string) (*access.Session, string, error) {
	sess, ok := a.sessions[token]
	if !ok {
		return nil, "", domain.ErrUnauthenticated
	}
	return sess, "sid-" + token, nil
}

type countingStats struct {
	calls int
}

func (s *countingStats) Overview(context.Context, *access.Session) (*ports.Stats, error) {
	s.calls++
	return &ports.Stats{OrdersByStatus: map[domain.OrderStatus]int64{}}, nil
}

// newTestRouter wires only the stats service; every other route must be
// stopped by its gate or never hit.
func newTestRouter(stats ports.StatsService) *echo.Echo {
	return NewRouter(Deps{
		Auth: tokenAuth{sessions: map[string]*access.Session{
			"user":    {UserID: "u1", Role: domain.RoleUser},
			"manager": {UserID: "m1", Role: domain.RoleManager},
		}},
		Stats:        stats,
		Validator:    validation.New(),
		Cookie:       handler.CookieConfig{},
		HealthChecks: map[string]handler.Check{},
		Log:          zerolog.Nop(),
		Registry:     prometheus.NewRegistry(),
	})
}

func TestRouter_GatesRunBeforeHandlers(t *testing.T) {
	stats := &countingStats{}
	e := newTestRouter(stats)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
	}{
		{"anonymous stats", http.MethodGet, "/api/admin/stats", "", http.StatusUnauthorized},
		{"user stats", http.MethodGet, "/api/admin/stats", "user", http.StatusForbidden},
		{"unknown token is anonymous", http.MethodGet, "/api/admin/stats", "stale", http.StatusUnauthorized},
		{"manager cascade delete", http.MethodDelete, "/api/admin/destinations/d1", "manager", http.StatusForbidden},
		{"anonymous order", http.MethodPost, "/api/orders", "", http.StatusUnauthorized},
		{"user role change", http.MethodPatch, "/api/admin/users/u2/role", "user", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.token})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
	assert.Zero(t, stats.calls)
}

func TestRouter_ManagerReadsStats(t *testing.T) {
	stats := &countingStats{}
	e := newTestRouter(stats)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer manager")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stats.calls)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestRouter(&countingStats{})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_MetricsExposeBusinessCollectors(t *testing.T) {
	e := newTestRouter(&countingStats{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer user")
	e.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `agency_authorization_decisions_total{action="stats.read",outcome="forbidden"}`)
}
