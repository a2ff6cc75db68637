package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type stubResolver struct {
	tokens map[string]*access.Session
	err    error
	seen   []string
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*access.Session, string, error) {
	r.seen = append(r.seen, token)
	if r.err != nil {
		return nil, "", r.err
	}
	sess, ok := r.tokens[token]
	if !ok {
		return nil, "", domain.ErrUnauthenticated
	}
	return sess, "sid-" + token, nil
}

func runSession(t *testing.T, resolver SessionResolver, req *http.Request) (*access.Session, string, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		got   *access.Session
		gotID string
	)
	err := Session(resolver)(func(c echo.Context) error {
		got = SessionFrom(c)
		gotID = SessionIDFrom(c)
		return nil
	})(c)
	return got, gotID, err
}

func TestSession_FromCookie(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*access.Session{
		"cookie-token": {UserID: "u1", Role: domain.RoleUser},
	}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

	sess, sid, err := runSession(t, resolver, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil || sess.UserID != "u1" {
		t.Fatalf("expected session for u1, got %+v", sess)
	}
	if sid != "sid-cookie-token" {
		t.Fatalf("unexpected session id %q", sid)
	}
}

func TestSession_BearerFallback(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*access.Session{
		"header-token": {UserID: "m1", Role: domain.RoleManager},
	}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	sess, _, err := runSession(t, resolver, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil || sess.Role != domain.RoleManager {
		t.Fatalf("expected manager session, got %+v", sess)
	}
}

func TestSession_CookieWinsOverHeader(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*access.Session{
		"cookie-token": {UserID: "u1"},
		"header-token": {UserID: "u2"},
	}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	sess, _, _ := runSession(t, resolver, req)
	if sess == nil || sess.UserID != "u1" {
		t.Fatalf("expected cookie session, got %+v", sess)
	}
}

func TestSession_AnonymousWithoutToken(t *testing.T) {
	resolver := &stubResolver{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")

	sess, _, err := runSession(t, resolver, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected anonymous, got %+v", sess)
	}
	if len(resolver.seen) != 0 {
		t.Fatalf("resolver should not be called, saw %v", resolver.seen)
	}
}

func TestSession_InvalidTokenIsAnonymous(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*access.Session{}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")

	sess, _, err := runSession(t, resolver, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected anonymous, got %+v", sess)
	}
}

func TestSession_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("redis down")
	resolver := &stubResolver{err: boom}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")

	_, _, err := runSession(t, resolver, req)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
