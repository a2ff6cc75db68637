package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

func runGate(t *testing.T, action access.Action, sess *access.Session) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	if sess != nil {
		c.Set(sessionKey, sess)
	}

	called := false
	err := Require(action)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequire_PublicActionAllowsAnonymous(t *testing.T) {
	called, err := runGate(t, access.ActionTourList, nil)
	if err != nil || !called {
		t.Fatalf("expected pass-through, called=%v err=%v", called, err)
	}
}

func TestRequire_AnonymousIsUnauthenticated(t *testing.T) {
	called, err := runGate(t, access.ActionOrderCreate, nil)
	if called {
		t.Fatalf("next must not run")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestRequire_RoleOutsideAllowSet(t *testing.T) {
	tests := []struct {
		name   string
		action access.Action
		role   domain.Role
		allow  bool
	}{
		{"user creates tour", access.ActionTourCreate, domain.RoleUser, false},
		{"manager creates tour", access.ActionTourCreate, domain.RoleManager, true},
		{"manager cascades destination", access.ActionDestinationDeleteCascade, domain.RoleManager, false},
		{"admin cascades destination", access.ActionDestinationDeleteCascade, domain.RoleAdmin, true},
		{"manager moderates review", access.ActionReviewApprove, domain.RoleManager, false},
		{"user places order", access.ActionOrderCreate, domain.RoleUser, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called, err := runGate(t, tc.action, &access.Session{UserID: "x", Role: tc.role})
			if called != tc.allow {
				t.Fatalf("expected called=%v, got %v (err=%v)", tc.allow, called, err)
			}
			if !tc.allow && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
		})
	}
}

func TestRequire_ForbiddenNamesRequiredRoles(t *testing.T) {
	_, err := runGate(t, access.ActionStatsRead, &access.Session{UserID: "u1", Role: domain.RoleUser})

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T", err)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden kind, got %v", err)
	}
	roles, ok := de.Details["requiredRoles"].([]string)
	if !ok || len(roles) != 2 || roles[0] != "MANAGER" || roles[1] != "ADMIN" {
		t.Fatalf("unexpected details: %+v", de.Details)
	}
}
