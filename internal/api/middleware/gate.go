package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// Require runs the authentication and role checks for action before the
// handler reads the request body. Ownership is checked later by the service
// once the target record is loaded.
func Require(action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := access.Check(SessionFrom(c), action)
			metrics.AuthorizationDecisionsTotal.WithLabelValues(string(action), outcome(err)).Inc()
			if err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					return forbidden(action)
				}
				return err
			}
			return next(c)
		}
	}
}

// forbidden names the roles that may perform action in the 403 details.
func forbidden(action access.Action) error {
	allowed := access.Allowed(action)
	roles := make([]string, len(allowed))
	for i, r := range allowed {
		roles[i] = string(r)
	}
	return domain.NewError(domain.ErrForbidden, "access forbidden").
		WithDetails(map[string]any{"requiredRoles": roles})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "forbidden"
	}
}
