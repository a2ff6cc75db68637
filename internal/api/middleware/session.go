package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session token.
const SessionCookie = "session"

const (
	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// SessionResolver turns a token into a session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*access.Session, string, error)
}

// Session resolves the caller from the session cookie, falling back to an
// Authorization: Bearer header. Requests without a usable token continue as
// anonymous; routes that need a session are gated by Require.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c)
			if token == "" {
				return next(c)
			}

			sess, sessionID, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return next(c)
				}
				return err
			}

			c.Set(sessionKey, sess)
			c.Set(sessionIDKey, sessionID)
			return next(c)
		}
	}
}

// SessionFrom returns the resolved session or nil for anonymous callers.
func SessionFrom(c echo.Context) *access.Session {
	sess, _ := c.Get(sessionKey).(*access.Session)
	return sess
}

// SessionIDFrom returns the id of the resolved session, if any.
func SessionIDFrom(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

func tokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
