package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/middleware"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

var errBadPayload = domain.NewError(domain.ErrInvalidInput, "invalid request payload")

// ctxSession returns the caller's session, nil when anonymous. Route gates
// have already rejected anonymous callers where a session is required.
func ctxSession(c echo.Context) *access.Session {
	return middleware.SessionFrom(c)
}

// bindBody decodes the JSON body into dst. Shape errors are the service's
// job; only undecodable payloads fail here.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errBadPayload
	}
	return nil
}

// bindQuery decodes and validates query parameters into dst.
func bindQuery(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
		return domain.NewError(domain.ErrInvalidInput, "invalid query parameters")
	}
	return c.Validate(dst)
}
