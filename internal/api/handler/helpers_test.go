package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/middleware"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
)

const testSessionID = "sid-1"

type fixedResolver struct {
	sess *access.Session
}

func (r fixedResolver) Resolve(context.Context, string) (*access.Session, string, error) {
	return r.sess, testSessionID, nil
}

// call runs h against a request, resolving sess through the session
// middleware when it is non-nil.
func call(h echo.HandlerFunc, method, target, body string, sess *access.Session, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.Validator = NewValidator(validation.New())

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sess != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	err := middleware.Session(fixedResolver{sess: sess})(h)(c)
	return rec, err
}
