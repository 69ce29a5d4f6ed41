package routes

import (
	"psiagenda/cmd/internal/session"
	"psiagenda/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// SessionMiddleware verifies the request token and attaches the session
// claims to the request context. Any failure ends the request with 401.
func SessionMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := lastSegment(req.Header.Get(echo.HeaderAuthorization))

			payload, err := session.CheckToken(token, secret)
			if err != nil {
				log.Warnf("session rejected on %s %s: %v", req.Method, req.URL.Path, err)
				return c.JSON(apierror.InvalidSessionError.Code(), apierror.InvalidSessionError)
			}
			log.Debugf("jwtPayload: %v", payload)

			ctx := session.WithClaims(req.Context(), session.FromMap(payload))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// lastSegment accepts both "Bearer <token>" and a bare token.
func lastSegment(header string) string {
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
