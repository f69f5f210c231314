package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ViewerContextKey is where the optional-auth middleware stores the viewer's
// user ID when a valid bearer token accompanies the request.
const ViewerContextKey = "viewer_id"

// OptionalMiddleware resolves an optional viewer identity from the
// Authorization header. A missing, malformed or expired token leaves the
// request anonymous; it never rejects the request. Read paths use this so
// authentication only changes result filtering.
func OptionalMiddleware(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if strings.HasPrefix(header, prefix) {
				if claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, prefix)); err == nil {
					c.Set(ViewerContextKey, claims.UserID)
				}
			}
			return next(c)
		}
	}
}
