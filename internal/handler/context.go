package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wayandway/moneylog-backend/internal/auth"
	apperrors "github.com/wayandway/moneylog-backend/internal/errors"
)

// actorID extracts the authenticated user's ID from the claims stored by
// the required-auth middleware's ParseTokenFunc.
func actorID(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims.UserID, nil
}

// viewerID returns the optional viewer identity set by the optional-auth
// middleware, or nil for anonymous requests.
func viewerID(c echo.Context) *uint {
	if v, ok := c.Get(auth.ViewerContextKey).(uint); ok {
		return &v
	}
	return nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "VALIDATION_FAILED",
		})
	}
	return uint(id), nil
}

// toHTTPError maps domain errors to echo HTTP errors.
func toHTTPError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
