package shopapi

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
	"go.uber.org/zap"
)

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// failErr maps the service error taxonomy onto status codes. Anything
// untyped is a 500 with the detail logged and echoed.
func failErr(c echo.Context, err error) error {
	switch service.KindOf(err) {
	case service.KindNotFound:
		return webserver.Fail(c, http.StatusNotFound, err.Error())
	case service.KindConflict:
		return webserver.Fail(c, http.StatusConflict, err.Error())
	case service.KindInvalidState, service.KindInsufficientStock, service.KindInvalidRequest:
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("unexpected api error",
			zap.String("path", c.Request().URL.Path), zap.Error(err))
		return webserver.FailDetail(c, http.StatusInternalServerError,
			"an unexpected error occurred", err.Error())
	}
}

// currentUserID reads the authenticated user id from the jwt claims
// placed in context by the auth middleware (echo-jwt parses with
// golang-jwt v5; the auth service signs compatible HS256 tokens).
func currentUserID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	return cast.ToInt64(claims["sub"])
}
