package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

type assignRolePayload struct {
	Role string `json:"role" validate:"required"`
}

func registerUserRoutes() {
	webserver.ApiGET("/users", listUsers)
	webserver.ApiGET("/users/me", currentUser)
	webserver.ApiGET("/users/:id", getUser)
	webserver.ApiPUT("/users/:id", updateUser)
	webserver.ApiPOST("/users/:id/roles", assignRole)
	webserver.ApiDELETE("/users/:id", deactivateUser)
}

func listUsers(c echo.Context) error {
	users, err := userService.ListUsers(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, users)
}

func currentUser(c echo.Context) error {
	user, err := userService.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, user)
}

func getUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, user)
}

func updateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload service.UpdateUserInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse user update")
	}
	user, err := userService.UpdateUser(c.Request().Context(), id, payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, user)
}

func assignRole(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload assignRolePayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse role assignment")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := userService.AssignRole(c.Request().Context(), id, payload.Role); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}

func deactivateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := userService.DeactivateUser(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
