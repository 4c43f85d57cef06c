package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResult struct {
	Token string           `json:"token"`
	User  service.Identity `json:"user"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/login", login)
	webserver.PubPOST("/register", register)
	webserver.ApiPOST("/authentication/password", changePassword)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse credentials")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	user, err := authService.Authenticate(c.Request().Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return webserver.Fail(c, http.StatusUnauthorized, err.Error())
		}
		return failErr(c, err)
	}

	roles, err := userService.RolesOf(c.Request().Context(), user.ID)
	if err != nil {
		return failErr(c, err)
	}
	ident := service.Identity{
		UserId:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}
	token, err := authService.IssueToken(ident)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, loginResult{Token: token, User: ident})
}

func register(c echo.Context) error {
	var payload service.RegisterUserInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse registration")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	user, err := userService.Register(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Created(c, user)
}

func changePassword(c echo.Context) error {
	var payload changePasswordPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse request")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	err := authService.ChangePassword(c.Request().Context(), currentUserID(c),
		payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return webserver.Fail(c, http.StatusUnauthorized, err.Error())
		}
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
