package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

type updateCartQuantityPayload struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", listCartItems)
	webserver.ApiPOST("/cart", addCartItem)
	webserver.ApiPUT("/cart/:id", updateCartItem)
	webserver.ApiDELETE("/cart/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

func listCartItems(c echo.Context) error {
	items, err := cartService.ListItems(c.Request().Context(), currentUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, items)
}

func addCartItem(c echo.Context) error {
	var payload service.AddCartItemInput
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse cart item")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}
	if payload.UserId == 0 {
		payload.UserId = currentUserID(c)
	}

	item, err := cartService.AddItem(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Created(c, item)
}

func updateCartItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload updateCartQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse cart update")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	item, err := cartService.UpdateItemQuantity(c.Request().Context(), id, payload.Quantity)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, item)
}

func removeCartItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := cartService.RemoveItem(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}

func clearCart(c echo.Context) error {
	if err := cartService.ClearCart(c.Request().Context(), currentUserID(c)); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
