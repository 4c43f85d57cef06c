package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/internal/webserver"
)

type orderItemPayload struct {
	ProductId      int64  `json:"product_id,string" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
	VariantDetails string `json:"variant_details"`
}

type createOrderPayload struct {
	UserId            int64              `json:"user_id,string" validate:"required"`
	PaymentMethod     string             `json:"payment_method"`
	ShippingAddressId int64              `json:"shipping_address_id,string"`
	BillingAddressId  int64              `json:"billing_address_id,string"`
	Notes             string             `json:"notes"`
	OrderItems        []orderItemPayload `json:"order_items" validate:"required,min=1,dive"`
}

type updateOrderStatusPayload struct {
	Status        string `json:"status" validate:"required"`
	PaymentStatus string `json:"payment_status" validate:"required"`
	Notes         string `json:"notes"`
}

type processPaymentPayload struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiGET("/orders/:id/items", getOrderItems)
	webserver.ApiGET("/orders/user/:userId", listOrdersByUser)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
	webserver.ApiPOST("/orders/:id/cancel", cancelOrder)
	webserver.ApiPOST("/orders/:id/payment", processPayment)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		orders, err := orderService.ListOrdersByStatus(c.Request().Context(), status)
		if err != nil {
			return failErr(c, err)
		}
		return webserver.Ok(c, orders)
	}
	orders, err := orderService.ListOrders(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, orders)
}

func getOrder(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, order)
}

func getOrderItems(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := orderService.OrderItems(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, items)
}

func listOrdersByUser(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	orders, err := orderService.ListOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, orders)
}

func createOrder(c echo.Context) error {
	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse order")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	in := service.CreateOrderInput{
		UserId:            payload.UserId,
		PaymentMethod:     payload.PaymentMethod,
		ShippingAddressId: payload.ShippingAddressId,
		BillingAddressId:  payload.BillingAddressId,
		Notes:             payload.Notes,
	}
	for _, item := range payload.OrderItems {
		in.Items = append(in.Items, service.OrderItemInput{
			ProductId:      item.ProductId,
			Quantity:       item.Quantity,
			VariantDetails: item.VariantDetails,
		})
	}

	order, err := orderService.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	webserver.RecordOrderPlaced()
	return webserver.Created(c, order)
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload updateOrderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse status update")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	order, err := orderService.UpdateOrderStatus(c.Request().Context(), id, service.UpdateOrderStatusInput{
		Status:        payload.Status,
		PaymentStatus: payload.PaymentStatus,
		Notes:         payload.Notes,
	})
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, order)
}

func cancelOrder(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := orderService.CancelOrder(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}

func processPayment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var payload processPaymentPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "unable to parse payment request")
	}
	order, err := orderService.ProcessPayment(c.Request().Context(), id, payload.PaymentMethod)
	if err != nil {
		return failErr(c, err)
	}
	return webserver.Ok(c, order)
}

func deleteOrder(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return webserver.NoContent(c)
}
