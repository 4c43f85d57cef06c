package shopapi

import (
	"fmt"
	"net/http"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughstore/internal/domain"
)

func TestCreateOrderHandler(t *testing.T) {
	db := newTestEnv(t)
	e := newEcho()
	user := seedTestUser(t, db, "buyer")
	product := seedTestProduct(t, db, "widget", 50.0, 10)

	body := fmt.Sprintf(`{"user_id":"%d","payment_method":"credit_card",
		"order_items":[{"product_id":"%d","quantity":3}]}`, user.ID, product.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.InDelta(t, 165.0, order.TotalAmount, 0.001)

	var stored domain.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 7, stored.StockQuantity)
}

func TestCreateOrderHandlerValidation(t *testing.T) {
	db := newTestEnv(t)
	e := newEcho()
	user := seedTestUser(t, db, "buyer")

	// empty item list fails validation before the service runs
	body := fmt.Sprintf(`{"user_id":"%d","order_items":[]}`, user.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = doJSON(e, http.MethodPost, "/api/orders", `{not json`)
	require.NoError(t, createOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandlerInsufficientStock(t *testing.T) {
	db := newTestEnv(t)
	e := newEcho()
	user := seedTestUser(t, db, "buyer")
	product := seedTestProduct(t, db, "widget", 50.0, 2)

	body := fmt.Sprintf(`{"user_id":"%d","order_items":[{"product_id":"%d","quantity":5}]}`,
		user.ID, product.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient stock")
}

func TestCancelOrderHandler(t *testing.T) {
	db := newTestEnv(t)
	e := newEcho()
	user := seedTestUser(t, db, "buyer")
	product := seedTestProduct(t, db, "widget", 50.0, 10)

	body := fmt.Sprintf(`{"user_id":"%d","order_items":[{"product_id":"%d","quantity":2}]}`,
		user.ID, product.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &order))

	c, rec = doJSON(e, http.MethodPost, "/api/orders/x/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", order.ID))
	require.NoError(t, cancelOrder(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var stored domain.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 10, stored.StockQuantity)
}

func TestUpdateOrderStatusHandlerRejectsUnknown(t *testing.T) {
	db := newTestEnv(t)
	e := newEcho()
	user := seedTestUser(t, db, "buyer")
	product := seedTestProduct(t, db, "widget", 50.0, 10)

	body := fmt.Sprintf(`{"user_id":"%d","order_items":[{"product_id":"%d","quantity":1}]}`,
		user.ID, product.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	var order domain.Order
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &order))

	c, rec = doJSON(e, http.MethodPut, "/api/orders/x/status",
		`{"status":"Teleported","payment_status":"Pending"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", order.ID))
	require.NoError(t, updateOrderStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderHandlerBadID(t *testing.T) {
	newTestEnv(t)
	e := newEcho()

	c, _ := doJSON(e, http.MethodGet, "/api/orders/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := getOrder(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
