package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/pricing"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type orderResponse struct {
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
}

func TestApplyCoupon(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/coupons/apply", gin.H{"subtotal": 1000, "code": "DISCOUNT10"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	q := decode[pricing.Quote](t, w)
	assert.Equal(t, pricing.Quote{Subtotal: 1000, Discount: 100, FinalAmount: 900}, q)

	// Applying again starts from the subtotal, never from the discounted total.
	w = api.do(http.MethodPost, "/api/coupons/apply", gin.H{"subtotal": q.Subtotal, "code": "DISCOUNT10"}, "")
	assert.Equal(t, 900.0, decode[pricing.Quote](t, w).FinalAmount)

	w = api.do(http.MethodPost, "/api/coupons/apply", gin.H{"subtotal": 1000, "code": "discount10"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid coupon code", messageOf(t, w))

	for _, code := range []string{" DISCOUNT10 ", "DISCOUNT10\t"} {
		w = api.do(http.MethodPost, "/api/coupons/apply", gin.H{"subtotal": 1000, "code": code}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "%q", code)
	}

	w = api.do(http.MethodPost, "/api/coupons/apply", gin.H{"subtotal": 1000}, "")
	require.Equal(t, http.StatusOK, w.Code)
	q = decode[pricing.Quote](t, w)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 1000.0, q.FinalAmount)
}

func TestCreateOrder(t *testing.T) {
	api := newTestAPI(t)
	u, token := api.user("Asha", "asha@example.com", false)
	pot := api.product("Pot", 500)

	w := api.do(http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{{
			"productId": pot.ID.Hex(), "name": pot.Name, "price": 500, "quantity": 2,
		}},
		"coupon":           "DISCOUNT10",
		"paymentMethod":    "UPI",
		"totalAmount":      900,
		"deliveryLocation": "18.52,73.85",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[orderResponse](t, w)

	assert.Equal(t, "Order placed successfully", resp.Message)
	o := resp.Order
	assert.Equal(t, u.ID, o.User)
	assert.Equal(t, 1000.0, o.Subtotal)
	assert.Equal(t, 100.0, o.Discount)
	assert.Equal(t, 900.0, o.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, models.PaymentUPI, o.PaymentMethod)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), o.OrderDate)
	assert.Equal(t, "18.52,73.85", o.DeliveryLocation)
	assert.Equal(t, 1, o.Version)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("Asha", "asha@example.com", false)
	item := gin.H{"productId": bson.NewObjectID().Hex(), "name": "Pot", "price": 500, "quantity": 1}

	cases := map[string]gin.H{
		"total mismatch":  {"items": []gin.H{item}, "paymentMethod": "COD", "totalAmount": 400},
		"no payment":      {"items": []gin.H{item}},
		"unknown payment": {"items": []gin.H{item}, "paymentMethod": "Bitcoin"},
		"no items":        {"items": []gin.H{}, "paymentMethod": "COD"},
		"zero quantity":   {"items": []gin.H{{"productId": bson.NewObjectID().Hex(), "price": 5, "quantity": 0}}, "paymentMethod": "COD"},
		"bad coupon":      {"items": []gin.H{item}, "paymentMethod": "COD", "coupon": "FREE"},
	}
	for name, body := range cases {
		w := api.do(http.MethodPost, "/api/orders", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	w := api.do(http.MethodPost, "/api/orders", gin.H{"items": []gin.H{item}, "paymentMethod": "COD"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutFromCartLeavesCart(t *testing.T) {
	api := newTestAPI(t)
	u, token := api.user("Asha", "asha@example.com", false)
	pot := api.product("Pot", 300)
	soil := api.product("Soil", 100)
	addToCart(api, u.ID.Hex(), pot)
	addToCart(api, u.ID.Hex(), soil)
	addToCart(api, u.ID.Hex(), soil)

	w := api.do(http.MethodPost, "/api/orders/checkout", gin.H{
		"paymentMethod": "Card", "coupon": "DISCOUNT10",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[orderResponse](t, w).Order
	require.Len(t, o.Items, 2)
	assert.Equal(t, 500.0, o.Subtotal)
	assert.Equal(t, 450.0, o.TotalAmount)
	assert.Equal(t, "DISCOUNT10", o.Coupon)

	w = api.do(http.MethodGet, "/api/cart/"+u.ID.Hex(), nil, "")
	assert.Len(t, decode[cartBody](t, w).Products, 2)
}

func TestCheckoutGuestCartAndBuyNow(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("Asha", "asha@example.com", false)
	pot := api.product("Pot", 300)
	addToCart(api, "browser-123", pot)

	w := api.do(http.MethodPost, "/api/orders/checkout", gin.H{
		"cartOwner": "browser-123", "paymentMethod": "COD",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 300.0, decode[orderResponse](t, w).Order.TotalAmount)

	w = api.do(http.MethodPost, "/api/orders/checkout", gin.H{
		"buyNow":        gin.H{"productId": pot.ID.Hex(), "name": "Pot", "price": 300},
		"paymentMethod": "UPI",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[orderResponse](t, w).Order
	require.Len(t, o.Items, 1)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, 300.0, o.TotalAmount)
}

func TestCheckoutRejects(t *testing.T) {
	api := newTestAPI(t)
	u, token := api.user("Asha", "asha@example.com", false)

	w := api.do(http.MethodPost, "/api/orders/checkout", gin.H{"paymentMethod": "COD"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", messageOf(t, w))

	addToCart(api, u.ID.Hex(), api.product("Pot", 300))
	w = api.do(http.MethodPost, "/api/orders/checkout", gin.H{"paymentMethod": "COD", "coupon": "HALF"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid coupon code", messageOf(t, w))

	w = api.do(http.MethodPost, "/api/orders/checkout", gin.H{"paymentMethod": "COD", "coupon": "DISCOUNT10 "}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid coupon code", messageOf(t, w))

	w = api.do(http.MethodPost, "/api/orders/checkout", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/orders/myorders", nil, token)
	assert.Empty(t, decode[[]models.Order](t, w))
}

func TestMyOrdersOnlyListsOwnOrders(t *testing.T) {
	api := newTestAPI(t)
	_, asha := api.user("Asha", "asha@example.com", false)
	_, ravi := api.user("Ravi", "ravi@example.com", false)
	pot := api.product("Pot", 300)

	for _, token := range []string{asha, asha, ravi} {
		w := api.do(http.MethodPost, "/api/orders/checkout", gin.H{
			"buyNow": gin.H{"productId": pot.ID.Hex(), "price": 300}, "paymentMethod": "COD",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.do(http.MethodGet, "/api/orders/myorders", nil, asha)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Order](t, w), 2)

	w = api.do(http.MethodGet, "/api/orders/myorders", nil, ravi)
	assert.Len(t, decode[[]models.Order](t, w), 1)
}

type adminOrder struct {
	ID      bson.ObjectID       `json:"id"`
	Status  models.OrderStatus  `json:"status"`
	Action  string              `json:"action"`
	Version int                 `json:"version"`
	User    *models.UserSummary `json:"user"`
}

func TestAdminOrderManagement(t *testing.T) {
	api := newTestAPI(t)
	_, asha := api.user("Asha", "asha@example.com", false)
	_, admin := api.user("Admin", "admin@example.com", true)
	pot := api.product("Pot", 300)

	w := api.do(http.MethodPost, "/api/orders/checkout", gin.H{
		"buyNow": gin.H{"productId": pot.ID.Hex(), "price": 300}, "paymentMethod": "COD",
	}, asha)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode[orderResponse](t, w).Order.ID.Hex()

	w = api.do(http.MethodGet, "/api/orders", nil, asha)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, path := range []string{"/api/orders", "/api/admin/orders"} {
		w = api.do(http.MethodGet, path, nil, admin)
		require.Equal(t, http.StatusOK, w.Code, path)
		list := decode[[]adminOrder](t, w)
		require.Len(t, list, 1, path)
		require.NotNil(t, list[0].User, path)
		assert.Equal(t, "Asha", list[0].User.Name)
		assert.Equal(t, "asha@example.com", list[0].User.Email)
	}

	path := "/api/orders/" + orderID
	w = api.do(http.MethodPut, path, gin.H{"status": "Lost"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPut, path, gin.H{"status": "Shipped", "version": 1}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Order](t, w)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, 2, updated.Version)

	w = api.do(http.MethodPut, path, gin.H{"status": "Cancel", "version": 1}, admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPut, "/api/admin/orders/"+orderID, gin.H{"actionMessage": "Packed"}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decode[models.Order](t, w)
	assert.Equal(t, "Packed", updated.Action)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, 3, updated.Version)

	w = api.do(http.MethodPut, path, gin.H{"status": "Completed"}, asha)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodDelete, path, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodDelete, path, nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", messageOf(t, w))
	w = api.do(http.MethodPut, "/api/orders/not-an-id", gin.H{"status": "Ready"}, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
