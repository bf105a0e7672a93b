package controllers_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type cartBody struct {
	UserID   string            `json:"userId"`
	Products []models.CartItem `json:"products"`
	Total    float64           `json:"total"`
}

type cartResponse struct {
	Message string   `json:"message"`
	Cart    cartBody `json:"cart"`
}

func addToCart(api *testAPI, owner string, p models.Product) *cartResponse {
	api.t.Helper()
	w := api.do(http.MethodPost, "/api/cart/add", gin.H{
		"userId": owner, "productId": p.ID.Hex(), "name": p.Name, "price": p.Price, "image": p.Image,
	}, "")
	require.Equal(api.t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[cartResponse](api.t, w)
	return &resp
}

func TestAddToCartMergesLines(t *testing.T) {
	api := newTestAPI(t)
	fertilizer := api.product("Fertilizer", 250)

	first := addToCart(api, "owner-1", fertilizer)
	assert.Equal(t, "Product added to cart", first.Message)
	require.Len(t, first.Cart.Products, 1)
	assert.Equal(t, 1, first.Cart.Products[0].Quantity)
	assert.Equal(t, 250.0, first.Cart.Total)

	second := addToCart(api, "owner-1", fertilizer)
	require.Len(t, second.Cart.Products, 1)
	assert.Equal(t, 2, second.Cart.Products[0].Quantity)
	assert.Equal(t, 500.0, second.Cart.Total)

	w := api.do(http.MethodGet, "/api/cart/owner-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[cartBody](t, w)
	assert.Equal(t, "owner-1", cart.UserID)
	assert.Equal(t, 500.0, cart.Total)
}

func TestCartTotalAcrossLines(t *testing.T) {
	api := newTestAPI(t)
	a := api.product("Pot", 100)
	b := api.product("Soil", 50)

	addToCart(api, "owner-1", a)
	addToCart(api, "owner-1", b)
	resp := addToCart(api, "owner-1", a)

	require.Len(t, resp.Cart.Products, 2)
	assert.Equal(t, 250.0, resp.Cart.Total)

	other := addToCart(api, "owner-2", b)
	assert.Equal(t, 50.0, other.Cart.Total)
}

func TestAddToCartValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/cart/add", gin.H{"productId": bson.NewObjectID().Hex()}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(http.MethodPost, "/api/cart/add", gin.H{"userId": "owner-1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(http.MethodPost, "/api/cart/add", gin.H{"userId": "owner-1", "productId": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartWithoutOneIsEmpty(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/cart/nobody", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[cartBody](t, w)
	assert.Empty(t, cart.Products)
	assert.Equal(t, 0.0, cart.Total)
	assert.Contains(t, w.Body.String(), `"products":[]`)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	api := newTestAPI(t)
	p := api.product("Pot", 100)
	addToCart(api, "owner-1", p)
	path := "/api/cart/owner-1/items/" + p.ID.Hex()

	w := api.do(http.MethodPut, path, gin.H{"quantity": 5}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[cartResponse](t, w)
	assert.Equal(t, 5, resp.Cart.Products[0].Quantity)
	assert.Equal(t, 500.0, resp.Cart.Total)

	for _, q := range []int{0, -3} {
		w = api.do(http.MethodPut, path, gin.H{"quantity": q}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w = api.do(http.MethodPut, path, gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/cart/owner-1", nil, "")
	assert.Equal(t, 5, decode[cartBody](t, w).Products[0].Quantity)

	w = api.do(http.MethodPut, "/api/cart/owner-1/items/"+bson.NewObjectID().Hex(), gin.H{"quantity": 2}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found in cart", messageOf(t, w))
}

func TestRemoveCartItemIsIdempotent(t *testing.T) {
	api := newTestAPI(t)
	pot := api.product("Pot", 100)
	soil := api.product("Soil", 50)
	addToCart(api, "owner-1", pot)
	addToCart(api, "owner-1", soil)
	path := "/api/cart/owner-1/items/" + pot.ID.Hex()

	for i := 0; i < 2; i++ {
		w := api.do(http.MethodDelete, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[cartResponse](t, w)
		require.Len(t, resp.Cart.Products, 1)
		assert.Equal(t, soil.ID, resp.Cart.Products[0].ProductID)
		assert.Equal(t, 50.0, resp.Cart.Total)
	}

	w := api.do(http.MethodDelete, "/api/cart/stranger/items/"+pot.ID.Hex(), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearCart(t *testing.T) {
	api := newTestAPI(t)
	addToCart(api, "owner-1", api.product("Pot", 100))

	w := api.do(http.MethodDelete, "/api/cart/owner-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/cart/owner-1", nil, "")
	cart := decode[cartBody](t, w)
	assert.Empty(t, cart.Products)
	assert.Equal(t, 0.0, cart.Total)
}

func TestConcurrentAddsKeepEveryIncrement(t *testing.T) {
	api := newTestAPI(t)
	p := api.product("Pot", 10)
	body := gin.H{"userId": "owner-1", "productId": p.ID.Hex(), "name": p.Name, "price": p.Price}

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			api.do(http.MethodPost, "/api/cart/add", body, "")
		}()
	}
	wg.Wait()

	w := api.do(http.MethodGet, "/api/cart/owner-1", nil, "")
	cart := decode[cartBody](t, w)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 25, cart.Products[0].Quantity)
	assert.Equal(t, 250.0, cart.Total)
}
