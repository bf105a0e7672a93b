package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treenow/treenowbackend/client"
	"github.com/treenow/treenowbackend/dto"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/routes"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fixture struct {
	store  *store.Store
	server *httptest.Server
	api    *client.Client
}

func newFixture(t *testing.T, wrap func(http.Handler) http.Handler) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	s := store.NewMemory()
	r := gin.New()
	routes.Register(r, routes.Deps{
		Store:       s,
		JWTSecret:   "client-secret",
		AuthLimiter: middleware.NewRateLimiter(1000),
	})
	var h http.Handler = r
	if wrap != nil {
		h = wrap(r)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &fixture{store: s, server: srv, api: client.New(srv.URL)}
}

// login registers a shopper through the API and returns its id.
func (f *fixture) login(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.api.Register(ctx, dto.RegisterDTO{Name: "Asha", Email: "asha@treenow.test", Password: "secret123"}))
	res, err := f.api.Login(ctx, "asha@treenow.test", "secret123")
	require.NoError(t, err)
	require.Equal(t, res.Token, f.api.Token())
	return res.ID
}

func (f *fixture) product(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Category: "Fertilizer", Use: "Growth", Price: price}
	require.NoError(t, f.store.Products.Create(context.Background(), &p))
	return p
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.api.Login(context.Background(), "nobody@treenow.test", "wrong-pass")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Empty(t, f.api.Token())
}

func TestProfileAndOrders(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.login(t)

	me, err := f.api.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, me.ID.Hex())
	assert.Equal(t, "asha@treenow.test", me.Email)

	orders, err := f.api.MyOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestNearbyTrees(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	neem := models.Tree{Name: "Neem", ScientificName: "Azadirachta indica", Price: 300}
	require.NoError(t, f.store.Trees.Create(ctx, &neem))
	loc := models.Location{
		District:    "Pune",
		City:        "Pune",
		State:       "Maharashtra",
		Country:     models.DefaultCountry,
		Coordinates: &models.Coordinates{Latitude: 18.5204, Longitude: 73.8567},
		Climate:     models.ClimateTropical,
	}
	require.NoError(t, f.store.Locations.Create(ctx, &loc))
	require.NoError(t, f.store.Links.Replace(ctx, models.LinkLocationTree, loc.ID, []bson.ObjectID{neem.ID}))

	got, err := f.api.NearbyTrees(ctx, models.Coordinates{Latitude: 18.53, Longitude: 73.85}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TreesFound)
	assert.Equal(t, float64(50), got.RadiusKm)
	require.Len(t, got.Trees, 1)
	assert.Equal(t, "Neem", got.Trees[0].Name)

	found, err := f.api.SearchLocations(ctx, "pun")
	require.NoError(t, err)
	require.Len(t, found, 1)

	trees, err := f.api.LocationTrees(ctx, loc.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Pune", trees.Location.District)
	require.Len(t, trees.Trees, 1)
}

func TestApplyCoupon(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	q, err := f.api.ApplyCoupon(ctx, 500, "DISCOUNT10")
	require.NoError(t, err)
	assert.Equal(t, 50.0, q.Discount)
	assert.Equal(t, 450.0, q.FinalAmount)

	_, err = f.api.ApplyCoupon(ctx, 500, "FREE")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
