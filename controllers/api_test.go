package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/treenow/treenowbackend/middleware"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/routes"
	"github.com/treenow/treenowbackend/store"
	"github.com/treenow/treenowbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testSecret = "test-secret"

type testAPI struct {
	t     *testing.T
	r     *gin.Engine
	store *store.Store
}

func newTestAPI(t *testing.T, opts ...func(*routes.Deps)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	s := store.NewMemory()
	deps := routes.Deps{
		Store:       s,
		JWTSecret:   testSecret,
		AuthLimiter: middleware.NewRateLimiter(1000),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	r := gin.New()
	routes.Register(r, deps)
	return &testAPI{t: t, r: r, store: s}
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.serve(req, token)
}

func (a *testAPI) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// user stores an account with password "secret123" and returns a token for it.
func (a *testAPI) user(name, email string, admin bool) (models.User, string) {
	a.t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(a.t, err)
	u := models.User{Name: name, Email: email, PasswordHash: hash, IsAdmin: admin}
	require.NoError(a.t, a.store.Users.Create(context.Background(), &u))

	token, err := utils.GenerateToken(testSecret, u.ID.Hex(), u.IsAdmin, time.Hour)
	require.NoError(a.t, err)
	return u, token
}

func (a *testAPI) tree(name string) models.Tree {
	a.t.Helper()
	tree := models.Tree{
		Name:           name,
		ScientificName: name + " sp.",
		Image:          "https://cdn.test/" + name + ".jpg",
		Description:    "A common tree",
		Watering:       "Weekly",
		Sunlight:       "Full sun",
		SpecialCare:    "None",
		Pruning:        "Yearly",
		Fertilization:  "Compost",
		Price:          500,
	}
	require.NoError(a.t, a.store.Trees.Create(context.Background(), &tree))
	return tree
}

func (a *testAPI) product(name string, price float64) models.Product {
	a.t.Helper()
	p := models.Product{Name: name, Category: "Fertilizer", Use: "Growth", Price: price}
	require.NoError(a.t, a.store.Products.Create(context.Background(), &p))
	return p
}

func (a *testAPI) location(district string, lat, lng float64, trees ...bson.ObjectID) models.Location {
	a.t.Helper()
	ctx := context.Background()
	loc := models.Location{
		District:    district,
		City:        district,
		State:       "Maharashtra",
		Country:     models.DefaultCountry,
		Coordinates: &models.Coordinates{Latitude: lat, Longitude: lng},
		Climate:     models.ClimateTropical,
	}
	require.NoError(a.t, a.store.Locations.Create(ctx, &loc))
	require.NoError(a.t, a.store.Links.Replace(ctx, models.LinkLocationTree, loc.ID, trees))
	return loc
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Message string `json:"message"`
	}](t, w).Message
}

func treeBody(name string) gin.H {
	return gin.H{
		"name":           name,
		"scientificName": "Azadirachta indica",
		"image":          "https://cdn.test/neem.jpg",
		"description":    "Hardy shade tree",
		"watering":       "Weekly",
		"sunlight":       "Full sun",
		"specialCare":    "Protect saplings from frost",
		"pruning":        "After monsoon",
		"fertilization":  "Organic compost",
		"price":          450,
	}
}
