package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treenow/treenowbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestTreeCRUD(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("Admin", "admin@example.com", true)

	w := api.do(http.MethodPost, "/api/trees", treeBody("Neem"), admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Tree](t, w)
	require.False(t, created.ID.IsZero())
	assert.Equal(t, 450.0, created.Price)

	w = api.do(http.MethodGet, "/api/trees", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Tree](t, w), 1)

	path := "/api/trees/" + created.ID.Hex()
	w = api.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Neem", decode[models.Tree](t, w).Name)

	w = api.do(http.MethodPut, path, gin.H{"watering": "Daily in summer"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Tree](t, w)
	assert.Equal(t, "Daily in summer", updated.Watering)
	assert.Equal(t, "Neem", updated.Name)

	w = api.do(http.MethodPut, "/api/trees/"+bson.NewObjectID().Hex(), gin.H{"watering": "x"}, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tree not found", messageOf(t, w))

	w = api.do(http.MethodGet, "/api/trees/not-an-id", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, path, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTreeMutationsNeedAdmin(t *testing.T) {
	api := newTestAPI(t)
	_, user := api.user("User", "user@example.com", false)
	_, admin := api.user("Admin", "admin@example.com", true)
	tree := api.tree("Banyan")

	w := api.do(http.MethodPost, "/api/trees", treeBody("Neem"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(http.MethodPost, "/api/trees", treeBody("Neem"), user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(http.MethodPut, "/api/trees/"+tree.ID.Hex(), gin.H{"name": "Fig"}, user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	noPrice := treeBody("Neem")
	delete(noPrice, "price")
	w = api.do(http.MethodPost, "/api/trees", noPrice, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price is required", messageOf(t, w))

	negative := treeBody("Neem")
	negative["price"] = -5
	w = api.do(http.MethodPost, "/api/trees", negative, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	noCare := treeBody("Neem")
	delete(noCare, "specialCare")
	w = api.do(http.MethodPost, "/api/trees", noCare, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTreeUnlinksIt(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("Admin", "admin@example.com", true)
	neem := api.tree("Neem")
	mango := api.tree("Mango")
	loc := api.location("Pune", 18.52, 73.85, neem.ID, mango.ID)

	w := api.do(http.MethodDelete, "/api/trees/"+neem.ID.Hex(), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	ids, err := api.store.Links.Targets(context.Background(), models.LinkLocationTree, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{mango.ID}, ids)
}

func TestBonsaiPriceIsRequired(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("Admin", "admin@example.com", true)
	body := gin.H{
		"name": "Juniper", "scientificName": "Juniperus", "image": "j.jpg",
		"owner": "Kiran", "link": "https://example.com/j", "age": 12,
		"description": "Old juniper", "watering": "Light", "sunlight": "Partial",
		"pruning": "Spring", "fertilization": "Monthly",
	}

	w := api.do(http.MethodPost, "/api/bonsai", body, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["price"] = 12000
	w = api.do(http.MethodPost, "/api/bonsai", body, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bonsai := decode[models.Bonsai](t, w)
	assert.Equal(t, 12000.0, bonsai.Price)

	w = api.do(http.MethodPut, "/api/bonsai/"+bonsai.ID.Hex(), gin.H{"age": 13}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 13, decode[models.Bonsai](t, w).Age)

	w = api.do(http.MethodGet, "/api/bonsai", nil, "")
	assert.Len(t, decode[[]models.Bonsai](t, w), 1)
}

func TestProductCRUD(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("Admin", "admin@example.com", true)

	w := api.do(http.MethodPost, "/api/products", gin.H{"name": "Neem oil", "category": "Pesticide", "use": "Pests"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/products", gin.H{
		"name": "Neem oil", "category": "Pesticide", "use": "Pests", "price": 250,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[models.Product](t, w)

	w = api.do(http.MethodPut, "/api/products/"+p.ID.Hex(), gin.H{"price": 275}, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 275.0, decode[models.Product](t, w).Price)

	w = api.do(http.MethodDelete, "/api/products/"+p.ID.Hex(), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodDelete, "/api/products/"+p.ID.Hex(), nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", messageOf(t, w))
}

func TestDiseaseLifecycle(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("Admin", "admin@example.com", true)
	neem := api.tree("Neem")
	mango := api.tree("Mango")
	oil := api.product("Neem oil", 250)

	w := api.do(http.MethodPost, "/api/diseases", gin.H{
		"name": "Leaf spot", "symptoms": []string{"brown spots"}, "products": []string{oil.ID.Hex()},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code, "tree is required")

	w = api.do(http.MethodPost, "/api/diseases", gin.H{
		"name": "Leaf spot", "symptoms": []string{"brown spots"}, "tree": []string{bson.NewObjectID().Hex()},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown tree")

	w = api.do(http.MethodPost, "/api/diseases", gin.H{
		"name":      "Leaf spot",
		"symptoms":  []string{"brown spots"},
		"solutions": []string{"remove leaves"},
		"tree":      []string{neem.ID.Hex()},
		"products":  []string{oil.ID.Hex()},
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	disease := decode[models.DiseaseView](t, w)
	require.Len(t, disease.Trees, 1)
	assert.Equal(t, "Neem", disease.Trees[0].Name)
	require.Len(t, disease.Products, 1)
	assert.Equal(t, "Neem oil", disease.Products[0].Name)

	w = api.do(http.MethodGet, "/api/diseases?tree="+neem.ID.Hex(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.DiseaseView](t, w), 1)

	w = api.do(http.MethodGet, "/api/diseases?tree="+mango.ID.Hex(), nil, "")
	assert.Empty(t, decode[[]models.DiseaseView](t, w))
	w = api.do(http.MethodGet, "/api/diseases?tree=junk", nil, "")
	assert.Empty(t, decode[[]models.DiseaseView](t, w))

	path := "/api/diseases/" + disease.ID.Hex()
	w = api.do(http.MethodPut, path, gin.H{"tree": []string{mango.ID.Hex(), neem.ID.Hex()}}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.DiseaseView](t, w)
	require.Len(t, updated.Trees, 2)
	assert.Equal(t, "Mango", updated.Trees[0].Name)
	assert.Equal(t, "Leaf spot", updated.Name)

	w = api.do(http.MethodDelete, "/api/products/"+oil.ID.Hex(), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.DiseaseView](t, w).Products)

	w = api.do(http.MethodDelete, path, nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, "/api/diseases?tree="+mango.ID.Hex(), nil, "")
	assert.Empty(t, decode[[]models.DiseaseView](t, w))
}
