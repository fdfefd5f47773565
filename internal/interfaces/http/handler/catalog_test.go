package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcat "github.com/retail/backend/internal/application/catalog"
	"github.com/retail/backend/internal/infrastructure/persistence/memory"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

func newCatalogTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	service := appcat.NewProductService(store.Products(), store.Lookups(), store.Variants(), nil)

	engine := gin.New()
	NewCatalogHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func createProductViaAPI(t *testing.T, engine *gin.Engine, name string) appcat.ProductResponse {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/products", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)

	var product appcat.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &product))
	return product
}

func TestProductEndpoints(t *testing.T) {
	engine := newCatalogTestServer(t)

	t.Run("create and fetch", func(t *testing.T) {
		product := createProductViaAPI(t, engine, "Plain Tee")

		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched appcat.ProductResponse
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, "Plain Tee", fetched.Name)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/products", gin.H{"description": "no name"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/products/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update toggles the low-stock opt-out", func(t *testing.T) {
		product := createProductViaAPI(t, engine, "Hoodie")

		w, env := doJSON(t, engine, http.MethodPut, "/api/v1/products/"+product.ID.String(), gin.H{
			"name":             "Hoodie",
			"ignore_low_stock": true,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated appcat.ProductResponse
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.True(t, updated.IgnoreLowStock)
	})

	t.Run("delete", func(t *testing.T) {
		product := createProductViaAPI(t, engine, "Cap")

		w, _ := doJSON(t, engine, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVariantEndpoints(t *testing.T) {
	engine := newCatalogTestServer(t)
	product := createProductViaAPI(t, engine, "Plain Tee")

	body := gin.H{
		"product_id":  product.ID.String(),
		"size_id":     uuid.New().String(),
		"color_id":    uuid.New().String(),
		"stock_sound": 10,
		"price":       "19.99",
	}

	var variant appcat.VariantResponse

	t.Run("create with opening stock", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/variants", body)
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(env.Data, &variant))
		assert.Equal(t, 10, variant.StockSound)
	})

	t.Run("duplicate combination is a conflict", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/variants", body)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeAlreadyExists, env.Error.Code)
	})

	t.Run("stock correction", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPut, "/api/v1/variants/"+variant.ID.String()+"/stock", gin.H{
			"stock_sound":     4,
			"stock_defective": 2,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var corrected appcat.VariantResponse
		require.NoError(t, json.Unmarshal(env.Data, &corrected))
		assert.Equal(t, 4, corrected.StockSound)
		assert.Equal(t, 2, corrected.StockDefective)
	})

	t.Run("list by product", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/products/"+product.ID.String()+"/variants", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var variants []appcat.VariantResponse
		require.NoError(t, json.Unmarshal(env.Data, &variants))
		assert.Len(t, variants, 1)
	})
}

func TestLookupEndpoints(t *testing.T) {
	engine := newCatalogTestServer(t)

	t.Run("color with hex code", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/colors", gin.H{
			"name":     "Black",
			"hex_code": "#000000",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var color appcat.LookupResponse
		require.NoError(t, json.Unmarshal(env.Data, &color))
		assert.Equal(t, "#000000", color.HexCode)

		w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/colors", gin.H{
			"name":     "Red",
			"hex_code": "red",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate size name is a conflict", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/sizes", gin.H{"name": "M"})
		require.Equal(t, http.StatusCreated, w.Code)

		w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/sizes", gin.H{"name": "M"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("category lifecycle", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/categories", gin.H{"name": "Shirts"})
		require.Equal(t, http.StatusCreated, w.Code)

		var category appcat.LookupResponse
		require.NoError(t, json.Unmarshal(env.Data, &category))

		w, env = doJSON(t, engine, http.MethodGet, "/api/v1/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var categories []appcat.LookupResponse
		require.NoError(t, json.Unmarshal(env.Data, &categories))
		assert.Len(t, categories, 1)

		w, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/categories/"+category.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
