package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/persistence/memory"
)

func newTestService(t *testing.T) (*ProductService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewProductService(store.Products(), store.Lookups(), store.Variants(), nil), store
}

func TestCreateProduct(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("creates and reads back", func(t *testing.T) {
		created, err := service.CreateProduct(ctx, CreateProductRequest{
			Name:        "Plain Tee",
			Description: "Crew neck",
			ImageURL:    "https://cdn.example.com/tee.jpg",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.IgnoreLowStock)

		fetched, err := service.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, fetched.Name)
		assert.Equal(t, created.ImageURL, fetched.ImageURL)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := service.CreateProduct(ctx, CreateProductRequest{})
		assert.Error(t, err)
	})
}

func TestUpdateProduct(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, CreateProductRequest{Name: "Plain Tee"})
	require.NoError(t, err)

	updated, err := service.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		Name:           "Plain Tee v2",
		IgnoreLowStock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Plain Tee v2", updated.Name)
	assert.True(t, updated.IgnoreLowStock)

	_, err = service.UpdateProduct(ctx, uuid.New(), UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListProductsSearch(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Plain Tee", "Striped Tee", "Hoodie"} {
		_, err := service.CreateProduct(ctx, CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	filter := shared.NewFilter()
	filter.Search = "tee"
	products, err := service.ListProducts(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreateVariant(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, CreateProductRequest{Name: "Plain Tee"})
	require.NoError(t, err)
	sizeID := uuid.New()
	colorID := uuid.New()

	req := CreateVariantRequest{
		ProductID:      product.ID,
		SizeID:         sizeID,
		ColorID:        colorID,
		StockSound:     10,
		StockDefective: 1,
		Price:          decimal.NewFromFloat(19.99),
	}

	t.Run("creates with opening stock", func(t *testing.T) {
		variant, err := service.CreateVariant(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 10, variant.StockSound)
		assert.Equal(t, 1, variant.StockDefective)
		assert.True(t, variant.Price.Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("duplicate combination is rejected", func(t *testing.T) {
		_, err := service.CreateVariant(ctx, req)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		bad := req
		bad.ProductID = uuid.New()
		bad.SizeID = uuid.New()
		_, err := service.CreateVariant(ctx, bad)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCorrectStock(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, CreateProductRequest{Name: "Plain Tee"})
	require.NoError(t, err)
	variant, err := service.CreateVariant(ctx, CreateVariantRequest{
		ProductID: product.ID,
		SizeID:    uuid.New(),
		ColorID:   uuid.New(),
		Price:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	corrected, err := service.CorrectStock(ctx, CorrectStockRequest{
		VariantID:      variant.ID,
		StockSound:     8,
		StockDefective: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, corrected.StockSound)
	assert.Equal(t, 3, corrected.StockDefective)

	_, err = service.CorrectStock(ctx, CorrectStockRequest{VariantID: variant.ID, StockSound: -1})
	assert.Error(t, err)

	_, err = service.CorrectStock(ctx, CorrectStockRequest{VariantID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteProductCascadesVariants(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, CreateProductRequest{Name: "Plain Tee"})
	require.NoError(t, err)
	_, err = service.CreateVariant(ctx, CreateVariantRequest{
		ProductID: product.ID,
		SizeID:    uuid.New(),
		ColorID:   uuid.New(),
		Price:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, product.ID))

	variants, err := service.ListVariants(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, variants)

	err = service.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLookups(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("categories", func(t *testing.T) {
		created, err := service.CreateCategory(ctx, "Shirts")
		require.NoError(t, err)

		_, err = service.CreateCategory(ctx, "Shirts")
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		list, err := service.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)

		require.NoError(t, service.DeleteCategory(ctx, created.ID))
		assert.ErrorIs(t, service.DeleteCategory(ctx, created.ID), shared.ErrNotFound)
	})

	t.Run("sizes", func(t *testing.T) {
		_, err := service.CreateSize(ctx, "")
		assert.Error(t, err)

		created, err := service.CreateSize(ctx, "M")
		require.NoError(t, err)

		list, err := service.ListSizes(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.Name, list[0].Name)
	})

	t.Run("colors", func(t *testing.T) {
		created, err := service.CreateColor(ctx, "Black", "#000000")
		require.NoError(t, err)
		assert.Equal(t, "#000000", created.HexCode)

		list, err := service.ListColors(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Black", list[0].Name)
	})
}
