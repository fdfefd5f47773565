package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// newMockVariantRepo creates a repository backed by sqlmock
func newMockVariantRepo(t *testing.T) (*GormVariantRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormVariantRepository(gormDB), mock, mockDB
}

func variantRows(id uuid.UUID, stockSound, stockDefective int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at",
		"product_id", "size_id", "color_id",
		"stock_sound", "stock_defective", "price", "image_url",
	}).AddRow(
		id, time.Now(), time.Now(),
		uuid.New(), uuid.New(), uuid.New(),
		stockSound, stockDefective, decimal.NewFromInt(10), "",
	)
}

// TestAdjustStock_ConditionalUpdate tests that the stock adjustment is a
// single conditional UPDATE and that a zero-row result is disambiguated into
// not-found vs insufficient stock.
func TestAdjustStock_ConditionalUpdate(t *testing.T) {
	t.Run("successful decrement reloads the variant", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		id := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id`).
			WillReturnRows(variantRows(id, 7, 1))

		variant, err := repo.AdjustStock(context.Background(), id, inventory.SaleClassSound, -3)

		require.NoError(t, err)
		assert.Equal(t, 7, variant.StockSound)
		assert.Equal(t, 1, variant.StockDefective)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard rejection surfaces as insufficient stock", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		id := uuid.New()

		// Zero rows affected, but the variant exists
		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id`).
			WillReturnRows(variantRows(id, 2, 0))

		_, err := repo.AdjustStock(context.Background(), id, inventory.SaleClassSound, -5)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown variant surfaces as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.AdjustStock(context.Background(), uuid.New(), inventory.SaleClassSound, -1)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid class fails before touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		_, err := repo.AdjustStock(context.Background(), uuid.New(), inventory.SaleClass("other"), -1)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("positive delta restores stock", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		id := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id`).
			WillReturnRows(variantRows(id, 0, 4))

		variant, err := repo.AdjustStock(context.Background(), id, inventory.SaleClassDefective, 3)

		require.NoError(t, err)
		assert.Equal(t, 4, variant.StockDefective)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVariantSave(t *testing.T) {
	t.Run("updates the editable columns", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		variant, err := inventory.NewVariant(uuid.New(), uuid.New(), uuid.New(), 5, 0, decimal.NewFromInt(10))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(context.Background(), variant))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected means the variant is gone", func(t *testing.T) {
		repo, mock, mockDB := newMockVariantRepo(t)
		defer mockDB.Close()

		variant, err := inventory.NewVariant(uuid.New(), uuid.New(), uuid.New(), 5, 0, decimal.NewFromInt(10))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "product_variants" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Save(context.Background(), variant), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindLowStock(t *testing.T) {
	repo, mock, mockDB := newMockVariantRepo(t)
	defer mockDB.Close()

	variantID := uuid.New()
	productID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"variant_id", "product_id", "product_name", "product_image",
		"size_name", "color_name", "stock_sound",
	}).AddRow(variantID, productID, "Plain Tee", "", "M", "Black", 0)

	mock.ExpectQuery(`SELECT .* FROM product_variants AS v`).
		WillReturnRows(rows)

	views, err := repo.FindLowStock(context.Background(), 1, 5)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, variantID, views[0].VariantID)
	assert.Equal(t, "Plain Tee", views[0].ProductName)
	assert.Equal(t, 0, views[0].StockSound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumStock(t *testing.T) {
	repo, mock, mockDB := newMockVariantRepo(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"sound", "defective"}).AddRow(12, 3)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(stock_sound\), 0\)`).
		WillReturnRows(rows)

	totals, err := repo.SumStock(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, totals.Sound)
	assert.Equal(t, 3, totals.Defective)
	assert.Equal(t, 15, totals.Total())
	assert.NoError(t, mock.ExpectationsWereMet())
}
