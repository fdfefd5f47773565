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

	"github.com/retail/backend/internal/domain/shared"
)

func newMockSaleRepo(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func saleRows(id uuid.UUID, returned bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at",
		"variant_id", "quantity", "sale_class",
		"total_price", "occurred_at", "returned",
	}).AddRow(
		id, time.Now(), time.Now(),
		uuid.New(), 2, "sound",
		decimal.NewFromInt(20), time.Now(), returned,
	)
}

// TestMarkReturned_CompareAndSet tests that the returned flag flip only
// matches the unreturned row and that a zero-row result is disambiguated into
// not-found vs already returned.
func TestMarkReturned_CompareAndSet(t *testing.T) {
	t.Run("flips the flag on the unreturned row", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkReturned(context.Background(), uuid.New())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already returned row loses the compare-and-set", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		id := uuid.New()

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id`).
			WillReturnRows(saleRows(id, true))

		err := repo.MarkReturned(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrAlreadyReturned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sale surfaces as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id`).
			WillReturnError(gorm.ErrRecordNotFound)

		err := repo.MarkReturned(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is passed through", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "sales" SET`).
			WillReturnError(assert.AnError)

		err := repo.MarkReturned(context.Background(), uuid.New())

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaleFindByID(t *testing.T) {
	t.Run("loads the record", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id`).
			WillReturnRows(saleRows(id, false))

		record, err := repo.FindByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, record.ID)
		assert.False(t, record.Returned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record surfaces as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTotalQuantity(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepo(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"coalesce"}).AddRow(42)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "sales"`).
		WillReturnRows(rows)

	total, err := repo.TotalQuantity(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDailyTotals_BucketsInUTC tests that day bucketing is anchored to UTC
// rather than the session time zone, so the buckets line up with the
// zero-filled window built on top of them.
func TestDailyTotals_BucketsInUTC(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepo(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"day", "total_quantity"}).
		AddRow(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 7)

	mock.ExpectQuery(`SELECT DATE\(occurred_at AT TIME ZONE 'UTC'\) AS day, SUM\(quantity\) AS total_quantity FROM "sales" .* GROUP BY DATE\(occurred_at AT TIME ZONE 'UTC'\)`).
		WillReturnRows(rows)

	since := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	totals, err := repo.DailyTotals(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 7, totals[0].TotalQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumByVariant(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepo(t)
	defer mockDB.Close()

	variantID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"variant_id", "product_id", "product_name", "product_image",
		"size_name", "color_name", "total_sold",
	}).AddRow(variantID, uuid.New(), "Plain Tee", "", "M", "Black", 9)

	mock.ExpectQuery(`SELECT .* FROM sales AS s`).
		WillReturnRows(rows)

	result, err := repo.SumByVariant(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, variantID, result[0].VariantID)
	assert.Equal(t, 9, result[0].TotalSold)
	assert.NoError(t, mock.ExpectationsWereMet())
}
