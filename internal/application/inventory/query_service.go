package inventory

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

const (
	// DefaultLowStockThreshold matches the dashboard's "critical stock" cutoff
	DefaultLowStockThreshold = 1
	// DefaultRankingLimit bounds the dashboard low-stock and best-seller lists
	DefaultRankingLimit = 5
	// DefaultTrendWindowDays is the trailing window of the sales trend chart
	DefaultTrendWindowDays = 30

	dashboardCacheKey = "dashboard:stats"
)

// StatsCache caches serialized dashboard stats. Implementations live in
// infrastructure/cache (redis-backed with an in-memory fallback).
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// QueryDefaults holds the operator-configurable parameters of the derived
// views, typically sourced from config.InventoryConfig.
type QueryDefaults struct {
	LowStockThreshold int
	RankingLimit      int
	TrendWindowDays   int
}

// normalize fills unset values with the built-in defaults
func (d QueryDefaults) normalize() QueryDefaults {
	if d.LowStockThreshold <= 0 {
		d.LowStockThreshold = DefaultLowStockThreshold
	}
	if d.RankingLimit <= 0 {
		d.RankingLimit = DefaultRankingLimit
	}
	if d.TrendWindowDays <= 0 {
		d.TrendWindowDays = DefaultTrendWindowDays
	}
	return d
}

// QueryService serves the read-only derived views: low-stock alerts,
// best-seller ranking, the trailing sales trend and the composed dashboard.
// It never mutates; reads may be slightly stale relative to in-flight
// transactions but always see committed, consistent state.
type QueryService struct {
	variants inventory.VariantRepository
	sales    inventory.SaleRepository
	products catalog.ProductRepository
	cache    StatsCache
	cacheTTL time.Duration
	defaults QueryDefaults
	logger   *zap.Logger
	clock    func() time.Time
}

// NewQueryService creates a new QueryService. cache may be nil to disable
// dashboard caching.
func NewQueryService(
	variants inventory.VariantRepository,
	sales inventory.SaleRepository,
	products catalog.ProductRepository,
	cache StatsCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		variants: variants,
		sales:    sales,
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
		defaults: QueryDefaults{}.normalize(),
		logger:   logger,
		clock:    time.Now,
	}
}

// WithDefaults overrides the view parameters with the configured values.
// Unset (zero) fields keep the built-in defaults.
func (s *QueryService) WithDefaults(d QueryDefaults) *QueryService {
	s.defaults = d.normalize()
	return s
}

// Defaults exposes the effective view parameters, so the HTTP layer can
// apply the configured low-stock threshold when the query omits one.
func (s *QueryService) Defaults() QueryDefaults {
	return s.defaults
}

// WithClock overrides the time source. Used by tests to pin "today" for the
// trend window.
func (s *QueryService) WithClock(clock func() time.Time) *QueryService {
	s.clock = clock
	return s
}

// LowStock lists variants with stock_sound at or below threshold, ascending,
// excluding variants of products flagged ignore_low_stock, truncated to limit.
func (s *QueryService) LowStock(ctx context.Context, threshold, limit int) ([]LowStockItem, error) {
	if threshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	if limit <= 0 {
		limit = s.defaults.RankingLimit
	}

	views, err := s.variants.FindLowStock(ctx, threshold, limit)
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, len(views))
	for i, v := range views {
		items[i] = LowStockItem{
			VariantID:    v.VariantID,
			ProductID:    v.ProductID,
			ProductName:  v.ProductName,
			ProductImage: v.ProductImage,
			SizeName:     v.SizeName,
			ColorName:    v.ColorName,
			StockSound:   v.StockSound,
		}
	}
	return items, nil
}

// BestSellers ranks variants by total quantity over unreturned sales,
// descending, truncated to limit. Returned sales never count.
func (s *QueryService) BestSellers(ctx context.Context, limit int) ([]BestSellerItem, error) {
	if limit <= 0 {
		limit = s.defaults.RankingLimit
	}

	rows, err := s.sales.SumByVariant(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]BestSellerItem, len(rows))
	for i, r := range rows {
		items[i] = BestSellerItem{
			VariantID:    r.VariantID,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			ProductImage: r.ProductImage,
			SizeName:     r.SizeName,
			ColorName:    r.ColorName,
			TotalSold:    r.TotalSold,
		}
	}
	return items, nil
}

// DailySalesTrend produces a dense, date-ascending series covering exactly
// the trailing windowDays calendar days ending today, built from unreturned
// sales only. Days without sales carry a zero.
func (s *QueryService) DailySalesTrend(ctx context.Context, windowDays int) ([]TrendPoint, error) {
	if windowDays <= 0 {
		windowDays = s.defaults.TrendWindowDays
	}

	today := s.clock().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(windowDays - 1))

	totals, err := s.sales.DailyTotals(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int, len(totals))
	for _, t := range totals {
		byDay[t.Day.UTC().Format("2006-01-02")] = t.TotalQuantity
	}

	points := make([]TrendPoint, windowDays)
	for i := 0; i < windowDays; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		points[i] = TrendPoint{Date: day, TotalQuantity: byDay[day]}
	}
	return points, nil
}

// DashboardStats composes the dashboard numbers: catalog and stock totals,
// the all-time sold quantity, and the three derived views with the configured
// parameters. Results are cached briefly; the dashboard tolerates slightly
// stale reads.
func (s *QueryService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
			var cached DashboardStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry, drop it and rebuild
			_ = s.cache.Delete(ctx, dashboardCacheKey)
		}
	}

	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	stockTotals, err := s.variants.SumStock(ctx)
	if err != nil {
		return nil, err
	}
	salesQuantity, err := s.sales.TotalQuantity(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.LowStock(ctx, s.defaults.LowStockThreshold, s.defaults.RankingLimit)
	if err != nil {
		return nil, err
	}
	bestSellers, err := s.BestSellers(ctx, s.defaults.RankingLimit)
	if err != nil {
		return nil, err
	}
	trend, err := s.DailySalesTrend(ctx, s.defaults.TrendWindowDays)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalUniqueProducts: productCount,
		TotalProductStock:   stockTotals.Total(),
		TotalSoundStock:     stockTotals.Sound,
		TotalDefectiveStock: stockTotals.Defective,
		TotalSalesQuantity:  salesQuantity,
		LowStockItems:       lowStock,
		BestSellingItems:    bestSellers,
		DailySalesData:      trend,
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}
