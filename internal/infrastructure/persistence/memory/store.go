// Package memory provides an in-process implementation of the catalog and
// inventory repositories. A single mutex-guarded store backs every
// repository, so the conditional stock adjustment and the returned-flag
// compare-and-set hold the same atomicity guarantees as the SQL
// implementations. It backs the test suites and the local development mode.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// Store holds all in-memory state. The zero value is not usable; call NewStore.
type Store struct {
	mu         sync.Mutex
	products   map[uuid.UUID]catalog.Product
	categories map[uuid.UUID]catalog.Category
	sizes      map[uuid.UUID]catalog.Size
	colors     map[uuid.UUID]catalog.Color
	variants   map[uuid.UUID]inventory.Variant
	sales      map[uuid.UUID]inventory.SaleRecord
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		products:   make(map[uuid.UUID]catalog.Product),
		categories: make(map[uuid.UUID]catalog.Category),
		sizes:      make(map[uuid.UUID]catalog.Size),
		colors:     make(map[uuid.UUID]catalog.Color),
		variants:   make(map[uuid.UUID]inventory.Variant),
		sales:      make(map[uuid.UUID]inventory.SaleRecord),
	}
}

// Variants returns a VariantRepository view of the store
func (s *Store) Variants() inventory.VariantRepository { return &variantRepo{s} }

// Sales returns a SaleRepository view of the store
func (s *Store) Sales() inventory.SaleRepository { return &saleRepo{s} }

// Products returns a ProductRepository view of the store
func (s *Store) Products() catalog.ProductRepository { return &productRepo{s} }

// Lookups returns a LookupRepository view of the store
func (s *Store) Lookups() catalog.LookupRepository { return &lookupRepo{s} }

type variantRepo struct{ s *Store }

func (r *variantRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (r *variantRepo) FindByCombination(_ context.Context, productID, sizeID, colorID uuid.UUID) (*inventory.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.ProductID == productID && v.SizeID == sizeID && v.ColorID == colorID {
			v := v
			return &v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *variantRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]inventory.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Variant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *variantRepo) FindAll(_ context.Context, filter shared.Filter) ([]inventory.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]inventory.Variant, 0, len(r.s.variants))
	for _, v := range r.s.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, filter), nil
}

func (r *variantRepo) Create(_ context.Context, variant *inventory.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.variants {
		if v.ProductID == variant.ProductID && v.SizeID == variant.SizeID && v.ColorID == variant.ColorID {
			return shared.ErrAlreadyExists
		}
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *variantRepo) Save(_ context.Context, variant *inventory.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[variant.ID]; !ok {
		return shared.ErrNotFound
	}
	r.s.variants[variant.ID] = *variant
	return nil
}

func (r *variantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.variants, id)
	return nil
}

// AdjustStock performs the check and the write under the store mutex, which
// gives the same all-or-nothing semantics as the conditional SQL UPDATE.
func (r *variantRepo) AdjustStock(_ context.Context, id uuid.UUID, class inventory.SaleClass, delta int) (*inventory.Variant, error) {
	if !class.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALE_CLASS", "Sale class must be 'sound' or 'defective'")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if v.StockFor(class)+delta < 0 {
		return nil, shared.ErrInsufficientStock
	}
	if class == inventory.SaleClassDefective {
		v.StockDefective += delta
	} else {
		v.StockSound += delta
	}
	v.UpdatedAt = time.Now()
	r.s.variants[id] = v
	return &v, nil
}

func (r *variantRepo) FindLowStock(_ context.Context, threshold, limit int) ([]inventory.LowStockView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var views []inventory.LowStockView
	for _, v := range r.s.variants {
		p, ok := r.s.products[v.ProductID]
		if !ok || p.IgnoreLowStock || v.StockSound > threshold {
			continue
		}
		views = append(views, inventory.LowStockView{
			VariantID:    v.ID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductImage: p.ImageURL,
			SizeName:     r.s.sizes[v.SizeID].Name,
			ColorName:    r.s.colors[v.ColorID].Name,
			StockSound:   v.StockSound,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].StockSound < views[j].StockSound })
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (r *variantRepo) SumStock(_ context.Context) (inventory.StockTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var totals inventory.StockTotals
	for _, v := range r.s.variants {
		totals.Sound += v.StockSound
		totals.Defective += v.StockDefective
	}
	return totals, nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Insert(_ context.Context, record *inventory.SaleRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[record.ID] = *record
	return nil
}

func (r *saleRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.SaleRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

// MarkReturned is the compare-and-set: the read of the flag and the write
// happen under the same lock, so exactly one concurrent caller wins.
func (r *saleRepo) MarkReturned(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.sales[id]
	if !ok {
		return shared.ErrNotFound
	}
	if rec.Returned {
		return shared.ErrAlreadyReturned
	}
	rec.Returned = true
	rec.UpdatedAt = time.Now()
	r.s.sales[id] = rec
	return nil
}

func (r *saleRepo) List(_ context.Context, filter inventory.SaleFilter) ([]inventory.SaleView, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []inventory.SaleRecord
	for _, rec := range r.s.sales {
		if filter.VariantID != nil && rec.VariantID != *filter.VariantID {
			continue
		}
		if filter.SaleClass != nil && rec.SaleClass != *filter.SaleClass {
			continue
		}
		if filter.Returned != nil && rec.Returned != *filter.Returned {
			continue
		}
		if filter.StartDate != nil && rec.OccurredAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rec.OccurredAt.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].OccurredAt.After(matched[j].OccurredAt) })

	total := int64(len(matched))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := filter.Offset()
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	views := make([]inventory.SaleView, len(matched))
	for i, rec := range matched {
		views[i] = r.toView(rec)
	}
	return views, total, nil
}

func (r *saleRepo) toView(rec inventory.SaleRecord) inventory.SaleView {
	view := inventory.SaleView{
		ID:         rec.ID,
		VariantID:  rec.VariantID,
		Quantity:   rec.Quantity,
		SaleClass:  rec.SaleClass,
		TotalPrice: rec.TotalPrice,
		OccurredAt: rec.OccurredAt,
		Returned:   rec.Returned,
	}
	if v, ok := r.s.variants[rec.VariantID]; ok {
		view.ProductName = r.s.products[v.ProductID].Name
		view.SizeName = r.s.sizes[v.SizeID].Name
		view.ColorName = r.s.colors[v.ColorID].Name
	}
	return view
}

func (r *saleRepo) SumByVariant(_ context.Context, limit int) ([]inventory.VariantSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sums := make(map[uuid.UUID]int)
	for _, rec := range r.s.sales {
		if rec.Returned {
			continue
		}
		if _, ok := r.s.variants[rec.VariantID]; !ok {
			continue
		}
		sums[rec.VariantID] += rec.Quantity
	}

	rows := make([]inventory.VariantSales, 0, len(sums))
	for variantID, total := range sums {
		v := r.s.variants[variantID]
		p := r.s.products[v.ProductID]
		rows = append(rows, inventory.VariantSales{
			VariantID:    variantID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductImage: p.ImageURL,
			SizeName:     r.s.sizes[v.SizeID].Name,
			ColorName:    r.s.colors[v.ColorID].Name,
			TotalSold:    total,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalSold > rows[j].TotalSold })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *saleRepo) DailyTotals(_ context.Context, since time.Time) ([]inventory.DailyTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byDay := make(map[string]int)
	for _, rec := range r.s.sales {
		if rec.Returned || rec.OccurredAt.Before(since) {
			continue
		}
		byDay[rec.OccurredAt.UTC().Format("2006-01-02")] += rec.Quantity
	}

	totals := make([]inventory.DailyTotal, 0, len(byDay))
	for day, quantity := range byDay {
		t, _ := time.Parse("2006-01-02", day)
		totals = append(totals, inventory.DailyTotal{Day: t, TotalQuantity: quantity})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Day.Before(totals[j].Day) })
	return totals, nil
}

func (r *saleRepo) TotalQuantity(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, rec := range r.s.sales {
		total += int64(rec.Quantity)
	}
	return total, nil
}

type productRepo struct{ s *Store }

func (r *productRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, filter), nil
}

func (r *productRepo) Save(_ context.Context, product *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

// Delete removes the product and cascades to its variants, matching the
// foreign key behavior of the SQL schema.
func (r *productRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.products, id)
	for variantID, v := range r.s.variants {
		if v.ProductID == id {
			delete(r.s.variants, variantID)
		}
	}
	return nil
}

func (r *productRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

type lookupRepo struct{ s *Store }

func (r *lookupRepo) FindCategories(_ context.Context) ([]catalog.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]catalog.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *lookupRepo) FindSizes(_ context.Context) ([]catalog.Size, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]catalog.Size, 0, len(r.s.sizes))
	for _, sz := range r.s.sizes {
		out = append(out, sz)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *lookupRepo) FindColors(_ context.Context) ([]catalog.Color, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]catalog.Color, 0, len(r.s.colors))
	for _, c := range r.s.colors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *lookupRepo) SaveCategory(_ context.Context, category *catalog.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.categories {
		if c.Name == category.Name && id != category.ID {
			return shared.ErrAlreadyExists
		}
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *lookupRepo) SaveSize(_ context.Context, size *catalog.Size) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, sz := range r.s.sizes {
		if sz.Name == size.Name && id != size.ID {
			return shared.ErrAlreadyExists
		}
	}
	r.s.sizes[size.ID] = *size
	return nil
}

func (r *lookupRepo) SaveColor(_ context.Context, color *catalog.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.colors {
		if c.Name == color.Name && id != color.ID {
			return shared.ErrAlreadyExists
		}
	}
	r.s.colors[color.ID] = *color
	return nil
}

func (r *lookupRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *lookupRepo) DeleteSize(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sizes[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.sizes, id)
	return nil
}

func (r *lookupRepo) DeleteColor(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.colors[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.colors, id)
	return nil
}

func paginate[T any](items []T, filter shared.Filter) []T {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		return items
	}
	start := filter.Offset()
	if start > len(items) {
		return nil
	}
	end := start + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Interface assertions
var (
	_ inventory.VariantRepository = (*variantRepo)(nil)
	_ inventory.SaleRepository    = (*saleRepo)(nil)
	_ catalog.ProductRepository   = (*productRepo)(nil)
	_ catalog.LookupRepository    = (*lookupRepo)(nil)
)
