package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
)

// SalesService is the inventory transaction engine. RecordSale and
// ProcessReturn are the only operations that mutate the stock counters and
// the sale ledger together, each as one atomic unit executed through the
// transaction scope. There is no in-process locking: correctness under
// concurrent callers rests on the storage-level conditional decrement and on
// the compare-and-set of the returned flag.
type SalesService struct {
	scope  TransactionScope
	sales  inventory.SaleRepository
	logger *zap.Logger
}

// NewSalesService creates a new SalesService. The sales repository is the
// non-transactional read path used for ledger listing; all writes go through
// the scope.
func NewSalesService(scope TransactionScope, sales inventory.SaleRepository, logger *zap.Logger) *SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesService{scope: scope, sales: sales, logger: logger}
}

// RecordSale validates the request, conditionally decrements the requested
// stock class and appends the sale event, all inside one transaction. When
// the decrement reports insufficient stock the whole operation aborts and no
// ledger record is written; when the ledger insert fails the decrement rolls
// back with the transaction.
func (s *SalesService) RecordSale(ctx context.Context, req RecordSaleRequest) (*SaleResult, error) {
	if req.VariantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	class, err := inventory.ParseSaleClass(req.SaleClass)
	if err != nil {
		return nil, err
	}

	var result *SaleResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		variant, err := repos.Variants().AdjustStock(ctx, req.VariantID, class, -req.Quantity)
		if err != nil {
			return err
		}

		record, err := inventory.NewSaleRecord(variant.ID, req.Quantity, class, variant.Price)
		if err != nil {
			return err
		}
		if err := repos.Sales().Insert(ctx, record); err != nil {
			return err
		}

		result = &SaleResult{
			SaleID:         record.ID,
			VariantID:      variant.ID,
			Quantity:       record.Quantity,
			SaleClass:      class.String(),
			TotalPrice:     record.TotalPrice,
			StockSound:     variant.StockSound,
			StockDefective: variant.StockDefective,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", result.SaleID.String()),
		zap.String("variant_id", result.VariantID.String()),
		zap.Int("quantity", result.Quantity),
		zap.String("sale_class", result.SaleClass),
	)
	return result, nil
}

// ProcessReturn reverses a previously recorded sale exactly once: it flips
// the returned flag via the ledger's compare-and-set and restores the sold
// quantity to the same stock class it was debited from, both in one
// transaction. A race between two returns of the same sale resolves at the
// compare-and-set, so exactly one caller succeeds and the rest observe
// ErrAlreadyReturned regardless of what their initial read saw.
func (s *SalesService) ProcessReturn(ctx context.Context, saleID uuid.UUID) (*SaleResult, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}

	var result *SaleResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if record.IsReturned() {
			return shared.ErrAlreadyReturned
		}

		// The CAS is the sole source of exclusivity; the read above only
		// supplies variant id, class and quantity for the restore.
		if err := repos.Sales().MarkReturned(ctx, saleID); err != nil {
			return err
		}
		variant, err := repos.Variants().AdjustStock(ctx, record.VariantID, record.SaleClass, record.Quantity)
		if err != nil {
			return err
		}

		result = &SaleResult{
			SaleID:         record.ID,
			VariantID:      variant.ID,
			Quantity:       record.Quantity,
			SaleClass:      record.SaleClass.String(),
			TotalPrice:     record.TotalPrice,
			StockSound:     variant.StockSound,
			StockDefective: variant.StockDefective,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale returned",
		zap.String("sale_id", result.SaleID.String()),
		zap.String("variant_id", result.VariantID.String()),
		zap.Int("quantity", result.Quantity),
	)
	return result, nil
}

// ListSales returns denormalized ledger rows matching the filter, newest
// first, with the total match count for pagination.
func (s *SalesService) ListSales(ctx context.Context, filter inventory.SaleFilter) ([]SaleListItem, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	views, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleListItems(views), total, nil
}
