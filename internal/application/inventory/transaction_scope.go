package inventory

import (
	"context"

	"github.com/retail/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. Both repositories share the same underlying database
// transaction, which is what makes the stock adjustment and the ledger write
// of one operation an all-or-nothing unit.
type TransactionalRepositories interface {
	// Variants returns the variant repository scoped to the current transaction
	Variants() inventory.VariantRepository
	// Sales returns the sale ledger repository scoped to the current transaction
	Sales() inventory.SaleRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. It is used with storage backends whose repository operations
// are individually atomic (the in-memory store) and in tests.
type NoOpTransactionScope struct {
	variants inventory.VariantRepository
	sales    inventory.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(variants inventory.VariantRepository, sales inventory.SaleRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{variants: variants, sales: sales}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Variants returns the variant repository.
func (s *NoOpTransactionScope) Variants() inventory.VariantRepository {
	return s.variants
}

// Sales returns the sale ledger repository.
func (s *NoOpTransactionScope) Sales() inventory.SaleRepository {
	return s.sales
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
