package etl

import (
	"context"

	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a un mismo ámbito transaccional.
type Repositories struct {
	Vendors   repository.VendorRepository
	Customers repository.CustomerRepository
	Invoices  repository.InvoiceRepository
	Payments  repository.PaymentRepository
	LineItems repository.LineItemRepository
}

// Tx es un ámbito transaccional explícito: la transacción del lote o un savepoint anidado.
// Rollback de un ámbito anidado deshace solo lo escrito dentro de él.
type Tx interface {
	BeginNested(ctx context.Context) (Tx, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Repos() Repositories
}

// TxBeginner abre la transacción externa de un lote. El llamador es dueño de su ciclo de vida.
type TxBeginner interface {
	Begin(ctx context.Context) (Tx, error)
}
