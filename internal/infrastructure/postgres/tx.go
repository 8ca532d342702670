package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invoice-etl/internal/application/etl"
)

var (
	_ etl.TxBeginner = (*TxManager)(nil)
	_ etl.Tx         = (*Tx)(nil)
)

// TxManager abre transacciones de lote sobre el pool.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager construye el manager con el pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin inicia la transacción externa del lote.
func (m *TxManager) Begin(ctx context.Context) (etl.Tx, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx adapta pgx.Tx a etl.Tx. Sobre una pgx.Tx, Begin emite SAVEPOINT, Commit emite
// RELEASE SAVEPOINT y Rollback emite ROLLBACK TO SAVEPOINT.
type Tx struct {
	tx pgx.Tx
}

// BeginNested abre un savepoint dentro de la transacción actual.
func (t *Tx) BeginNested(ctx context.Context) (etl.Tx, error) {
	nested, err := t.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("savepoint: %w", err)
	}
	return &Tx{tx: nested}, nil
}

// Commit confirma la transacción o libera el savepoint.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback revierte la transacción o vuelve al savepoint.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Repos devuelve repositorios atados a esta transacción.
func (t *Tx) Repos() etl.Repositories {
	return etl.Repositories{
		Vendors:   NewVendorRepository(t.tx),
		Customers: NewCustomerRepository(t.tx),
		Invoices:  NewInvoiceRepository(t.tx),
		Payments:  NewPaymentRepository(t.tx),
		LineItems: NewLineItemRepository(t.tx),
	}
}
