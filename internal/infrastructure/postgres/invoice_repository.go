package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository  = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository  = (*PaymentRepo)(nil)
	_ repository.LineItemRepository = (*LineItemRepo)(nil)
)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// InsertIfAbsent persiste la cabecera. Si (invoice_number, vendor_id) ya existe no hay
// RETURNING y se devuelve created=false.
func (r *InvoiceRepo) InsertIfAbsent(ctx context.Context, invoice *entity.Invoice) (bool, error) {
	const query = `
		INSERT INTO invoices (
			invoice_number, invoice_date, delivery_date, document_type,
			currency_symbol, subtotal, total_tax, invoice_total,
			vendor_id, customer_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (invoice_number, vendor_id) DO NOTHING
		RETURNING invoice_id`
	err := r.q.QueryRow(ctx, query,
		invoice.Number, invoice.InvoiceDate, invoice.DeliveryDate, invoice.DocumentType,
		invoice.CurrencySymbol, invoice.Subtotal, invoice.TotalTax, invoice.InvoiceTotal,
		invoice.VendorID, invoice.CustomerID,
	).Scan(&invoice.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, fmt.Errorf("insert invoice: constraint %q: %w", constraintName(err), err)
		}
		return false, fmt.Errorf("insert invoice: %w", err)
	}
	return true, nil
}

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el pago de una factura.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	const query = `
		INSERT INTO payments (
			invoice_id, due_date, payment_terms, bank_account_number,
			bic, account_name, net_days, discount_percentage,
			discount_days, discount_due_date, discounted_total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING payment_id`
	err := r.q.QueryRow(ctx, query,
		p.InvoiceID, p.DueDate, p.PaymentTerms, p.BankAccountNumber,
		p.BIC, p.AccountName, p.NetDays, p.DiscountPercentage,
		p.DiscountDays, p.DiscountDueDate, p.DiscountedTotal,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// LineItemRepo implementación de LineItemRepository (usable con pool o tx).
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador.
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

// Create persiste una línea de detalle.
func (r *LineItemRepo) Create(ctx context.Context, item *entity.LineItem) error {
	const query = `
		INSERT INTO invoice_line_items (
			invoice_id, line_no, description, quantity,
			unit_price, total_price, sachkonto, bu_schluessel,
			vat_rate, vat_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING line_item_id`
	err := r.q.QueryRow(ctx, query,
		item.InvoiceID, item.LineNo, item.Description, item.Quantity,
		item.UnitPrice, item.TotalPrice, item.Sachkonto, item.BUSchluessel,
		item.VATRate, item.VATAmount,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}
