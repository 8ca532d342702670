package repository

import (
	"context"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para la cabecera de factura.
type InvoiceRepository interface {
	// InsertIfAbsent inserta la factura; si (invoice_number, vendor_id) ya existe no hace nada
	// y devuelve created=false sin error.
	InsertIfAbsent(ctx context.Context, invoice *entity.Invoice) (created bool, err error)
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	// Create inserta el pago. No hay control de duplicados por factura.
	Create(ctx context.Context, payment *entity.Payment) error
}

// LineItemRepository define el puerto de persistencia para las líneas de factura.
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
}
