package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento soportados.
const (
	DocumentTypeInvoice    = "invoice"
	DocumentTypeCreditNote = "creditNote"
)

// DefaultCurrencySymbol se usa cuando el resumen no trae símbolo de moneda.
const DefaultCurrencySymbol = "€"

// Invoice representa la cabecera de una factura o nota crédito.
// Clave natural: (Number, VendorID). CustomerID es opcional.
type Invoice struct {
	ID             int64
	Number         string
	InvoiceDate    *time.Time
	DeliveryDate   *time.Time
	DocumentType   string
	CurrencySymbol string
	Subtotal       decimal.Decimal
	TotalTax       decimal.Decimal
	InvoiceTotal   decimal.Decimal
	VendorID       int64
	CustomerID     *int64
}

// NormalizeDocumentType devuelve "creditNote" solo si t coincide exactamente; cualquier otro
// valor se trata como "invoice".
func NormalizeDocumentType(t string) string {
	if t == DocumentTypeCreditNote {
		return DocumentTypeCreditNote
	}
	return DocumentTypeInvoice
}
