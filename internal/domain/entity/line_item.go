package entity

import "github.com/shopspring/decimal"

// LineItem una línea de detalle de la factura (1:N con Invoice).
// TotalPrice se toma tal cual del documento; no se recalcula con Quantity × UnitPrice.
type LineItem struct {
	ID           int64
	InvoiceID    int64
	LineNo       int
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	Sachkonto    string // cuenta contable (SKR)
	BUSchluessel string // clave de impuesto DATEV
	VATRate      decimal.Decimal
	VATAmount    decimal.Decimal
}
