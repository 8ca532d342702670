package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsDTO cifras de las tarjetas del tablero.
type StatsDTO struct {
	TotalSpendYTD       decimal.Decimal `json:"total_spend_ytd"`
	TotalInvoices       int64           `json:"total_invoices"`
	DocumentsUploaded   int64           `json:"documents_uploaded"`
	AverageInvoiceValue decimal.Decimal `json:"average_invoice_value"`
}

// VendorSpendDTO gasto por proveedor.
type VendorSpendDTO struct {
	VendorID   int64           `json:"vendor_id"`
	VendorName *string         `json:"vendor_name"`
	Spend      decimal.Decimal `json:"spend"`
}

// CategorySpendDTO gasto por cuenta contable; "Uncategorized" si la línea no tiene cuenta.
type CategorySpendDTO struct {
	Category string          `json:"category"`
	Spend    decimal.Decimal `json:"spend"`
}

// InvoiceTrendDTO totales de un mes.
type InvoiceTrendDTO struct {
	Month        string          `json:"month"` // "Jan", "Feb", ...
	Year         int             `json:"year"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceCount int64           `json:"invoice_count"`
}

// InvoiceRowDTO fila del listado de facturas.
type InvoiceRowDTO struct {
	InvoiceID     int64           `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   *time.Time      `json:"invoice_date"`
	DocumentType  string          `json:"document_type"`
	VendorName    string          `json:"vendor_name"`
	InvoiceTotal  decimal.Decimal `json:"invoice_total"`
}

// InvoiceListDTO página de facturas.
type InvoiceListDTO struct {
	Items []InvoiceRowDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OverviewDTO cifras globales y ranking corto de proveedores.
type OverviewDTO struct {
	Stats      StatsDTO         `json:"stats"`
	TopVendors []VendorSpendDTO `json:"top_vendors"`
}
