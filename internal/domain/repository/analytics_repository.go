package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SpendStats cifras globales del tablero.
type SpendStats struct {
	TotalSpendYTD     decimal.Decimal
	TotalInvoices     int64
	DocumentsUploaded int64 // facturas con document_type no vacío
	TotalSpend        decimal.Decimal
}

// VendorSpend gasto acumulado por proveedor.
type VendorSpend struct {
	VendorID   int64
	VendorName *string
	Spend      decimal.Decimal
}

// CategorySpend gasto de líneas agrupado por cuenta contable (sachkonto).
type CategorySpend struct {
	Category *string
	Spend    decimal.Decimal
}

// MonthlyInvoiceTotals suma y cantidad de facturas de un mes (Month = día 1 del mes, UTC).
type MonthlyInvoiceTotals struct {
	Month        time.Time
	TotalAmount  decimal.Decimal
	InvoiceCount int64
}

// InvoiceSummary fila del listado de facturas recientes.
type InvoiceSummary struct {
	InvoiceID     int64
	InvoiceNumber string
	InvoiceDate   *time.Time
	DocumentType  string
	VendorName    *string
	InvoiceTotal  decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre las tablas normalizadas.
type AnalyticsRepository interface {
	GetSpendStats(ctx context.Context, yearStart time.Time) (SpendStats, error)
	GetTopVendors(ctx context.Context, limit int) ([]VendorSpend, error)
	GetCategorySpend(ctx context.Context, limit int) ([]CategorySpend, error)
	// GetMonthlyTotals agrupa facturas con invoice_date en [from, to) por mes.
	GetMonthlyTotals(ctx context.Context, from, to time.Time) ([]MonthlyInvoiceTotals, error)
	ListRecentInvoices(ctx context.Context, limit, offset int) ([]InvoiceSummary, int64, error)
}
