package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre las tablas que llena la ingesta.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSpendStats cifras globales: gasto desde yearStart, cantidad de facturas, documentos con
// tipo informado y gasto total (para el promedio).
func (r *AnalyticsRepo) GetSpendStats(ctx context.Context, yearStart time.Time) (repository.SpendStats, error) {
	const query = `
	SELECT
	    COALESCE(SUM(invoice_total) FILTER (WHERE invoice_date >= $1), 0) AS spend_ytd,
	    COUNT(*)                                                          AS total_invoices,
	    COUNT(*) FILTER (WHERE document_type <> '')                       AS documents,
	    COALESCE(SUM(invoice_total), 0)                                   AS total_spend
	FROM invoices`

	var s repository.SpendStats
	err := r.pool.QueryRow(ctx, query, yearStart).
		Scan(&s.TotalSpendYTD, &s.TotalInvoices, &s.DocumentsUploaded, &s.TotalSpend)
	if err != nil {
		return s, fmt.Errorf("analytics.GetSpendStats: %w", err)
	}
	return s, nil
}

// GetTopVendors proveedores ordenados por gasto total de sus facturas.
func (r *AnalyticsRepo) GetTopVendors(ctx context.Context, limit int) ([]repository.VendorSpend, error) {
	const query = `
	SELECT i.vendor_id,
	       v.vendor_name,
	       COALESCE(SUM(i.invoice_total), 0) AS spend
	FROM invoices i
	LEFT JOIN vendors v ON v.vendor_id = i.vendor_id
	GROUP BY i.vendor_id, v.vendor_name
	ORDER BY spend DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopVendors: %w", err)
	}
	defer rows.Close()

	var results []repository.VendorSpend
	for rows.Next() {
		var row repository.VendorSpend
		if err := rows.Scan(&row.VendorID, &row.VendorName, &row.Spend); err != nil {
			return nil, fmt.Errorf("analytics.GetTopVendors scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetCategorySpend suma total_price por cuenta contable. El marcador "-" de la ingesta y los
// vacíos se devuelven como NULL.
func (r *AnalyticsRepo) GetCategorySpend(ctx context.Context, limit int) ([]repository.CategorySpend, error) {
	const query = `
	SELECT NULLIF(NULLIF(TRIM(sachkonto), ''), '-') AS category,
	       COALESCE(SUM(total_price), 0)            AS spend
	FROM invoice_line_items
	GROUP BY 1
	ORDER BY spend DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCategorySpend: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySpend
	for rows.Next() {
		var row repository.CategorySpend
		if err := rows.Scan(&row.Category, &row.Spend); err != nil {
			return nil, fmt.Errorf("analytics.GetCategorySpend scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyTotals suma y cuenta facturas por mes de invoice_date en [from, to).
// Los meses sin facturas no aparecen; el caso de uso los completa con cero.
func (r *AnalyticsRepo) GetMonthlyTotals(ctx context.Context, from, to time.Time) ([]repository.MonthlyInvoiceTotals, error) {
	const query = `
	SELECT date_trunc('month', invoice_date)::date AS month,
	       COALESCE(SUM(invoice_total), 0)         AS total_amount,
	       COUNT(*)                                AS invoice_count
	FROM invoices
	WHERE invoice_date >= $1 AND invoice_date < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyInvoiceTotals
	for rows.Next() {
		var row repository.MonthlyInvoiceTotals
		if err := rows.Scan(&row.Month, &row.TotalAmount, &row.InvoiceCount); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListRecentInvoices facturas más recientes con el nombre del proveedor y el total de filas.
// El total no depende de offset: una página fuera de rango devuelve cero filas y el total real.
func (r *AnalyticsRepo) ListRecentInvoices(ctx context.Context, limit, offset int) ([]repository.InvoiceSummary, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("analytics.ListRecentInvoices count: %w", err)
	}

	const query = `
	SELECT i.invoice_id,
	       i.invoice_number,
	       i.invoice_date,
	       i.document_type,
	       v.vendor_name,
	       i.invoice_total
	FROM invoices i
	LEFT JOIN vendors v ON v.vendor_id = i.vendor_id
	ORDER BY i.invoice_date DESC NULLS LAST, i.invoice_id DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analytics.ListRecentInvoices: %w", err)
	}
	defer rows.Close()

	var results []repository.InvoiceSummary
	for rows.Next() {
		var row repository.InvoiceSummary
		if err := rows.Scan(
			&row.InvoiceID,
			&row.InvoiceNumber,
			&row.InvoiceDate,
			&row.DocumentType,
			&row.VendorName,
			&row.InvoiceTotal,
		); err != nil {
			return nil, 0, fmt.Errorf("analytics.ListRecentInvoices scan: %w", err)
		}
		results = append(results, row)
	}
	return results, total, rows.Err()
}
