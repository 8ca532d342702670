// Package analytics contiene los casos de uso de lectura sobre las tablas normalizadas
// (tablero de gasto, ranking de proveedores, tendencias).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-etl/internal/application/dto"
	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

const (
	defaultTopLimit    = 10
	maxTopLimit        = 100
	overviewTopVendors = 5
	defaultTrendMonths = 12
	maxTrendMonths     = 36
	uncategorizedLabel = "Uncategorized"
	unknownVendorLabel = "Unknown Vendor"
)

// DashboardUseCase arma las respuestas del tablero a partir de AnalyticsRepository.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetStats gasto del año en curso, cantidad de facturas y valor promedio.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.StatsDTO, error) {
	now := uc.now().UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	s, err := uc.repo.GetSpendStats(ctx, yearStart)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stats: %w", err)
	}
	avg := decimal.Zero
	if s.TotalInvoices > 0 {
		avg = s.TotalSpend.Div(decimal.NewFromInt(s.TotalInvoices))
	}
	return &dto.StatsDTO{
		TotalSpendYTD:       s.TotalSpendYTD.Round(2),
		TotalInvoices:       s.TotalInvoices,
		DocumentsUploaded:   s.DocumentsUploaded,
		AverageInvoiceValue: avg.Round(2),
	}, nil
}

// GetTopVendors proveedores con mayor gasto.
func (uc *DashboardUseCase) GetTopVendors(ctx context.Context, limit int) ([]dto.VendorSpendDTO, error) {
	rows, err := uc.repo.GetTopVendors(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("dashboard: top vendors: %w", err)
	}
	out := make([]dto.VendorSpendDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VendorSpendDTO{VendorID: r.VendorID, VendorName: r.VendorName, Spend: r.Spend.Round(2)})
	}
	return out, nil
}

// GetOverview stats y top 5 de proveedores, consultados en paralelo.
func (uc *DashboardUseCase) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	type statsResult struct {
		stats *dto.StatsDTO
		err   error
	}
	type vendorsResult struct {
		vendors []dto.VendorSpendDTO
		err     error
	}
	statsCh := make(chan statsResult, 1)
	vendorsCh := make(chan vendorsResult, 1)

	go func() {
		s, err := uc.GetStats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		v, err := uc.GetTopVendors(ctx, overviewTopVendors)
		vendorsCh <- vendorsResult{v, err}
	}()

	stats := <-statsCh
	vendors := <-vendorsCh
	if stats.err != nil {
		return nil, stats.err
	}
	if vendors.err != nil {
		return nil, vendors.err
	}
	return &dto.OverviewDTO{Stats: *stats.stats, TopVendors: vendors.vendors}, nil
}

// GetCategorySpend gasto de líneas por cuenta contable.
func (uc *DashboardUseCase) GetCategorySpend(ctx context.Context, limit int) ([]dto.CategorySpendDTO, error) {
	rows, err := uc.repo.GetCategorySpend(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("dashboard: category spend: %w", err)
	}
	out := make([]dto.CategorySpendDTO, 0, len(rows))
	for _, r := range rows {
		category := uncategorizedLabel
		if r.Category != nil {
			category = *r.Category
		}
		out = append(out, dto.CategorySpendDTO{Category: category, Spend: r.Spend.Round(2)})
	}
	return out, nil
}

// GetInvoiceTrends totales mensuales de los últimos `months` meses (incluido el actual),
// en orden cronológico. Los meses sin facturas aparecen con cero.
func (uc *DashboardUseCase) GetInvoiceTrends(ctx context.Context, months int) ([]dto.InvoiceTrendDTO, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}
	now := uc.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := current.AddDate(0, -(months - 1), 0)
	to := current.AddDate(0, 1, 0)

	rows, err := uc.repo.GetMonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard: invoice trends: %w", err)
	}
	byMonth := make(map[time.Time]repository.MonthlyInvoiceTotals, len(rows))
	for _, r := range rows {
		m := time.Date(r.Month.Year(), r.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[m] = r
	}

	out := make([]dto.InvoiceTrendDTO, 0, months)
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		row := dto.InvoiceTrendDTO{Month: m.Format("Jan"), Year: m.Year(), TotalAmount: decimal.Zero}
		if r, ok := byMonth[m]; ok {
			row.TotalAmount = r.TotalAmount.Round(2)
			row.InvoiceCount = r.InvoiceCount
		}
		out = append(out, row)
	}
	return out, nil
}

// ListInvoices facturas recientes paginadas.
func (uc *DashboardUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListDTO, error) {
	page.DefaultPage()
	rows, total, err := uc.repo.ListRecentInvoices(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list invoices: %w", err)
	}
	items := make([]dto.InvoiceRowDTO, 0, len(rows))
	for _, r := range rows {
		vendor := unknownVendorLabel
		if r.VendorName != nil {
			vendor = *r.VendorName
		}
		items = append(items, dto.InvoiceRowDTO{
			InvoiceID:     r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			InvoiceDate:   r.InvoiceDate,
			DocumentType:  r.DocumentType,
			VendorName:    vendor,
			InvoiceTotal:  r.InvoiceTotal.Round(2),
		})
	}
	return &dto.InvoiceListDTO{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}
