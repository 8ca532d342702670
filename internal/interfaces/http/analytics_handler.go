package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-etl/internal/application/dto"
)

// DashboardReader lo que consumen los handlers de analítica.
// Lo implementa *analytics.DashboardUseCase.
type DashboardReader interface {
	GetStats(ctx context.Context) (*dto.StatsDTO, error)
	GetOverview(ctx context.Context) (*dto.OverviewDTO, error)
	GetTopVendors(ctx context.Context, limit int) ([]dto.VendorSpendDTO, error)
	GetCategorySpend(ctx context.Context, limit int) ([]dto.CategorySpendDTO, error)
	GetInvoiceTrends(ctx context.Context, months int) ([]dto.InvoiceTrendDTO, error)
	ListInvoices(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListDTO, error)
}

// AnalyticsHandler maneja los endpoints de lectura sobre las tablas normalizadas.
type AnalyticsHandler struct {
	uc DashboardReader
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc DashboardReader) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetStats GET /api/stats
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(stats)
}

// GetOverview GET /api/overview
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.uc.GetOverview(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(overview)
}

// GetTopVendors GET /api/vendors/top?limit=
func (h *AnalyticsHandler) GetTopVendors(c *fiber.Ctx) error {
	vendors, err := h.uc.GetTopVendors(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(vendors)
}

// GetCategorySpend GET /api/categories/spend?limit=
func (h *AnalyticsHandler) GetCategorySpend(c *fiber.Ctx) error {
	categories, err := h.uc.GetCategorySpend(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(categories)
}

// GetInvoiceTrends GET /api/invoices/trends?months=
func (h *AnalyticsHandler) GetInvoiceTrends(c *fiber.Ctx) error {
	trends, err := h.uc.GetInvoiceTrends(c.Context(), c.QueryInt("months", 0))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(trends)
}

// ListInvoices GET /api/invoices?limit=&offset=
func (h *AnalyticsHandler) ListInvoices(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	list, err := h.uc.ListInvoices(c.Context(), page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
