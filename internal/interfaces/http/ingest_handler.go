package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-etl/internal/application/dto"
	"github.com/jhoicas/invoice-etl/internal/application/etl"
	"github.com/jhoicas/invoice-etl/internal/domain"
)

// IngestRunner lo implementa *etl.Runner.
type IngestRunner interface {
	Run(ctx context.Context) (*etl.RunReport, error)
	LastReport() *etl.RunReport
}

// IngestHandler dispara corridas de ingesta sobre la carpeta configurada.
type IngestHandler struct {
	runner IngestRunner
}

// NewIngestHandler construye el handler.
func NewIngestHandler(runner IngestRunner) *IngestHandler {
	return &IngestHandler{runner: runner}
}

// Run POST /api/ingest
//
// 200 con el reporte si la corrida terminó, 409 si ya hay otra en curso,
// 404 si la carpeta no tiene archivos y 503 si falló el almacenamiento.
func (h *IngestHandler) Run(c *fiber.Ctx) error {
	report, err := h.runner.Run(c.UserContext())
	switch {
	case err == nil:
		return c.JSON(report)
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INGEST_RUNNING", Message: err.Error()})
	case errors.Is(err, domain.ErrNoSourceFiles):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SOURCE_FILES", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: err.Error()})
	default:
		return internalError(c, err)
	}
}

// Last GET /api/ingest/last
func (h *IngestHandler) Last(c *fiber.Ctx) error {
	report := h.runner.LastReport()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay corridas registradas"})
	}
	return c.JSON(report)
}
