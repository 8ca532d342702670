package etl

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/invoice-etl/internal/domain"
)

// Runner serializa corridas de ingesta disparadas desde fuera del CLI (HTTP).
// Una segunda corrida mientras otra está en curso se rechaza con domain.ErrConflict.
type Runner struct {
	mu         sync.Mutex
	ingestor   *Ingestor
	sourcePath string
	last       *RunReport
	lastMu     sync.RWMutex
}

// NewRunner construye el runner sobre la carpeta configurada.
func NewRunner(ingestor *Ingestor, sourcePath string) *Runner {
	return &Runner{ingestor: ingestor, sourcePath: sourcePath}
}

// Run ejecuta una corrida completa si no hay otra activa.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	if !r.mu.TryLock() {
		return nil, fmt.Errorf("%w: ya hay una ingesta en curso", domain.ErrConflict)
	}
	defer r.mu.Unlock()

	report, err := r.ingestor.Ingest(ctx, r.sourcePath)
	if report != nil {
		r.lastMu.Lock()
		r.last = report
		r.lastMu.Unlock()
	}
	return report, err
}

// LastReport devuelve el reporte de la última corrida terminada, o nil.
func (r *Runner) LastReport() *RunReport {
	r.lastMu.RLock()
	defer r.lastMu.RUnlock()
	return r.last
}
