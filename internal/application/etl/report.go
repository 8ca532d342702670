package etl

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunReport contadores agregados de una corrida de ingesta. Lo crea Ingest y lo devuelve
// al final; no existe estado global compartido entre corridas.
//
// VendorsTouched cuenta cada upsert de proveedor que devolvió id, sea inserción o
// actualización de la dirección.
type RunReport struct {
	RunID             string    `json:"run_id"`
	Source            string    `json:"source"`
	DryRun            bool      `json:"dry_run"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	FilesScanned      int       `json:"files_scanned"`
	FilesSkipped      int       `json:"files_skipped"`
	RecordsSeen       int       `json:"records_seen"`
	VendorsTouched    int       `json:"vendors_touched"`
	CustomersCreated  int       `json:"customers_created"`
	InvoicesCreated   int       `json:"invoices_created"`
	DuplicatesSkipped int       `json:"duplicates_skipped"`
	PaymentsCreated   int       `json:"payments_created"`
	LineItemsCreated  int       `json:"line_items_created"`
	RecordsFailed     int       `json:"records_failed"`
}

// NewRunReport inicia un reporte vacío para la fuente indicada.
func NewRunReport(source string, dryRun bool) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		Source:    source,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}
}

// Add suma el resultado de un registro ya confirmado.
func (r *RunReport) Add(res Result) {
	r.VendorsTouched += res.Counts.Vendors
	r.CustomersCreated += res.Counts.Customers
	r.InvoicesCreated += res.Counts.Invoices
	r.PaymentsCreated += res.Counts.Payments
	r.LineItemsCreated += res.Counts.LineItems
	if res.Outcome == OutcomeDuplicate {
		r.DuplicatesSkipped++
	}
}

// Fail registra un registro revertido.
func (r *RunReport) Fail() {
	r.RecordsFailed++
}

// Finish fija la hora de finalización.
func (r *RunReport) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Duration tiempo total de la corrida.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary texto legible para la salida del proceso.
func (r *RunReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ETL summary (run %s)\n", r.RunID)
	if r.DryRun {
		b.WriteString("  mode:               dry run (rolled back)\n")
	}
	fmt.Fprintf(&b, "  files scanned:      %d\n", r.FilesScanned)
	fmt.Fprintf(&b, "  files skipped:      %d\n", r.FilesSkipped)
	fmt.Fprintf(&b, "  records seen:       %d\n", r.RecordsSeen)
	fmt.Fprintf(&b, "  vendors upserted:   %d\n", r.VendorsTouched)
	fmt.Fprintf(&b, "  customers inserted: %d\n", r.CustomersCreated)
	fmt.Fprintf(&b, "  invoices inserted:  %d\n", r.InvoicesCreated)
	fmt.Fprintf(&b, "  duplicates skipped: %d\n", r.DuplicatesSkipped)
	fmt.Fprintf(&b, "  payments inserted:  %d\n", r.PaymentsCreated)
	fmt.Fprintf(&b, "  line items inserted: %d\n", r.LineItemsCreated)
	fmt.Fprintf(&b, "  records failed:     %d\n", r.RecordsFailed)
	return b.String()
}

// MarshalZerologObject permite registrar el reporte con Object("report", r).
func (r *RunReport) MarshalZerologObject(e *zerolog.Event) {
	e.Str("run_id", r.RunID).
		Bool("dry_run", r.DryRun).
		Int("files_scanned", r.FilesScanned).
		Int("files_skipped", r.FilesSkipped).
		Int("records_seen", r.RecordsSeen).
		Int("vendors_touched", r.VendorsTouched).
		Int("customers_created", r.CustomersCreated).
		Int("invoices_created", r.InvoicesCreated).
		Int("duplicates_skipped", r.DuplicatesSkipped).
		Int("payments_created", r.PaymentsCreated).
		Int("line_items_created", r.LineItemsCreated).
		Int("records_failed", r.RecordsFailed).
		Dur("duration", r.Duration())
}
