package etl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-etl/internal/domain"
	"github.com/jhoicas/invoice-etl/internal/domain/document"
)

// Options configuración del ingestor.
type Options struct {
	Extension string // extensión de archivos a leer (por defecto ".json")
	DryRun    bool   // procesa todo y revierte la transacción del lote al final
}

// Ingestor recorre una carpeta, abre una transacción por lote y normaliza cada registro
// dentro de su propio savepoint.
type Ingestor struct {
	db         TxBeginner
	normalizer *Normalizer
	opts       Options
	log        zerolog.Logger
}

// NewIngestor construye el ingestor.
func NewIngestor(db TxBeginner, normalizer *Normalizer, opts Options, log zerolog.Logger) *Ingestor {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	return &Ingestor{db: db, normalizer: normalizer, opts: opts, log: log}
}

// Ingest procesa sourcePath y devuelve el reporte de la corrida.
//
// Archivos ilegibles se omiten y registros con error se revierten y cuentan; ninguno de los
// dos aborta el lote. Solo los errores del almacenamiento (abrir o confirmar la transacción,
// crear o revertir un savepoint) son fatales: se revierte el lote completo y se devuelve
// un error que envuelve domain.ErrStorageUnavailable. Si la carpeta no tiene archivos se
// devuelve domain.ErrNoSourceFiles junto al reporte vacío.
func (i *Ingestor) Ingest(ctx context.Context, sourcePath string) (*RunReport, error) {
	report := NewRunReport(sourcePath, i.opts.DryRun)
	log := i.log.With().Str("run_id", report.RunID).Logger()

	files, err := ListSourceFiles(sourcePath, i.opts.Extension)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", sourcePath).Int("files", len(files)).Msg("iniciando ingesta")
	if len(files) == 0 {
		report.Finish()
		return report, domain.ErrNoSourceFiles
	}

	tx, err := i.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin batch: %w", domain.ErrStorageUnavailable, err)
	}
	done := false
	defer func() {
		if !done {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, path := range files {
		report.FilesScanned++
		fileLog := log.With().Str("file", filepath.Base(path)).Logger()
		fileLog.Debug().Msg("cargando archivo")

		records, err := ReadRecords(path)
		if err != nil {
			report.FilesSkipped++
			fileLog.Error().Err(err).Msg("archivo ilegible, se omite")
			continue
		}
		for idx, rec := range records {
			report.RecordsSeen++
			recLog := fileLog.With().Int("record", idx).Logger()
			if id := rec.ID(); id != "" {
				recLog = recLog.With().Str("document_id", id).Logger()
			}
			if err := i.ingestRecord(ctx, tx, rec, report, recLog); err != nil {
				return nil, err
			}
		}
	}

	done = true
	if i.opts.DryRun {
		if err := tx.Rollback(ctx); err != nil {
			return nil, fmt.Errorf("%w: rollback dry run: %w", domain.ErrStorageUnavailable, err)
		}
	} else if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit batch: %w", domain.ErrStorageUnavailable, err)
	}

	report.Finish()
	log.Info().Object("report", report).Msg("ingesta finalizada")
	return report, nil
}

// ingestRecord normaliza un registro en su propio savepoint. Solo devuelve error cuando el
// savepoint no puede abrirse, confirmarse o revertirse.
func (i *Ingestor) ingestRecord(ctx context.Context, tx Tx, rec document.Record, report *RunReport, log zerolog.Logger) error {
	scope, err := tx.BeginNested(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin savepoint: %w", domain.ErrStorageUnavailable, err)
	}

	res, err := i.normalizer.Normalize(ctx, scope, rec)
	if err != nil {
		if rbErr := scope.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w: rollback savepoint: %w", domain.ErrStorageUnavailable, rbErr)
		}
		report.Fail()
		log.Error().Err(err).Str("invoice_number", res.InvoiceNumber).Msg("registro revertido")
		return nil
	}
	if err := scope.Commit(ctx); err != nil {
		return fmt.Errorf("%w: release savepoint: %w", domain.ErrStorageUnavailable, err)
	}

	report.Add(res)
	if res.Outcome == OutcomeDuplicate {
		log.Warn().Str("invoice_number", res.InvoiceNumber).Int64("vendor_id", res.VendorID).
			Msg("factura duplicada o inválida, se omiten pago y líneas")
		return nil
	}
	log.Debug().Str("invoice_number", res.InvoiceNumber).Int64("invoice_id", res.InvoiceID).
		Int("line_items", res.Counts.LineItems).Msg("registro normalizado")
	return nil
}
