package etl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-etl/internal/application/etl"
	"github.com/jhoicas/invoice-etl/internal/domain"
)

func TestRunner_RechazaCorridasConcurrentes(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "a.json", invoiceDoc("INV-1"))
	store := newMemStore()
	store.beginGate = make(chan struct{})
	store.beginEntered = make(chan struct{})
	runner := etl.NewRunner(newIngestor(store, etl.Options{}), dir)

	type outcome struct {
		report *etl.RunReport
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := runner.Run(context.Background())
		done <- outcome{r, err}
	}()

	<-store.beginEntered
	_, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, runner.LastReport())

	close(store.beginGate)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, 1, first.report.InvoicesCreated)
	assert.Same(t, first.report, runner.LastReport())
}

func TestRunner_GuardaReporteSinArchivos(t *testing.T) {
	runner := etl.NewRunner(newIngestor(newMemStore(), etl.Options{}), t.TempDir())

	report, err := runner.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSourceFiles)
	assert.Same(t, report, runner.LastReport())
}
