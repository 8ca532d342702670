package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "invoices_number_vendor_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped))
	assert.Equal(t, "invoices_number_vendor_key", constraintName(wrapped))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
	assert.Empty(t, constraintName(errors.New("conexión cerrada")))
}

func TestSchemaIncluyeTablas(t *testing.T) {
	ddl := Schema()
	for _, table := range []string{"vendors", "customers", "invoices", "payments", "invoice_line_items"} {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
