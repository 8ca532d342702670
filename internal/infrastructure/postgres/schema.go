package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Schema devuelve el DDL de las tablas normalizadas.
func Schema() string {
	return schemaSQL
}

// EnsureSchema crea las tablas e índices que falten. Sin argumentos pgx usa el protocolo
// simple, que admite varias sentencias en un solo Exec.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
