package repository

import (
	"context"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// InsertIfAbsent inserta el cliente si (name, address) no existe. Solo cuando se crea
	// una fila nueva asigna customer.ID y devuelve created=true.
	InsertIfAbsent(ctx context.Context, customer *entity.Customer) (created bool, err error)
}
