package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// InsertIfAbsent inserta el cliente; ante conflicto en (name, address) no devuelve fila.
func (r *CustomerRepo) InsertIfAbsent(ctx context.Context, customer *entity.Customer) (bool, error) {
	const query = `
		INSERT INTO customers (customer_name, customer_address)
		VALUES ($1, $2)
		ON CONFLICT (customer_name, customer_address) DO NOTHING
		RETURNING customer_id`
	err := r.q.QueryRow(ctx, query, customer.Name, customer.Address).Scan(&customer.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert customer: %w", err)
	}
	return true, nil
}
