package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
	"github.com/jhoicas/invoice-etl/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Upsert inserta el proveedor o actualiza su dirección si (name, tax_id) ya existe.
func (r *VendorRepo) Upsert(ctx context.Context, vendor *entity.Vendor) (int64, error) {
	const query = `
		INSERT INTO vendors (vendor_name, vendor_address, vendor_tax_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (vendor_name, vendor_tax_id)
		DO UPDATE SET vendor_address = EXCLUDED.vendor_address
		RETURNING vendor_id`
	err := r.q.QueryRow(ctx, query, vendor.Name, vendor.Address, vendor.TaxID).Scan(&vendor.ID)
	if err != nil {
		return 0, fmt.Errorf("upsert vendor: %w", err)
	}
	return vendor.ID, nil
}
