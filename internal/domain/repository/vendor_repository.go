package repository

import (
	"context"

	"github.com/jhoicas/invoice-etl/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	// Upsert inserta el proveedor o, si ya existe (name, tax_id), sobrescribe la dirección.
	// En ambos casos asigna vendor.ID y lo devuelve.
	Upsert(ctx context.Context, vendor *entity.Vendor) (int64, error)
}
