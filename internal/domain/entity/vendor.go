package entity

// Vendor representa al emisor de la factura. Clave natural: (Name, TaxID).
type Vendor struct {
	ID      int64
	Name    string
	Address string
	TaxID   string
}
