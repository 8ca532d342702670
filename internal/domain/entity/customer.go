package entity

// Customer representa al destinatario de la factura. Clave natural: (Name, Address).
// Una vez creado no se actualiza.
type Customer struct {
	ID      int64
	Name    string
	Address string
}
