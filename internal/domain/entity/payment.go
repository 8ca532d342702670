package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment condiciones de pago de una factura (1:1 con Invoice).
type Payment struct {
	ID                 int64
	InvoiceID          int64
	DueDate            *time.Time
	PaymentTerms       string
	BankAccountNumber  string
	BIC                string
	AccountName        string
	NetDays            int
	DiscountPercentage decimal.Decimal
	DiscountDays       int
	DiscountDueDate    *time.Time
	DiscountedTotal    decimal.Decimal
}
