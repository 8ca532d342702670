// Package etl contiene el motor de normalización: convierte documentos de extracción en
// filas de vendors, customers, invoices, payments e invoice_line_items.
package etl

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-etl/internal/domain"
	"github.com/jhoicas/invoice-etl/internal/domain/document"
	"github.com/jhoicas/invoice-etl/internal/domain/entity"
	"github.com/jhoicas/invoice-etl/pkg/coerce"
)

// Outcome desenlace controlado de un registro (no incluye fallos).
type Outcome int

const (
	// OutcomeInserted la factura se creó junto con su pago y líneas.
	OutcomeInserted Outcome = iota + 1
	// OutcomeDuplicate la factura ya existía para el proveedor; no se insertan pago ni líneas.
	OutcomeDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Counts filas escritas por un registro.
type Counts struct {
	Vendors   int
	Customers int
	Invoices  int
	Payments  int
	LineItems int
}

// Result resultado de normalizar un registro.
type Result struct {
	Outcome       Outcome
	InvoiceNumber string
	VendorID      int64
	InvoiceID     int64
	Counts        Counts
}

// Normalizer mapea un documento a las cinco entidades y las persiste en el ámbito recibido.
type Normalizer struct {
	defaultCurrency string
}

// NewNormalizer construye el normalizador. defaultCurrency vacío usa "€".
func NewNormalizer(defaultCurrency string) *Normalizer {
	if defaultCurrency == "" {
		defaultCurrency = entity.DefaultCurrencySymbol
	}
	return &Normalizer{defaultCurrency: defaultCurrency}
}

// Normalize persiste un registro dentro de scope. Un error indica un fallo inesperado: el
// llamador debe revertir scope. Duplicados y secciones ausentes no son errores; se reflejan
// en Result.Outcome.
func (n *Normalizer) Normalize(ctx context.Context, scope Tx, rec document.Record) (Result, error) {
	var res Result

	llm, err := rec.LLMData()
	if err != nil {
		return res, err
	}
	vendorSec, err := llm.Section(document.SectionVendor)
	if err != nil {
		return res, err
	}
	customerSec, err := llm.Section(document.SectionCustomer)
	if err != nil {
		return res, err
	}
	summarySec, err := llm.Section(document.SectionSummary)
	if err != nil {
		return res, err
	}
	invoiceSec, err := llm.Section(document.SectionInvoice)
	if err != nil {
		return res, err
	}
	paymentSec := llm.OptionalSection(document.SectionPayment)

	repos := scope.Repos()

	// 1) Proveedor: upsert por (name, tax_id); el id vuelve tanto en alta como en actualización.
	vendor := &entity.Vendor{
		Name:    coerce.Text(vendorSec.Get("vendorName").Payload()),
		Address: coerce.Text(vendorSec.Get("vendorAddress").Payload()),
		TaxID:   coerce.Text(vendorSec.Get("vendorTaxId").Payload()),
	}
	vendorID, err := repos.Vendors.Upsert(ctx, vendor)
	if err != nil {
		return res, fmt.Errorf("upsert vendor: %w", err)
	}
	if vendorID != 0 {
		res.Counts.Vendors++
	}
	res.VendorID = vendorID

	// 2) Cliente: solo si trae nombre; el id se usa únicamente si la fila es nueva.
	var customerID *int64
	if name := coerce.ToText(customerSec.Get("customerName").Payload(), ""); name != "" {
		customer := &entity.Customer{
			Name:    name,
			Address: coerce.Text(customerSec.Get("customerAddress").Payload()),
		}
		created, err := repos.Customers.InsertIfAbsent(ctx, customer)
		if err != nil {
			return res, fmt.Errorf("insert customer: %w", err)
		}
		if created {
			id := customer.ID
			customerID = &id
			res.Counts.Customers++
		}
	}

	// 3) Factura: conflicto en (invoice_number, vendor_id) → duplicado, se corta aquí.
	docType, _ := summarySec.Get("documentType").Payload().(string)
	invoice := &entity.Invoice{
		Number:         coerce.Text(invoiceSec.Get("invoiceId").Payload()),
		InvoiceDate:    coerce.ParseDate(invoiceSec.Get("invoiceDate").Payload()),
		DeliveryDate:   coerce.ParseDate(invoiceSec.Get("deliveryDate").Payload()),
		DocumentType:   entity.NormalizeDocumentType(docType),
		CurrencySymbol: coerce.Text(summarySec.Get("currencySymbol").Or(n.defaultCurrency)),
		Subtotal:       amount(summarySec.Get("subTotal")),
		TotalTax:       amount(summarySec.Get("totalTax")),
		InvoiceTotal:   amount(summarySec.Get("invoiceTotal")),
		VendorID:       vendorID,
		CustomerID:     customerID,
	}
	res.InvoiceNumber = invoice.Number
	created, err := repos.Invoices.InsertIfAbsent(ctx, invoice)
	if err != nil {
		return res, fmt.Errorf("insert invoice: %w", err)
	}
	if !created {
		res.Outcome = OutcomeDuplicate
		return res, nil
	}
	res.InvoiceID = invoice.ID
	res.Counts.Invoices++

	// 4) Pago: una fila si la sección trae datos.
	if !paymentSec.IsEmpty() {
		payment, err := n.buildPayment(invoice.ID, paymentSec)
		if err != nil {
			return res, err
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return res, fmt.Errorf("insert payment: %w", err)
		}
		res.Counts.Payments++
	}

	// 5) Líneas, en el orden del documento y sin deduplicar.
	items, err := llm.Items(document.SectionLineItems)
	if err != nil {
		return res, err
	}
	for i, it := range items {
		item, err := buildLineItem(invoice.ID, it)
		if err != nil {
			return res, fmt.Errorf("line item %d: %w", i, err)
		}
		if err := repos.LineItems.Create(ctx, item); err != nil {
			return res, fmt.Errorf("insert line item %d: %w", i, err)
		}
		res.Counts.LineItems++
	}

	res.Outcome = OutcomeInserted
	return res, nil
}

func (n *Normalizer) buildPayment(invoiceID int64, sec document.Object) (*entity.Payment, error) {
	netDays, err := wholeNumber(sec.Get("netDays"))
	if err != nil {
		return nil, fmt.Errorf("payment netDays: %w", err)
	}
	discountDays, err := wholeNumber(sec.Get("discountDays"))
	if err != nil {
		return nil, fmt.Errorf("payment discountDays: %w", err)
	}
	return &entity.Payment{
		InvoiceID:          invoiceID,
		DueDate:            coerce.ParseDate(sec.Get("dueDate").Payload()),
		PaymentTerms:       coerce.Text(sec.Get("paymentTerms").Payload()),
		BankAccountNumber:  coerce.Text(sec.Get("bankAccountNumber").Payload()),
		BIC:                coerce.Text(sec.Get("BIC").Payload()),
		AccountName:        coerce.Text(sec.Get("accountName").Payload()),
		NetDays:            netDays,
		DiscountPercentage: amount(sec.Get("discountPercentage")),
		DiscountDays:       discountDays,
		DiscountDueDate:    coerce.ParseDate(sec.Get("discountDueDate").Payload()),
		DiscountedTotal:    amount(sec.Get("discountedTotal")),
	}, nil
}

func buildLineItem(invoiceID int64, it document.Object) (*entity.LineItem, error) {
	lineNo, err := wholeNumber(it.Get("srNo"))
	if err != nil {
		return nil, fmt.Errorf("srNo: %w", err)
	}
	return &entity.LineItem{
		InvoiceID:    invoiceID,
		LineNo:       lineNo,
		Description:  coerce.Text(it.Get("description").Payload()),
		Quantity:     amount(it.Get("quantity")),
		UnitPrice:    amount(it.Get("unitPrice")),
		TotalPrice:   amount(it.Get("totalPrice")),
		Sachkonto:    coerce.Text(it.Get("Sachkonto").Payload()),
		BUSchluessel: coerce.Text(it.Get("BUSchluessel").Payload()),
		VATRate:      amount(it.Get("vatRate")),
		VATAmount:    amount(it.Get("vatAmount")),
	}, nil
}

func amount(v document.Value) decimal.Decimal {
	return decimal.NewFromFloat(coerce.Numeric(v.Payload()))
}

// wholeNumber redondea el valor para columnas INTEGER; fuera de rango es un error del registro.
func wholeNumber(v document.Value) (int, error) {
	f := math.Round(coerce.Numeric(v.Payload()))
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v fuera de rango entero", domain.ErrInvalidInput, f)
	}
	return int(f), nil
}
