package etl_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/invoice-etl/internal/application/etl"
	"github.com/jhoicas/invoice-etl/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: almacenamiento en memoria con semántica de savepoints.
// Cada ámbito guarda una copia del estado al abrirse; Rollback la restaura.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	nextID    int64
	vendors   []entity.Vendor
	customers []entity.Customer
	invoices  []entity.Invoice
	payments  []entity.Payment
	lineItems []entity.LineItem
}

func (s memState) clone() memState {
	c := s
	c.vendors = append([]entity.Vendor(nil), s.vendors...)
	c.customers = append([]entity.Customer(nil), s.customers...)
	c.invoices = append([]entity.Invoice(nil), s.invoices...)
	c.payments = append([]entity.Payment(nil), s.payments...)
	c.lineItems = append([]entity.LineItem(nil), s.lineItems...)
	return c
}

type memStore struct {
	state memState

	// fallas inyectables
	failBegin      error
	failNested     error
	failLineItemOn string // descripción de línea que provoca error
	beginGate      chan struct{}
	beginEntered   chan struct{}

	mu      sync.Mutex
	commits int
}

var errLineItem = errors.New("line item rechazado")

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Begin(context.Context) (etl.Tx, error) {
	if s.beginEntered != nil {
		close(s.beginEntered)
	}
	if s.beginGate != nil {
		<-s.beginGate
	}
	if s.failBegin != nil {
		return nil, s.failBegin
	}
	return &memTx{store: s, snapshot: s.state.clone(), outer: true}, nil
}

func (s *memStore) nextID() int64 {
	s.state.nextID++
	return s.state.nextID
}

type memTx struct {
	store    *memStore
	snapshot memState
	outer    bool
	closed   bool
}

func (t *memTx) BeginNested(context.Context) (etl.Tx, error) {
	if t.store.failNested != nil {
		return nil, t.store.failNested
	}
	return &memTx{store: t.store, snapshot: t.store.state.clone()}, nil
}

func (t *memTx) Commit(context.Context) error {
	if t.closed {
		return errors.New("tx cerrada")
	}
	t.closed = true
	if t.outer {
		t.store.mu.Lock()
		t.store.commits++
		t.store.mu.Unlock()
	}
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.store.state = t.snapshot
	return nil
}

func (t *memTx) Repos() etl.Repositories {
	return etl.Repositories{
		Vendors:   memVendors{t.store},
		Customers: memCustomers{t.store},
		Invoices:  memInvoices{t.store},
		Payments:  memPayments{t.store},
		LineItems: memLineItems{t.store},
	}
}

type memVendors struct{ s *memStore }

func (r memVendors) Upsert(_ context.Context, v *entity.Vendor) (int64, error) {
	for i := range r.s.state.vendors {
		ex := &r.s.state.vendors[i]
		if ex.Name == v.Name && ex.TaxID == v.TaxID {
			ex.Address = v.Address
			v.ID = ex.ID
			return ex.ID, nil
		}
	}
	v.ID = r.s.nextID()
	r.s.state.vendors = append(r.s.state.vendors, *v)
	return v.ID, nil
}

type memCustomers struct{ s *memStore }

func (r memCustomers) InsertIfAbsent(_ context.Context, c *entity.Customer) (bool, error) {
	for _, ex := range r.s.state.customers {
		if ex.Name == c.Name && ex.Address == c.Address {
			return false, nil
		}
	}
	c.ID = r.s.nextID()
	r.s.state.customers = append(r.s.state.customers, *c)
	return true, nil
}

type memInvoices struct{ s *memStore }

func (r memInvoices) InsertIfAbsent(_ context.Context, inv *entity.Invoice) (bool, error) {
	for _, ex := range r.s.state.invoices {
		if ex.Number == inv.Number && ex.VendorID == inv.VendorID {
			return false, nil
		}
	}
	inv.ID = r.s.nextID()
	r.s.state.invoices = append(r.s.state.invoices, *inv)
	return true, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	p.ID = r.s.nextID()
	r.s.state.payments = append(r.s.state.payments, *p)
	return nil
}

type memLineItems struct{ s *memStore }

func (r memLineItems) Create(_ context.Context, li *entity.LineItem) error {
	if r.s.failLineItemOn != "" && li.Description == r.s.failLineItemOn {
		return errLineItem
	}
	li.ID = r.s.nextID()
	r.s.state.lineItems = append(r.s.state.lineItems, *li)
	return nil
}
