package httpapi_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/checkout"
	"github.com/alterach/pos-app/internal/customer"
	"github.com/alterach/pos-app/internal/metrics"
	"github.com/alterach/pos-app/internal/payment"
	"github.com/alterach/pos-app/internal/settings"
	"github.com/alterach/pos-app/internal/snapshot"
	"github.com/alterach/pos-app/internal/transaction"

	httpapi "github.com/alterach/pos-app/internal/http"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]catalog.Product
}

func newFakeCatalog(products ...catalog.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[string]catalog.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) Get(_ context.Context, id string) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) List(_ context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) Create(_ context.Context, p *catalog.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = "generated-id"
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) Update(_ context.Context, p *catalog.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalog) DecrementStock(_ context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	f.products[id] = p
	return nil
}

func (f *fakeCatalog) SetStock(_ context.Context, id string, stock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Stock = stock
	f.products[id] = p
	return nil
}

type fakeTxns struct {
	mu       sync.Mutex
	appended []transaction.Transaction
	paid     []string
}

func (f *fakeTxns) Append(_ context.Context, t *transaction.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, *t)
	return nil
}

func (f *fakeTxns) List(_ context.Context) ([]transaction.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]transaction.Transaction, len(f.appended))
	copy(out, f.appended)
	return out, nil
}

func (f *fakeTxns) GetByID(_ context.Context, id string) (*transaction.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appended {
		if f.appended[i].ID == id {
			t := f.appended[i]
			return &t, nil
		}
	}
	return nil, transaction.ErrNotFound
}

func (f *fakeTxns) MarkPaid(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, id)
	return nil
}

type fakeSettings struct {
	mu      sync.Mutex
	current settings.Settings
}

func (f *fakeSettings) Get(_ context.Context) (settings.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeSettings) Update(_ context.Context, s settings.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = s
	return nil
}

type fakeCustomers struct {
	mu      sync.Mutex
	records map[string]customer.Customer
}

func newFakeCustomers(records ...customer.Customer) *fakeCustomers {
	f := &fakeCustomers{records: map[string]customer.Customer{}}
	for _, c := range records {
		f.records[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) Get(_ context.Context, id string) (*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.records[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCustomers) List(_ context.Context) ([]customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []customer.Customer
	for _, c := range f.records {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomers) Create(_ context.Context, c *customer.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = "cust-generated"
	}
	f.records[c.ID] = *c
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, c *customer.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[c.ID]; !ok {
		return customer.ErrNotFound
	}
	f.records[c.ID] = *c
	return nil
}

func (f *fakeCustomers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return customer.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeProvider struct {
	created   []payment.Draft
	invoice   payment.Invoice
	createErr error
	getErr    error
}

func (f *fakeProvider) CreateInvoice(_ context.Context, d payment.Draft) (payment.Invoice, error) {
	if f.createErr != nil {
		return payment.Invoice{}, f.createErr
	}
	f.created = append(f.created, d)
	return f.invoice, nil
}

func (f *fakeProvider) GetInvoice(_ context.Context, id string) (payment.Invoice, error) {
	if f.getErr != nil {
		return payment.Invoice{}, f.getErr
	}
	inv := f.invoice
	inv.ID = id
	return inv, nil
}

var errBoom = errors.New("boom")

type fixture struct {
	catalog   *fakeCatalog
	txns      *fakeTxns
	settings  *fakeSettings
	customers *fakeCustomers
	provider  *fakeProvider
	svc       *checkout.Service
	router    http.Handler
}

func newFixture(products ...catalog.Product) *fixture {
	f := &fixture{
		catalog:   newFakeCatalog(products...),
		txns:      &fakeTxns{},
		settings:  &fakeSettings{current: settings.Defaults()},
		customers: newFakeCustomers(),
		provider:  &fakeProvider{invoice: payment.Invoice{ID: "inv-1", URL: "https://pay.example/inv-1", Status: payment.InvoicePending}},
	}
	logger := log.New(io.Discard, "", 0)
	f.svc = checkout.NewService(f.catalog, f.txns, snapshot.NewMemoryStore(), f.settings, logger,
		checkout.WithIDGenerator(func() string { return "txn-1" }),
	)
	h := httpapi.NewHandler(f.svc, f.catalog, f.customers, f.settings, f.provider,
		metrics.NewPOSMetrics(prometheus.NewRegistry()), logger)
	f.router = httpapi.NewRouter(h)
	return f
}
