// Package payment integrates a hosted invoicing provider. The core only
// needs the opaque invoice id and redirect URL; everything else about the
// provider is its own business.
package payment

import "context"

// DraftItem is one receipt line sent to the provider.
type DraftItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Draft describes the sale an invoice is requested for.
type Draft struct {
	ExternalID    string      `json:"external_id"`
	Description   string      `json:"description"`
	Amount        int64       `json:"amount"`
	Currency      string      `json:"currency"`
	Items         []DraftItem `json:"items"`
	CustomerName  string      `json:"-"`
	CustomerEmail string      `json:"-"`
	CustomerPhone string      `json:"-"`
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceExpired InvoiceStatus = "EXPIRED"
)

// Invoice is the provider's answer: an id to finalize against and a URL
// to hand the buyer.
type Invoice struct {
	ID     string        `json:"id"`
	URL    string        `json:"invoice_url"`
	Status InvoiceStatus `json:"status"`
}

type Provider interface {
	CreateInvoice(ctx context.Context, d Draft) (Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (Invoice, error)
}
