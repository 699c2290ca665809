// Package receipt renders finalized transactions for display or printing.
// It is a pure consumer: nothing here feeds back into the sale.
package receipt

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alterach/pos-app/internal/money"
	"github.com/alterach/pos-app/internal/settings"
	"github.com/alterach/pos-app/internal/transaction"
)

const width = 38

// Render produces the printable text receipt for a transaction.
func Render(t transaction.Transaction, s settings.Settings) string {
	var b strings.Builder

	center(&b, s.StoreName)
	center(&b, "Jl. Contoh No. 123")
	center(&b, "Telp: 021-12345678")
	rule(&b)

	fmt.Fprintf(&b, "No: %s\n", t.ID)
	fmt.Fprintf(&b, "Tanggal: %s\n", t.CreatedAt.Format("02/01/2006 15:04"))
	if t.CustomerID != "" {
		fmt.Fprintf(&b, "Pelanggan: %s\n", t.CustomerID)
	}
	rule(&b)

	for _, it := range t.Items {
		fmt.Fprintf(&b, "%s\n", it.Name)
		line(&b,
			fmt.Sprintf("  %d x %s", it.Quantity, money.Format(it.UnitPrice, s.Currency)),
			money.Format(it.UnitPrice*int64(it.Quantity), s.Currency))
	}
	rule(&b)

	line(&b, "Subtotal", money.Format(t.Subtotal, s.Currency))
	line(&b, fmt.Sprintf("PPN (%g%%)", t.TaxRate), money.Format(t.TaxAmount, s.Currency))
	line(&b, "Total", money.Format(t.Total, s.Currency))
	rule(&b)

	line(&b, "Pembayaran", paymentLabel(t))
	center(&b, "Terima kasih!")
	fmt.Fprintf(&b, "* Include tax %g%%\n", t.TaxRate)

	return b.String()
}

func paymentLabel(t transaction.Transaction) string {
	label := string(t.PaymentMethod)
	if t.PaymentID != "" {
		label += " (" + t.PaymentID + ")"
	}
	return label
}

func center(b *strings.Builder, s string) {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s)
	b.WriteByte('\n')
}

func line(b *strings.Builder, left, right string) {
	pad := width - len([]rune(left)) - len([]rune(right))
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(right)
	b.WriteByte('\n')
}

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", width))
	b.WriteByte('\n')
}

// Printer writes every finalized transaction's receipt to w. It satisfies
// the checkout service's receipt sink.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) TransactionFinalized(t transaction.Transaction, s settings.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, Render(t, s))
}
