package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/inventory"
	"github.com/alterach/pos-app/internal/settings"
	"github.com/alterach/pos-app/internal/snapshot"
	"github.com/alterach/pos-app/internal/transaction"
)

// EventPublisher receives every finalized sale. Publish failures are the
// publisher's problem; the service logs and moves on.
type EventPublisher interface {
	PublishTransactionCompleted(ctx context.Context, t transaction.Transaction) error
}

// stockDepletedPublisher is an optional extension; publishers that
// implement it get told when a sale empties a product's stock.
type stockDepletedPublisher interface {
	PublishStockDepleted(ctx context.Context, productID, name string) error
}

// ReceiptSink consumes a finalized transaction for rendering or printing.
// It is a pure consumer with no feedback into the service.
type ReceiptSink interface {
	TransactionFinalized(t transaction.Transaction, s settings.Settings)
}

// Service owns the terminal's current cart and drives the whole flow:
// guard-checked adds, snapshot persistence after every transition, and
// checkout. The mutex serializes operations the way a single UI event loop
// would.
//
// In-memory state is the source of truth. Durable writes that fail are
// logged as warnings and never roll back a completed sale.
type Service struct {
	catalog   catalog.Repository
	txns      transaction.Repository
	snapshots snapshot.Store
	settings  settings.Repository
	publisher EventPublisher
	receipts  ReceiptSink
	logger    *log.Logger

	now   Clock
	newID IDGenerator

	mu      sync.Mutex
	cart    cart.Cart
	history []transaction.Transaction
}

type Option func(*Service)

func WithClock(c Clock) Option { return func(s *Service) { s.now = c } }

func WithIDGenerator(g IDGenerator) Option { return func(s *Service) { s.newID = g } }

func WithPublisher(p EventPublisher) Option { return func(s *Service) { s.publisher = p } }

func WithReceiptSink(r ReceiptSink) Option { return func(s *Service) { s.receipts = r } }

func NewService(
	catalogRepo catalog.Repository,
	txnRepo transaction.Repository,
	snapshots snapshot.Store,
	settingsRepo settings.Repository,
	logger *log.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		catalog:   catalogRepo,
		txns:      txnRepo,
		snapshots: snapshots,
		settings:  settingsRepo,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
		cart:      cart.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted cart snapshot and the transaction history.
// Both restores are total: anything unreadable degrades to empty state.
func (s *Service) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := cart.New()
	data, ok, err := s.snapshots.Load(ctx, cart.SnapshotKey)
	if err != nil {
		s.logger.Printf("cart snapshot load failed, starting empty: %v", err)
	} else if ok {
		if c, valid := cart.FromSnapshot(data); valid {
			restored = c
		} else {
			s.logger.Printf("cart snapshot unreadable, starting empty")
		}
	}
	s.cart = restored

	history, err := s.txns.List(ctx)
	if err != nil {
		s.logger.Printf("transaction history load failed: %v", err)
		return
	}
	s.history = history
}

// Cart returns the current cart snapshot.
func (s *Service) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// AddItem looks the product up, re-runs the inventory guard against live
// stock, and only then mutates the cart. A guard rejection leaves the cart
// untouched and surfaces as *inventory.GuardError.
func (s *Service) AddItem(ctx context.Context, productID string) (cart.Cart, error) {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return s.Cart(), fmt.Errorf("load product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d := inventory.CanAdd(p, s.cart); !d.Allowed {
		return s.cart, &inventory.GuardError{ProductID: p.ID, Reason: d.Reason}
	}

	s.apply(ctx, s.cart.AddItem(p))
	return s.cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, productID string) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.cart.RemoveItem(productID))
	return s.cart
}

func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.cart.UpdateQuantity(productID, quantity))
	return s.cart
}

func (s *Service) SetCustomer(ctx context.Context, customerID string) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.cart.SetCustomer(customerID))
	return s.cart
}

func (s *Service) SetPaymentMethod(ctx context.Context, m cart.PaymentMethod) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.cart.SetPaymentMethod(m))
	return s.cart
}

func (s *Service) ClearCart(ctx context.Context) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, s.cart.Clear())
	return s.cart
}

// Checkout finalizes the current cart as a locally settled sale.
func (s *Service) Checkout(ctx context.Context, method cart.PaymentMethod) (transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart
	if method != "" {
		c = c.SetPaymentMethod(method)
	}
	return s.finalize(ctx, c, "", transaction.StatusPaid)
}

// FinalizeWithExternalPayment completes the same flow for a sale paid via
// a hosted invoice. paymentID is the provider's opaque reference; the
// record stays pending until the provider confirms settlement.
func (s *Service) FinalizeWithExternalPayment(ctx context.Context, paymentID string) (transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart.SetPaymentMethod(cart.PaymentExternal)
	return s.finalize(ctx, c, paymentID, transaction.StatusPending)
}

// History returns the in-memory transaction log, most recent first.
func (s *Service) History() []transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transaction.Transaction, len(s.history))
	copy(out, s.history)
	return out
}

// MarkPaid flips an external payment to paid, in memory first, then in the
// durable log.
func (s *Service) MarkPaid(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	for i := range s.history {
		if s.history[i].ID == transactionID {
			s.history[i].PaymentStatus = transaction.StatusPaid
			break
		}
	}
	s.mu.Unlock()

	if err := s.txns.MarkPaid(ctx, transactionID); err != nil {
		s.logger.Printf("mark paid %s: durable update failed: %v", transactionID, err)
		return err
	}
	return nil
}

// finalize runs with s.mu held.
func (s *Service) finalize(ctx context.Context, c cart.Cart, paymentID string, status transaction.PaymentStatus) (transaction.Transaction, error) {
	taxCfg := s.taxConfig(ctx)

	txn, err := Build(c, taxCfg, s.now().UTC(), s.newID())
	if err != nil {
		return transaction.Transaction{}, err
	}
	txn.PaymentID = paymentID
	txn.PaymentStatus = status

	// The sale is recorded in memory before any durable write; a failed
	// write downgrades to a warning, it never loses the transaction.
	s.history = append([]transaction.Transaction{txn}, s.history...)

	if err := s.txns.Append(ctx, &txn); err != nil {
		s.logger.Printf("transaction %s: durable append failed, kept in memory: %v", txn.ID, err)
	}

	// Stock decrements are clamped at zero and not re-validated here; the
	// guard only gates the add path.
	for _, it := range txn.Items {
		if err := s.catalog.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.logger.Printf("transaction %s: decrement stock %s: %v", txn.ID, it.ProductID, err)
			continue
		}
		s.notifyIfDepleted(ctx, it.ProductID)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionCompleted(ctx, txn); err != nil {
			s.logger.Printf("transaction %s: publish failed: %v", txn.ID, err)
		}
	}

	if s.receipts != nil {
		st, err := s.settings.Get(ctx)
		if err != nil {
			st = settings.Defaults()
		}
		s.receipts.TransactionFinalized(txn, st)
	}

	s.apply(ctx, s.cart.Clear())
	return txn, nil
}

func (s *Service) notifyIfDepleted(ctx context.Context, productID string) {
	sp, ok := s.publisher.(stockDepletedPublisher)
	if !ok {
		return
	}

	p, err := s.catalog.Get(ctx, productID)
	if err != nil || p.Stock > 0 {
		return
	}
	if err := sp.PublishStockDepleted(ctx, p.ID, p.Name); err != nil {
		s.logger.Printf("stock depleted %s: publish failed: %v", p.ID, err)
	}
}

func (s *Service) taxConfig(ctx context.Context) settings.TaxConfig {
	st, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Printf("settings load failed, using defaults: %v", err)
		st = settings.Defaults()
	}
	return st.TaxConfig()
}

// apply installs the new cart state and mirrors it to durable storage.
// Runs with s.mu held.
func (s *Service) apply(ctx context.Context, next cart.Cart) {
	s.cart = next

	data, err := next.Snapshot()
	if err != nil {
		s.logger.Printf("cart snapshot encode failed: %v", err)
		return
	}
	if err := s.snapshots.Save(ctx, cart.SnapshotKey, data); err != nil {
		s.logger.Printf("cart snapshot save failed: %v", err)
	}
}
