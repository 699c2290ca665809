package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alterach/pos-app/internal/cart"
)

var ErrNotFound = errors.New("transaction not found")

type Repository interface {
	Append(ctx context.Context, t *Transaction) error
	// List returns the transaction log most-recent-first.
	List(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	MarkPaid(ctx context.Context, id string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Append(ctx context.Context, t *Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var customerID any
	if t.CustomerID != "" {
		customerID = t.CustomerID
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO transactions (id, subtotal, tax_rate, tax_amount, total, payment_method, payment_id, payment_status, customer_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, t.ID, t.Subtotal, t.TaxRate, t.TaxAmount, t.Total, string(t.PaymentMethod), t.PaymentID, string(t.PaymentStatus), customerID, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for _, it := range t.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO transaction_items (id, transaction_id, product_id, name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
`, uuid.NewString(), t.ID, it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return fmt.Errorf("insert transaction_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const txnColumns = `id, subtotal, tax_rate, tax_amount, total, payment_method, payment_id, payment_status, customer_id, created_at`

func (r *repo) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txnColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range txns {
		items, err := r.loadItems(ctx, txns[i].ID)
		if err != nil {
			return nil, err
		}
		txns[i].Items = items
	}
	return txns, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *repo) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET payment_status = $2 WHERE id = $1`, id, string(StatusPaid))
	if err != nil {
		return fmt.Errorf("update payment_status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) loadItems(ctx context.Context, txnID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id, name, unit_price, quantity
FROM transaction_items WHERE transaction_id = $1
`, txnID)
	if err != nil {
		return nil, fmt.Errorf("select transaction_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transaction_item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var (
		t          Transaction
		method     string
		status     string
		paymentID  sql.NullString
		customerID sql.NullString
	)
	err := row.Scan(&t.ID, &t.Subtotal, &t.TaxRate, &t.TaxAmount, &t.Total, &method, &paymentID, &status, &customerID, &t.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	t.PaymentMethod = cart.PaymentMethod(method)
	t.PaymentStatus = PaymentStatus(status)
	t.PaymentID = paymentID.String
	t.CustomerID = customerID.String
	return t, nil
}
