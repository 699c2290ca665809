package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	Get(ctx context.Context, customerID string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, customerID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

const customerColumns = `id, name, email, phone, total_orders, total_spent, created_at`

func (r *repo) Get(ctx context.Context, customerID string) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, customerID,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.TotalOrders, &c.TotalSpent, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.TotalOrders, &c.TotalSpent, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return customers, nil
}

func (r *repo) Create(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx, `
INSERT INTO customers (id, name, email, phone, total_orders, total_spent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING created_at
`, c.ID, c.Name, c.Email, c.Phone, c.TotalOrders, c.TotalSpent).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE customers
SET name = $2, email = $3, phone = $4, total_orders = $5, total_spent = $6
WHERE id = $1
`, c.ID, c.Name, c.Email, c.Phone, c.TotalOrders, c.TotalSpent)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
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

func (r *repo) Delete(ctx context.Context, customerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
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
