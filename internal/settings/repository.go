package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// Get reads the single settings row. A missing row yields the defaults so
// a fresh database behaves like the seeded one.
func (r *repo) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT store_name, tax_percent, currency FROM pos_settings WHERE id = 1`,
	).Scan(&s.StoreName, &s.TaxPercent, &s.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf("select settings: %w", err)
	}
	return s, nil
}

func (r *repo) Update(ctx context.Context, s Settings) error {
	if s.TaxPercent < 0 {
		return errors.New("tax percent must not be negative")
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO pos_settings (id, store_name, tax_percent, currency, updated_at)
VALUES (1, $1, $2, $3, NOW())
ON CONFLICT (id) DO UPDATE
SET store_name = EXCLUDED.store_name,
    tax_percent = EXCLUDED.tax_percent,
    currency = EXCLUDED.currency,
    updated_at = NOW()
`, s.StoreName, s.TaxPercent, s.Currency)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
