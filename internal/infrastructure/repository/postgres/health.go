package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

type HealthRepository struct {
	db *sql.DB
}

func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// Now returns the database's own clock, proving a round trip through the
// connection pool.
func (r *HealthRepository) Now(ctx context.Context) (string, error) {
	var now string
	if err := r.db.QueryRowContext(ctx, `SELECT now()::text`).Scan(&now); err != nil {
		return "", fmt.Errorf("select now: %w", err)
	}
	return now, nil
}
