package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts one immutable analysis result. The score record lands in
// the jsonb weaknesses column; the typed ScoreSet keeps its shape honest
// at the boundary.
func (r *ResultRepository) Save(ctx context.Context, result *domain.AnalysisResult) error {
	scoresJSON, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO results (id, filename, text, weaknesses, created_at)
VALUES ($1, $2, $3, $4, $5)
`, result.ID, result.Filename, result.Text, scoresJSON, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, text, weaknesses, created_at
FROM results
WHERE id = $1
`, id)

	var result domain.AnalysisResult
	var scoresRaw []byte
	err := row.Scan(&result.ID, &result.Filename, &result.Text, &scoresRaw, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get result by id", err)
		}
		return nil, fmt.Errorf("scan result: %w", err)
	}
	if err := json.Unmarshal(scoresRaw, &result.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	return &result, nil
}
