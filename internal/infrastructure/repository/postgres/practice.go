package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type PracticeRepository struct {
	db *sql.DB
}

func NewPracticeRepository(db *sql.DB) *PracticeRepository {
	return &PracticeRepository{db: db}
}

func (r *PracticeRepository) Save(ctx context.Context, set *domain.PracticeSet) error {
	exercisesJSON, err := json.Marshal(set.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO practice_sets (id, result_id, exercises, created_at)
VALUES ($1, $2, $3, $4)
`, set.ID, set.ResultID, exercisesJSON, set.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert practice set: %w", err)
	}
	return nil
}

func (r *PracticeRepository) Latest(ctx context.Context) (*domain.PracticeSet, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, result_id, exercises, created_at
FROM practice_sets
ORDER BY created_at DESC
LIMIT 1
`)

	var set domain.PracticeSet
	var exercisesRaw []byte
	err := row.Scan(&set.ID, &set.ResultID, &exercisesRaw, &set.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "latest practice set", err)
		}
		return nil, fmt.Errorf("scan practice set: %w", err)
	}
	if err := json.Unmarshal(exercisesRaw, &set.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises: %w", err)
	}
	return &set, nil
}
