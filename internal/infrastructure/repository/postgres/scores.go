package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type ScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) SaveSnapshot(ctx context.Context, snapshot *domain.ScoreSnapshot) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_scores (id, grammar_score, vocabulary_score, writing_score, spelling_score, punctuation_score, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`,
		snapshot.ID,
		snapshot.Scores.Grammar,
		snapshot.Scores.Vocabulary,
		snapshot.Scores.Writing,
		snapshot.Scores.Spelling,
		snapshot.Scores.Punctuation,
		snapshot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert score snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently created row; the schema has no
// update-in-place path.
func (r *ScoreRepository) LatestSnapshot(ctx context.Context) (*domain.ScoreSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, grammar_score, vocabulary_score, writing_score, spelling_score, punctuation_score, updated_at
FROM user_scores
ORDER BY updated_at DESC
LIMIT 1
`)

	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "latest score snapshot", err)
		}
		return nil, fmt.Errorf("scan score snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *ScoreRepository) ListSnapshots(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, grammar_score, vocabulary_score, writing_score, spelling_score, punctuation_score, updated_at
FROM user_scores
ORDER BY updated_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query score snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.ScoreSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan score snapshot row: %w", err)
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score snapshots: %w", err)
	}
	return snapshots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.ScoreSnapshot, error) {
	var snapshot domain.ScoreSnapshot
	err := row.Scan(
		&snapshot.ID,
		&snapshot.Scores.Grammar,
		&snapshot.Scores.Vocabulary,
		&snapshot.Scores.Writing,
		&snapshot.Scores.Spelling,
		&snapshot.Scores.Punctuation,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
