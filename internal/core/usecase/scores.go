package usecase

import (
	"context"
	"fmt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
)

type ScoreUseCase struct {
	scores ports.ScoreRepository
}

func NewScoreUseCase(scores ports.ScoreRepository) *ScoreUseCase {
	return &ScoreUseCase{scores: scores}
}

// Latest returns the five category scores in fixed order. With no snapshot
// yet it returns all zeros; callers cannot distinguish a new user from a
// real zero score.
func (uc *ScoreUseCase) Latest(ctx context.Context) ([]domain.SubjectScore, error) {
	snapshot, err := uc.scores.LatestSnapshot(ctx)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return domain.ScoreSet{}.Subjects(), nil
		}
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return snapshot.Scores.Subjects(), nil
}

func (uc *ScoreUseCase) History(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	snapshots, err := uc.scores.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}
