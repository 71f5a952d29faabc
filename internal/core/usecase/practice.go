package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
)

// PracticeUseCase builds extended exercise sets for the dashboard homework
// queue. It runs in the worker, off the request path: the upload response
// carries its own inline homework regardless of what happens here.
type PracticeUseCase struct {
	results   ports.ResultRepository
	generator ports.HomeworkGenerator
	practice  ports.PracticeRepository

	weakestCount int
}

func NewPracticeUseCase(
	results ports.ResultRepository,
	generator ports.HomeworkGenerator,
	practice ports.PracticeRepository,
	weakestCount int,
) *PracticeUseCase {
	if weakestCount <= 0 || weakestCount > len(domain.Categories) {
		weakestCount = 3
	}
	return &PracticeUseCase{
		results:      results,
		generator:    generator,
		practice:     practice,
		weakestCount: weakestCount,
	}
}

func (uc *PracticeUseCase) BuildForResult(ctx context.Context, resultID string) error {
	result, err := uc.results.GetByID(ctx, resultID)
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}

	// Bias generation toward the weakest categories by zeroing out the
	// strong ones; the generator targets low scores.
	focus := domain.ScoreSet{}
	for _, c := range domain.Categories {
		focus.Set(c, 100)
	}
	for _, c := range result.Scores.Weakest()[:uc.weakestCount] {
		focus.Set(c, result.Scores.Get(c))
	}

	exercises, err := uc.generator.Generate(ctx, focus)
	if err != nil {
		return fmt.Errorf("generate practice set: %w", err)
	}
	if len(exercises) == 0 {
		exercises = []domain.Exercise{domain.FallbackExercise()}
	}

	set := &domain.PracticeSet{
		ID:        uuid.NewString(),
		ResultID:  result.ID,
		Exercises: exercises,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.practice.Save(ctx, set); err != nil {
		return fmt.Errorf("save practice set: %w", err)
	}
	return nil
}

func (uc *PracticeUseCase) LatestSet(ctx context.Context) (*domain.PracticeSet, error) {
	set, err := uc.practice.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest practice set: %w", err)
	}
	return set, nil
}
