package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
)

// AnalysisUseCase exposes the analyzer and the homework generator as
// standalone operations, outside the upload pipeline.
type AnalysisUseCase struct {
	analyzer  ports.TextAnalyzer
	generator ports.HomeworkGenerator
}

func NewAnalysisUseCase(analyzer ports.TextAnalyzer, generator ports.HomeworkGenerator) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyzer:  analyzer,
		generator: generator,
	}
}

func (uc *AnalysisUseCase) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", errors.New("text is required"))
	}

	raw, feedback, err := uc.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	if feedback == nil {
		feedback = []string{}
	}
	return &domain.Analysis{
		Scores:   domain.RescaleScores(raw),
		Feedback: feedback,
	}, nil
}

func (uc *AnalysisUseCase) GenerateHomework(ctx context.Context, scores domain.ScoreSet) (*domain.Homework, error) {
	exercises, err := uc.generator.Generate(ctx, scores)
	if err != nil {
		return nil, fmt.Errorf("generate homework: %w", err)
	}
	if len(exercises) == 0 {
		exercises = []domain.Exercise{domain.FallbackExercise()}
	}
	return &domain.Homework{Exercises: exercises}, nil
}
