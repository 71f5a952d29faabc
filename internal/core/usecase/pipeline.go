package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
)

// PipelineState tracks the upload orchestration. Transitions are strictly
// sequential; any failure short-circuits to StateFailed.
type PipelineState string

const (
	StateReceived          PipelineState = "received"
	StateValidated         PipelineState = "validated"
	StateExtracted         PipelineState = "extracted"
	StateAnalyzed          PipelineState = "analyzed"
	StateHomeworkGenerated PipelineState = "homework_generated"
	StatePersisted         PipelineState = "persisted"
	StateResponded         PipelineState = "responded"
	StateFailed            PipelineState = "failed"
)

var extensionByMIME = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

type PipelineTimeouts struct {
	Extract  time.Duration
	Analyze  time.Duration
	Generate time.Duration
}

func (t PipelineTimeouts) normalize() PipelineTimeouts {
	out := t
	if out.Extract <= 0 {
		out.Extract = 2 * time.Minute
	}
	if out.Analyze <= 0 {
		out.Analyze = 90 * time.Second
	}
	if out.Generate <= 0 {
		out.Generate = 90 * time.Second
	}
	return out
}

type UploadPipelineUseCase struct {
	store     ports.UploadStore
	extractor ports.TextExtractor
	analyzer  ports.TextAnalyzer
	generator ports.HomeworkGenerator
	results   ports.ResultRepository
	scores    ports.ScoreRepository
	queue     ports.MessageQueue

	maxUploadBytes int64
	timeouts       PipelineTimeouts
	observer       PipelineObserver
}

// PipelineObserver receives state transitions; metrics hang off it.
type PipelineObserver interface {
	PipelineTransition(state PipelineState, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) PipelineTransition(PipelineState, time.Duration) {}

func NewUploadPipelineUseCase(
	store ports.UploadStore,
	extractor ports.TextExtractor,
	analyzer ports.TextAnalyzer,
	generator ports.HomeworkGenerator,
	results ports.ResultRepository,
	scores ports.ScoreRepository,
	queue ports.MessageQueue,
	maxUploadBytes int64,
	timeouts PipelineTimeouts,
) *UploadPipelineUseCase {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &UploadPipelineUseCase{
		store:          store,
		extractor:      extractor,
		analyzer:       analyzer,
		generator:      generator,
		results:        results,
		scores:         scores,
		queue:          queue,
		maxUploadBytes: maxUploadBytes,
		timeouts:       timeouts.normalize(),
		observer:       nopObserver{},
	}
}

// SetObserver wires pipeline metrics; nil restores the no-op observer.
func (uc *UploadPipelineUseCase) SetObserver(observer PipelineObserver) {
	if observer == nil {
		uc.observer = nopObserver{}
		return
	}
	uc.observer = observer
}

// Run drives one file through validate -> extract -> analyze -> generate ->
// persist. Either the full composite comes back or an error does; there is
// no partial success and no retry at any stage.
func (uc *UploadPipelineUseCase) Run(
	ctx context.Context,
	filename, mimeType string,
	size int64,
	body io.Reader,
) (*domain.UploadOutcome, error) {
	start := time.Now()
	state := StateReceived
	uc.observer.PipelineTransition(state, 0)

	fail := func(err error) (*domain.UploadOutcome, error) {
		slog.Warn("pipeline_failed",
			"filename", filename,
			"last_state", string(state),
			"elapsed_ms", float64(time.Since(start).Microseconds())/1000.0,
			"error", err,
		)
		uc.observer.PipelineTransition(StateFailed, time.Since(start))
		return nil, err
	}
	advance := func(next PipelineState) {
		state = next
		uc.observer.PipelineTransition(next, time.Since(start))
	}

	payload, ext, err := uc.validate(mimeType, size, body)
	if err != nil {
		return fail(err)
	}
	advance(StateValidated)

	tmpPath, finalPath, err := uc.store.Store(ctx, payload, ext)
	// Cleanup covers both the pre-rename and renamed paths, each deletion
	// guarded so one failure cannot block the other.
	defer uc.cleanup(tmpPath, finalPath)
	if err != nil {
		return fail(fmt.Errorf("store upload: %w", err))
	}

	extraction, err := uc.extract(ctx, finalPath)
	if err != nil {
		return fail(err)
	}
	advance(StateExtracted)

	analysis, err := uc.analyze(ctx, extraction.Text)
	if err != nil {
		return fail(err)
	}
	advance(StateAnalyzed)

	homework, err := uc.generateHomework(ctx, analysis.Scores)
	if err != nil {
		return fail(err)
	}
	advance(StateHomeworkGenerated)

	resultID, err := uc.persist(ctx, filename, extraction.Text, analysis.Scores)
	if err != nil {
		return fail(err)
	}
	advance(StatePersisted)

	// Practice-set generation is an enrichment; a dead broker must not fail
	// an otherwise completed run.
	if err := uc.queue.PublishResultReady(ctx, resultID); err != nil {
		slog.Warn("publish_result_ready", "result_id", resultID, "error", err)
	}

	advance(StateResponded)
	return &domain.UploadOutcome{
		Text:     extraction.Text,
		Analysis: *analysis,
		Homework: domain.Homework{Exercises: homework},
	}, nil
}

func (uc *UploadPipelineUseCase) validate(mimeType string, size int64, body io.Reader) ([]byte, string, error) {
	ext, ok := extensionByMIME[normalizeMIME(mimeType)]
	if !ok {
		return nil, "", domain.WrapError(domain.ErrFileType, "validate upload",
			fmt.Errorf("mime type %q not allowed", mimeType))
	}
	if size > uc.maxUploadBytes {
		return nil, "", domain.WrapError(domain.ErrFileTooLarge, "validate upload",
			fmt.Errorf("declared size %d exceeds limit %d", size, uc.maxUploadBytes))
	}

	payload, err := io.ReadAll(io.LimitReader(body, uc.maxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(payload)) > uc.maxUploadBytes {
		return nil, "", domain.WrapError(domain.ErrFileTooLarge, "validate upload",
			fmt.Errorf("body exceeds limit %d", uc.maxUploadBytes))
	}
	if len(payload) == 0 {
		return nil, "", domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("empty file"))
	}
	return payload, ext, nil
}

func (uc *UploadPipelineUseCase) extract(ctx context.Context, path string) (domain.Extraction, error) {
	stageCtx, cancel := context.WithTimeout(ctx, uc.timeouts.Extract)
	defer cancel()

	extraction, err := uc.extractor.Extract(stageCtx, path)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(extraction.Text) == "" {
		return domain.Extraction{}, domain.WrapError(domain.ErrEmptyExtraction, "extract text",
			errors.New("extractor returned no text"))
	}
	return extraction, nil
}

func (uc *UploadPipelineUseCase) analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	stageCtx, cancel := context.WithTimeout(ctx, uc.timeouts.Analyze)
	defer cancel()

	raw, feedback, err := uc.analyzer.Analyze(stageCtx, text)
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

func (uc *UploadPipelineUseCase) generateHomework(ctx context.Context, scores domain.ScoreSet) ([]domain.Exercise, error) {
	stageCtx, cancel := context.WithTimeout(ctx, uc.timeouts.Generate)
	defer cancel()

	exercises, err := uc.generator.Generate(stageCtx, scores)
	if err != nil {
		return nil, fmt.Errorf("generate homework: %w", err)
	}
	if len(exercises) == 0 {
		exercises = []domain.Exercise{domain.FallbackExercise()}
	}
	return exercises, nil
}

func (uc *UploadPipelineUseCase) persist(ctx context.Context, filename, text string, scores domain.ScoreSet) (string, error) {
	now := time.Now().UTC()
	result := &domain.AnalysisResult{
		ID:        uuid.NewString(),
		Filename:  filename,
		Text:      text,
		Scores:    scores,
		CreatedAt: now,
	}
	if err := uc.results.Save(ctx, result); err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}

	snapshot := &domain.ScoreSnapshot{
		ID:        uuid.NewString(),
		Scores:    scores,
		UpdatedAt: now,
	}
	if err := uc.scores.SaveSnapshot(ctx, snapshot); err != nil {
		return "", fmt.Errorf("save score snapshot: %w", err)
	}
	return result.ID, nil
}

func (uc *UploadPipelineUseCase) cleanup(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := uc.store.Remove(path); err != nil {
			slog.Warn("cleanup_upload_file", "path", path, "error", err)
		}
	}
}

func normalizeMIME(mimeType string) string {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "image/jpg" {
		return "image/jpeg"
	}
	return mimeType
}
