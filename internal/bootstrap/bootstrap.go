package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/essaylab/essaylab-backend/internal/config"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
	"github.com/essaylab/essaylab-backend/internal/core/usecase"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/extractor/ocrcmd"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/llm/ollama"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/queue/nats"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/repository/postgres"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/resilience"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/storage/localfs"
	"github.com/essaylab/essaylab-backend/internal/infrastructure/token"
)

type App struct {
	Config config.Config

	Queue  ports.MessageQueue
	Tokens ports.TokenIssuer
	Health ports.DatabaseHealth

	AuthUC     *usecase.AuthUseCase
	PipelineUC *usecase.UploadPipelineUseCase
	AnalysisUC *usecase.AnalysisUseCase
	ScoreUC    *usecase.ScoreUseCase
	PracticeUC *usecase.PracticeUseCase

	db      *sql.DB
	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	users := postgres.NewUserRepository(db)
	results := postgres.NewResultRepository(db)
	scores := postgres.NewScoreRepository(db)
	practice := postgres.NewPracticeRepository(db)
	health := postgres.NewHealthRepository(db)

	uploads, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	guard := resilience.NewGuard(resilience.DefaultConfig())
	llmClient := ollama.New(cfg.OllamaURL, cfg.OllamaModel, guard)
	analyzer := ollama.NewAnalyzer(llmClient)
	generator := ollama.NewGenerator(llmClient)

	extractor := ocrcmd.New(cfg.OCRCommand, ocrcmd.Options{
		PDFTextLayer: cfg.PDFTextLayer,
	})

	tokens := token.NewJWT(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	pipelineUC := usecase.NewUploadPipelineUseCase(
		uploads,
		extractor,
		analyzer,
		generator,
		results,
		scores,
		queue,
		cfg.MaxUploadBytes,
		usecase.PipelineTimeouts{
			Extract:  cfg.ExtractTimeout(),
			Analyze:  cfg.AnalyzeTimeout(),
			Generate: cfg.GenerateTimeout(),
		},
	)

	return &App{
		Config: cfg,
		Queue:  queue,
		Tokens: tokens,
		Health: health,

		AuthUC:     usecase.NewAuthUseCase(users, tokens),
		PipelineUC: pipelineUC,
		AnalysisUC: usecase.NewAnalysisUseCase(analyzer, generator),
		ScoreUC:    usecase.NewScoreUseCase(scores),
		PracticeUC: usecase.NewPracticeUseCase(results, generator, practice, cfg.PracticeWeakestCount),

		db: db,
		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
