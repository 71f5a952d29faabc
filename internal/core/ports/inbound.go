package ports

import (
	"context"
	"io"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// Authenticator is the inbound contract for registration and login.
type Authenticator interface {
	Register(ctx context.Context, name, email, password, confirmPassword string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UploadPipeline is the inbound contract for the upload orchestration: one
// file in, the full composite result out.
type UploadPipeline interface {
	Run(ctx context.Context, filename, mimeType string, size int64, body io.Reader) (*domain.UploadOutcome, error)
}

// AnalysisService exposes the analyzer and the homework generator outside
// the upload pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, text string) (*domain.Analysis, error)
	GenerateHomework(ctx context.Context, scores domain.ScoreSet) (*domain.Homework, error)
}

// ScoreReader serves dashboard score lookups.
type ScoreReader interface {
	Latest(ctx context.Context) ([]domain.SubjectScore, error)
	History(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error)
}

// PracticeService builds and reads asynchronous practice sets.
type PracticeService interface {
	BuildForResult(ctx context.Context, resultID string) error
	LatestSet(ctx context.Context) (*domain.PracticeSet, error)
}
