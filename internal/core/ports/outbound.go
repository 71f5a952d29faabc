package ports

import (
	"context"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// UserRepository persists and reads registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ResultRepository persists completed analysis results.
type ResultRepository interface {
	Save(ctx context.Context, result *domain.AnalysisResult) error
	GetByID(ctx context.Context, id string) (*domain.AnalysisResult, error)
}

// ScoreRepository persists score snapshots and reads the latest one.
type ScoreRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *domain.ScoreSnapshot) error
	LatestSnapshot(ctx context.Context) (*domain.ScoreSnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]domain.ScoreSnapshot, error)
}

// PracticeRepository persists worker-generated practice sets.
type PracticeRepository interface {
	Save(ctx context.Context, set *domain.PracticeSet) error
	Latest(ctx context.Context) (*domain.PracticeSet, error)
}

// UploadStore holds incoming files for the lifetime of one pipeline run.
type UploadStore interface {
	// Store writes the payload under a generated temporary name and renames
	// it to carry ext. Both paths are reported so cleanup can cover the
	// pre-rename file as well.
	Store(ctx context.Context, payload []byte, ext string) (tmpPath, finalPath string, err error)
	// Remove deletes one stored path; missing files are not an error.
	Remove(path string) error
}

// TextExtractor turns a stored file into extracted text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (domain.Extraction, error)
}

// TextAnalyzer scores extracted text per category on the raw 1-5 scale.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (map[domain.Category]int, []string, error)
}

// HomeworkGenerator produces practice exercises from a score set.
type HomeworkGenerator interface {
	Generate(ctx context.Context, scores domain.ScoreSet) ([]domain.Exercise, error)
}

// TokenIssuer signs and verifies bearer credentials.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (userID, email string, err error)
}

// DatabaseHealth answers the liveness probe with the database clock.
type DatabaseHealth interface {
	Now(ctx context.Context) (string, error)
}

// MessageQueue publishes/consumes completed-analysis events.
type MessageQueue interface {
	PublishResultReady(ctx context.Context, resultID string) error
	SubscribeResultReady(ctx context.Context, handler func(context.Context, string) error) error
}
