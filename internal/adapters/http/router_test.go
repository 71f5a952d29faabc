package httpadapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/essaylab/essaylab-backend/internal/config"
	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type authStub struct {
	result *domain.AuthResult
	users  []domain.User
	err    error
}

func (s authStub) Register(context.Context, string, string, string, string) (*domain.AuthResult, error) {
	return s.result, s.err
}

func (s authStub) Login(context.Context, string, string) (*domain.AuthResult, error) {
	return s.result, s.err
}

func (s authStub) Profile(context.Context, string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result.User, nil
}

func (s authStub) ListUsers(context.Context) ([]domain.User, error) {
	return s.users, s.err
}

type pipelineStub struct {
	outcome *domain.UploadOutcome
	err     error
}

func (s pipelineStub) Run(context.Context, string, string, int64, io.Reader) (*domain.UploadOutcome, error) {
	return s.outcome, s.err
}

type analysisStub struct {
	analysis *domain.Analysis
	homework *domain.Homework
	err      error
}

func (s analysisStub) Analyze(context.Context, string) (*domain.Analysis, error) {
	return s.analysis, s.err
}

func (s analysisStub) GenerateHomework(context.Context, domain.ScoreSet) (*domain.Homework, error) {
	return s.homework, s.err
}

type scoresStub struct {
	subjects  []domain.SubjectScore
	snapshots []domain.ScoreSnapshot
	err       error
}

func (s scoresStub) Latest(context.Context) ([]domain.SubjectScore, error) {
	return s.subjects, s.err
}

func (s scoresStub) History(context.Context, int) ([]domain.ScoreSnapshot, error) {
	return s.snapshots, s.err
}

type practiceStub struct {
	set *domain.PracticeSet
	err error
}

func (s practiceStub) BuildForResult(context.Context, string) error { return s.err }

func (s practiceStub) LatestSet(context.Context) (*domain.PracticeSet, error) {
	return s.set, s.err
}

type tokensStub struct {
	email string
	err   error
}

func (s tokensStub) Issue(string, string) (string, error) { return "token", nil }

func (s tokensStub) Verify(string) (string, string, error) {
	return "u1", s.email, s.err
}

type healthStub struct {
	now string
	err error
}

func (s healthStub) Now(context.Context) (string, error) { return s.now, s.err }

type routerFixture struct {
	cfg      config.Config
	auth     authStub
	pipeline pipelineStub
	analysis analysisStub
	scores   scoresStub
	practice practiceStub
	tokens   tokensStub
	health   healthStub
}

func (f routerFixture) handler() http.Handler {
	return NewRouter(
		f.cfg, f.auth, f.pipeline, f.analysis,
		f.scores, f.practice, f.tokens, f.health,
	).Handler()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := routerFixture{}.handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestLivenessServesDatabaseTimestamp(t *testing.T) {
	handler := routerFixture{health: healthStub{now: "2026-08-29 10:00:00+00"}}.handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Body.String() != "2026-08-29 10:00:00+00" {
		t.Fatalf("body = %q", res.Body.String())
	}
	if ct := res.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestLivenessDatabaseDown(t *testing.T) {
	handler := routerFixture{health: healthStub{err: errors.New("connection refused")}}.handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	handler := routerFixture{}.handler()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestRequestIDIsEchoedAndGenerated(t *testing.T) {
	handler := routerFixture{}.handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "given-id")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if got := res.Header().Get(requestIDHeader); got != "given-id" {
		t.Fatalf("request id = %q, want echo of given-id", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatal("no request id generated")
	}
}
