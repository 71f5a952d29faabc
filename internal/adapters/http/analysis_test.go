package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

func TestAnalyzeTextSuccess(t *testing.T) {
	fixture := routerFixture{analysis: analysisStub{analysis: &domain.Analysis{
		Scores:   domain.ScoreSet{Writing: 100},
		Feedback: []string{"nice flow"},
	}}}
	handler := fixture.handler()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"text":"An essay about summer."}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var analysis domain.Analysis
	if err := json.NewDecoder(res.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysis.Scores.Writing != 100 {
		t.Fatalf("analysis = %+v", analysis)
	}
}

func TestAnalyzeTextRequiresText(t *testing.T) {
	handler := routerFixture{}.handler()

	for _, body := range []string{`{}`, `{"text":"   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, res.Code)
		}
	}
}

func TestGenerateHomeworkSuccess(t *testing.T) {
	fixture := routerFixture{analysis: analysisStub{homework: &domain.Homework{
		Exercises: []domain.Exercise{{Type: "Grammar", Question: "Fix it."}},
	}}}
	handler := fixture.handler()

	req := httptest.NewRequest(http.MethodPost, "/api/generate-homework",
		strings.NewReader(`{"scores":{"Grammar":40,"Vocabulary":80,"Writing":80,"Spelling":80,"Punctuation":80}}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var resp struct {
		Homework domain.Homework `json:"homework"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Homework.Exercises) != 1 {
		t.Fatalf("homework = %+v", resp.Homework)
	}
}

func TestGenerateHomeworkRequiresScores(t *testing.T) {
	handler := routerFixture{}.handler()

	req := httptest.NewRequest(http.MethodPost, "/api/generate-homework", strings.NewReader(`{}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}
