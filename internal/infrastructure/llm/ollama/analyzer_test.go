package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// ollamaStub serves /api/generate and wraps modelReply the way the real
// daemon does: the completion text sits in the "response" field.
func ollamaStub(t *testing.T, modelReply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model  string `json:"model"`
			Stream bool   `json:"stream"`
			Format string `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("streaming requested; client must send stream=false")
		}
		if req.Format != "json" {
			t.Errorf("format = %q, want json", req.Format)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": modelReply})
	}))
}

func TestAnalyzeParsesScoresAndFeedback(t *testing.T) {
	server := ollamaStub(t, `{"scores":{"Grammar":4,"vocabulary":3,"Unknown":5},"feedback":["fewer run-ons"]}`)
	defer server.Close()

	analyzer := NewAnalyzer(New(server.URL, "test-model", nil))
	scores, feedback, err := analyzer.Analyze(context.Background(), "An essay.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if scores[domain.CategoryGrammar] != 4 {
		t.Errorf("Grammar = %d, want 4", scores[domain.CategoryGrammar])
	}
	// Category match is case-insensitive.
	if scores[domain.CategoryVocabulary] != 3 {
		t.Errorf("Vocabulary = %d, want 3", scores[domain.CategoryVocabulary])
	}
	if _, ok := scores[domain.Category("Unknown")]; ok {
		t.Error("unknown category kept")
	}
	if len(feedback) != 1 || feedback[0] != "fewer run-ons" {
		t.Errorf("feedback = %v", feedback)
	}
}

func TestAnalyzeClampsOutOfRangeScores(t *testing.T) {
	server := ollamaStub(t, `{"scores":{"Grammar":9,"Spelling":-2}}`)
	defer server.Close()

	analyzer := NewAnalyzer(New(server.URL, "test-model", nil))
	scores, feedback, err := analyzer.Analyze(context.Background(), "An essay.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if scores[domain.CategoryGrammar] != 5 {
		t.Errorf("Grammar = %d, want clamped 5", scores[domain.CategoryGrammar])
	}
	if scores[domain.CategorySpelling] != 0 {
		t.Errorf("Spelling = %d, want clamped 0", scores[domain.CategorySpelling])
	}
	if feedback == nil {
		t.Error("feedback is nil, want empty slice")
	}
}

func TestAnalyzeTrimsSurroundingProse(t *testing.T) {
	server := ollamaStub(t, "Here is the result:\n{\"scores\":{\"Writing\":2}}\nHope this helps!")
	defer server.Close()

	analyzer := NewAnalyzer(New(server.URL, "test-model", nil))
	scores, _, err := analyzer.Analyze(context.Background(), "An essay.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if scores[domain.CategoryWriting] != 2 {
		t.Errorf("Writing = %d, want 2", scores[domain.CategoryWriting])
	}
}

func TestAnalyzeMalformedReplyFails(t *testing.T) {
	server := ollamaStub(t, "the essay is pretty good overall")
	defer server.Close()

	analyzer := NewAnalyzer(New(server.URL, "test-model", nil))
	if _, _, err := analyzer.Analyze(context.Background(), "An essay."); err == nil {
		t.Fatal("expected parse error on non-JSON reply")
	}
}

func TestAnalyzeUpstreamStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	analyzer := NewAnalyzer(New(server.URL, "test-model", nil))
	if _, _, err := analyzer.Analyze(context.Background(), "An essay."); err == nil {
		t.Fatal("expected error on 500 reply")
	}
}
