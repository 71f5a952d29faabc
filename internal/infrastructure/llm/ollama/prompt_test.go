package ollama

import (
	"strings"
	"testing"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

func TestAnalysisPromptCapsSnippetLength(t *testing.T) {
	long := strings.Repeat("word ", 3000)
	prompt := buildAnalysisPrompt(long)

	if len(prompt) > 6000+500 {
		t.Fatalf("prompt length = %d, snippet not capped", len(prompt))
	}
	if !strings.Contains(prompt, "Grammar") {
		t.Error("prompt omits the category list")
	}
}

func TestHomeworkPromptListsAllCategories(t *testing.T) {
	prompt := buildHomeworkPrompt(domain.ScoreSet{Grammar: 40, Spelling: 20})

	for _, c := range domain.Categories {
		if !strings.Contains(prompt, string(c)) {
			t.Errorf("prompt omits %s", c)
		}
	}
	if !strings.Contains(prompt, "Spelling: 20/100") {
		t.Error("prompt omits the current score values")
	}
}
