package ollama

import (
	"fmt"
	"strings"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

func buildAnalysisPrompt(text string) string {
	const maxSnippet = 6000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	return `You are a writing tutor scoring a student essay.
Return strict JSON object with keys:
scores (object with integer keys Grammar, Vocabulary, Writing, Spelling, Punctuation, each from 1 to 5),
feedback (array of short strings, one actionable observation each).
No markdown, no extra keys.

Essay:
` + snippet
}

func buildHomeworkPrompt(scores domain.ScoreSet) string {
	var lines strings.Builder
	for _, c := range domain.Categories {
		lines.WriteString(fmt.Sprintf("%s: %d/100\n", c, scores.Get(c)))
	}

	return fmt.Sprintf(`You are a writing tutor creating practice homework.
Focus on the categories with the lowest scores below.
Return strict JSON object with key exercises: array of objects with keys
type (one of Grammar, Vocabulary, Writing, Spelling, Punctuation, General),
difficulty (easy, medium or hard), question (string), explanation (string), answer (string).
Three to five exercises. No markdown, no extra keys.

Current scores:
%s`, lines.String())
}
