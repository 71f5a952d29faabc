package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// Analyzer scores essay text per category on the raw 1-5 scale.
type Analyzer struct {
	client *Client
}

func NewAnalyzer(client *Client) *Analyzer {
	return &Analyzer{client: client}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (map[domain.Category]int, []string, error) {
	respText, err := a.client.generateJSON(ctx, "llm.analyze", buildAnalysisPrompt(text))
	if err != nil {
		return nil, nil, err
	}

	var parsed struct {
		Scores   map[string]int `json:"scores"`
		Feedback []string       `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &parsed); err != nil {
		return nil, nil, fmt.Errorf("parse analysis json: %w", err)
	}

	scores := make(map[domain.Category]int, len(domain.Categories))
	for key, value := range parsed.Scores {
		category, ok := matchCategory(key)
		if !ok {
			continue
		}
		scores[category] = clampRawScore(value)
	}
	if parsed.Feedback == nil {
		parsed.Feedback = []string{}
	}
	return scores, parsed.Feedback, nil
}

func matchCategory(key string) (domain.Category, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, c := range domain.Categories {
		if key == strings.ToLower(string(c)) {
			return c, true
		}
	}
	return "", false
}

func clampRawScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 5 {
		return 5
	}
	return score
}
