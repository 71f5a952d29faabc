package ollama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// Generator produces practice exercises targeted at low category scores.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Generate(ctx context.Context, scores domain.ScoreSet) ([]domain.Exercise, error) {
	respText, err := g.client.generateJSON(ctx, "llm.homework", buildHomeworkPrompt(scores))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Exercises []domain.Exercise `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(respText)), &parsed); err != nil {
		return nil, fmt.Errorf("parse homework json: %w", err)
	}

	var exercises []domain.Exercise
	for _, ex := range parsed.Exercises {
		if ex.Question == "" {
			continue
		}
		if ex.Type == "" {
			ex.Type = "General"
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}
