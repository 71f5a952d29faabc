package domain

import "time"

type Exercise struct {
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty,omitempty"`
	Question    string `json:"question"`
	Explanation string `json:"explanation,omitempty"`
	Answer      string `json:"answer,omitempty"`
}

type Homework struct {
	Exercises []Exercise `json:"exercises"`
}

// PracticeSet is a worker-generated batch of extra exercises persisted for
// the dashboard homework queue.
type PracticeSet struct {
	ID        string     `json:"id"`
	ResultID  string     `json:"result_id"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"created_at"`
}

// FallbackExercise keeps the response contract at one exercise minimum
// when generation yields nothing.
func FallbackExercise() Exercise {
	return Exercise{
		Type:        "General",
		Difficulty:  "medium",
		Question:    "Write a short paragraph about your day, paying attention to complete sentences and punctuation.",
		Explanation: "Free writing practice keeps all five skill areas active while we gather more of your work.",
	}
}
