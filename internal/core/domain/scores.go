package domain

import "time"

type Category string

const (
	CategoryGrammar     Category = "Grammar"
	CategoryVocabulary  Category = "Vocabulary"
	CategoryWriting     Category = "Writing"
	CategorySpelling    Category = "Spelling"
	CategoryPunctuation Category = "Punctuation"
)

// Categories is the fixed presentation order used everywhere a score set
// is rendered or persisted.
var Categories = [5]Category{
	CategoryGrammar,
	CategoryVocabulary,
	CategoryWriting,
	CategorySpelling,
	CategoryPunctuation,
}

// ScoreSet carries one 0-100 score per category as an explicit record
// rather than a free-form map, so malformed upstream payloads surface at
// the boundary instead of deep inside the pipeline.
type ScoreSet struct {
	Grammar     int `json:"Grammar"`
	Vocabulary  int `json:"Vocabulary"`
	Writing     int `json:"Writing"`
	Spelling    int `json:"Spelling"`
	Punctuation int `json:"Punctuation"`
}

func (s ScoreSet) Get(c Category) int {
	switch c {
	case CategoryGrammar:
		return s.Grammar
	case CategoryVocabulary:
		return s.Vocabulary
	case CategoryWriting:
		return s.Writing
	case CategorySpelling:
		return s.Spelling
	case CategoryPunctuation:
		return s.Punctuation
	default:
		return 0
	}
}

func (s *ScoreSet) Set(c Category, score int) {
	switch c {
	case CategoryGrammar:
		s.Grammar = score
	case CategoryVocabulary:
		s.Vocabulary = score
	case CategoryWriting:
		s.Writing = score
	case CategorySpelling:
		s.Spelling = score
	case CategoryPunctuation:
		s.Punctuation = score
	}
}

// RescaleScores maps raw 1-5 category scores to the 0-100 scale. Missing
// categories count as 0.
func RescaleScores(raw map[Category]int) ScoreSet {
	var out ScoreSet
	for _, c := range Categories {
		out.Set(c, raw[c]*20)
	}
	return out
}

// Weakest returns the categories ordered worst-first; ties keep the fixed
// category order.
func (s ScoreSet) Weakest() []Category {
	out := make([]Category, len(Categories))
	copy(out, Categories[:])
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && s.Get(out[j]) < s.Get(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Analysis is the analyzer verdict for one document: rescaled scores plus
// free-text feedback lines.
type Analysis struct {
	Scores   ScoreSet `json:"scores"`
	Feedback []string `json:"feedback"`
}

// AnalysisResult is the persisted, immutable record of one completed
// upload run.
type AnalysisResult struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Text      string    `json:"text"`
	Scores    ScoreSet  `json:"scores"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreSnapshot is one persisted set of the five category scores. The
// current score set is the most recently created snapshot; there is no
// update-in-place and no user linkage.
type ScoreSnapshot struct {
	ID        string    `json:"id"`
	Scores    ScoreSet  `json:"scores"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubjectScore is the dashboard wire shape for one category.
type SubjectScore struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

func (s ScoreSet) Subjects() []SubjectScore {
	out := make([]SubjectScore, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, SubjectScore{Subject: string(c), Score: s.Get(c)})
	}
	return out
}
