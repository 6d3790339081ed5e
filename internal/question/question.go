package question

import "strings"

// Difficulty is the difficulty tier a question is tagged with.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns all tiers from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
	}
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	return d.Rank() >= 0
}

// Rank returns the position of d in AllDifficulties, or -1 if unknown.
func (d Difficulty) Rank() int {
	for i, tier := range AllDifficulties() {
		if tier == d {
			return i
		}
	}
	return -1
}

// ParseDifficulty converts a case-insensitive tier name.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// Option is one selectable answer of a multiple-choice question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single authored multiple-choice item. Questions are
// immutable once loaded into a Repository.
type Question struct {
	ID          string     `json:"id"`
	Section     string     `json:"section"`
	Area        string     `json:"area"`
	Difficulty  Difficulty `json:"difficulty"`
	Prompt      string     `json:"prompt"`
	Options     []Option   `json:"options"`
	Correct     string     `json:"correct"`
	Explanation string     `json:"explanation,omitempty"`
}

// IsCorrect reports whether answer selects the correct option.
// An empty answer is never correct.
func (q Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.Correct
}

// Option returns the option with the given ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Repository provides read-only access to the question pool. Slices
// returned by a Repository are ordered by question ID and owned by the
// caller.
type Repository interface {
	// Section returns all questions for a section.
	Section(section string) []Question

	// Area returns the questions for a section and blueprint area. An
	// empty difficulty matches every tier.
	Area(section, area string, difficulty Difficulty) []Question

	// Get returns the question with the given ID.
	Get(id string) (Question, bool)
}
