package examgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/question"
)

// Config describes one generation batch.
type Config struct {
	Section          string
	ExamCount        int
	QuestionsPerExam int

	// DifficultyTargets optionally stratifies each area's selection by
	// tier. Fractions must sum to 1.
	DifficultyTargets map[question.Difficulty]float64

	// Exclude lists question IDs that must not be selected.
	Exclude []string

	// Seed fixes the random stream. Zero draws a seed from the
	// generator's seed source; the seed used is reported on the Batch.
	Seed uint64
}

// validate checks the range of every field that does not depend on the
// blueprint table.
func (c Config) validate() error {
	if strings.TrimSpace(c.Section) == "" {
		return &InvalidConfigError{Field: "section", Reason: "must not be empty"}
	}
	if c.ExamCount < 1 {
		return &InvalidConfigError{Field: "exam count", Reason: fmt.Sprintf("must be >= 1, got %d", c.ExamCount)}
	}
	if c.QuestionsPerExam < 1 {
		return &InvalidConfigError{Field: "questions per exam", Reason: fmt.Sprintf("must be >= 1, got %d", c.QuestionsPerExam)}
	}

	if len(c.DifficultyTargets) == 0 {
		return nil
	}
	sum := 0.0
	for d, frac := range c.DifficultyTargets {
		if !d.Valid() {
			return &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("unknown tier %q", d)}
		}
		if math.IsNaN(frac) || frac < 0 || frac > 1 {
			return &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("tier %q fraction must be in [0, 1], got %v", d, frac)}
		}
		sum += frac
	}
	if math.Abs(sum-1) > blueprint.WeightTolerance {
		return &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("fractions sum to %.6f, want 1", sum)}
	}
	return nil
}

// tierWeights returns the difficulty targets in canonical tier order.
func (c Config) tierWeights() []float64 {
	tiers := question.AllDifficulties()
	w := make([]float64, len(tiers))
	for i, d := range tiers {
		w[i] = c.DifficultyTargets[d]
	}
	return w
}

// ParseDifficultyTargets parses "easy=0.3,medium=0.5,hard=0.2". An empty
// string yields nil (no stratification).
func ParseDifficultyTargets(s string) (map[question.Difficulty]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	targets := make(map[question.Difficulty]float64)
	for _, part := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("expected tier=fraction, got %q", part)}
		}
		d, ok := question.ParseDifficulty(name)
		if !ok {
			return nil, &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("unknown tier %q", strings.TrimSpace(name))}
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, &InvalidConfigError{Field: "difficulty targets", Reason: fmt.Sprintf("tier %q", d), Err: err}
		}
		targets[d] = frac
	}
	return targets, nil
}
