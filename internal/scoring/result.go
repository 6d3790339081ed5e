package scoring

import (
	"fmt"
	"math"
	"time"
)

// Result is the graded outcome of one attempt. Percentages are full
// precision fractions in [0, 1]; round only for display.
type Result struct {
	ExamID      string        `json:"exam_id"`
	Section     string        `json:"section"`
	Correct     int           `json:"correct"`
	Total       int           `json:"total"`
	Percentage  float64       `json:"percentage"`
	Threshold   float64       `json:"threshold"`
	Passed      bool          `json:"passed"`
	Areas       []AreaResult  `json:"areas"`
	Missed      []string      `json:"missed"`
	Unanswered  int           `json:"unanswered"`
	TimeSpent   time.Duration `json:"time_spent"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// AreaResult is the tally for one blueprint area.
type AreaResult struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// FormatPercent renders a fraction as a percentage with one decimal,
// truncating so that a failing 0.69996 shows as 69.9% rather than 70.0%.
func FormatPercent(frac float64) string {
	tenths := math.Floor(frac*1000 + 1e-9)
	return fmt.Sprintf("%.1f%%", tenths/10)
}

// Verdict returns "PASS" or "FAIL".
func (r *Result) Verdict() string {
	if r.Passed {
		return "PASS"
	}
	return "FAIL"
}
