// Package scoring grades a submitted attempt against the exam that was
// presented and the section's passing threshold.
package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/examgen"
	"github.com/abhisek/certprep/internal/question"
)

// ErrMalformedAttempt indicates the scorer was handed inputs that do not
// describe a well-formed attempt. Unanswered questions are never an error.
var ErrMalformedAttempt = errors.New("malformed attempt")

// Thresholds maps section identifiers to passing fractions in (0, 1].
type Thresholds map[string]float64

// Unanswered is the explicit answer value for a skipped question. It is
// equivalent to leaving the answer out.
const Unanswered = "unanswered"

// Attempt is a candidate's submission for one generated exam. A missing
// key, an empty answer or Unanswered means the question was left
// unanswered.
type Attempt struct {
	ExamID      string
	Answers     map[string]string
	Elapsed     map[string]time.Duration
	SubmittedAt time.Time
}

// Scorer grades attempts. It keeps no state between calls.
type Scorer struct {
	table      *blueprint.Table
	thresholds Thresholds
}

// NewScorer creates a Scorer. The table orders the area breakdown; the
// thresholds decide pass/fail per section.
func NewScorer(table *blueprint.Table, thresholds Thresholds) *Scorer {
	return &Scorer{table: table, thresholds: thresholds}
}

// Score grades attempt against exam. Areas come from the questions
// themselves, so the breakdown reflects the exam as actually composed.
func (s *Scorer) Score(exam *examgen.GeneratedExam, attempt Attempt, repo question.Repository) (*Result, error) {
	if exam == nil {
		return nil, fmt.Errorf("%w: no exam", ErrMalformedAttempt)
	}
	if attempt.ExamID != exam.ID {
		return nil, fmt.Errorf("%w: attempt is for exam %q, not %q", ErrMalformedAttempt, attempt.ExamID, exam.ID)
	}
	if len(exam.Questions) == 0 {
		return nil, fmt.Errorf("%w: exam %q has no questions", ErrMalformedAttempt, exam.ID)
	}
	threshold, ok := s.thresholds[exam.Section]
	if !ok {
		return nil, fmt.Errorf("no passing threshold configured for section %q", exam.Section)
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("passing threshold for section %q must be in (0, 1], got %v", exam.Section, threshold)
	}

	tally := newAreaTally(s.blueprintFor(exam.Section))
	res := &Result{
		ExamID:      exam.ID,
		Section:     exam.Section,
		Total:       len(exam.Questions),
		Threshold:   threshold,
		SubmittedAt: attempt.SubmittedAt,
	}

	for _, id := range exam.Questions {
		q, ok := repo.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: exam question %q not in repository", ErrMalformedAttempt, id)
		}

		answer := attempt.Answers[id]
		if answer == Unanswered {
			answer = ""
		}
		correct := q.IsCorrect(answer)
		if answer == "" {
			res.Unanswered++
		}
		if correct {
			res.Correct++
		} else {
			res.Missed = append(res.Missed, id)
		}
		tally.add(q.Area, correct)
		res.TimeSpent += attempt.Elapsed[id]
	}

	res.Percentage = fraction(res.Correct, res.Total)
	res.Passed = res.Percentage >= threshold
	res.Areas = tally.results()
	return res, nil
}

// blueprintFor returns the section blueprint, or an empty one when the
// table cannot supply it; the breakdown then follows exam order.
func (s *Scorer) blueprintFor(section string) blueprint.Blueprint {
	if s.table == nil {
		return blueprint.Blueprint{Section: section}
	}
	bp, err := s.table.Lookup(section)
	if err != nil {
		return blueprint.Blueprint{Section: section}
	}
	return bp
}

// areaTally accumulates per-area counts in blueprint order, appending
// areas the blueprint does not know in first-seen order.
type areaTally struct {
	areas []AreaResult
	index map[string]int
}

func newAreaTally(bp blueprint.Blueprint) *areaTally {
	t := &areaTally{index: make(map[string]int, len(bp.Areas))}
	for _, a := range bp.Areas {
		t.index[a.Code] = len(t.areas)
		t.areas = append(t.areas, AreaResult{Code: a.Code, Label: a.DisplayName()})
	}
	return t
}

func (t *areaTally) add(code string, correct bool) {
	i, ok := t.index[code]
	if !ok {
		i = len(t.areas)
		t.index[code] = i
		t.areas = append(t.areas, AreaResult{Code: code, Label: code})
	}
	t.areas[i].Total++
	if correct {
		t.areas[i].Correct++
	}
}

func (t *areaTally) results() []AreaResult {
	out := make([]AreaResult, len(t.areas))
	for i, a := range t.areas {
		a.Percentage = fraction(a.Correct, a.Total)
		out[i] = a
	}
	return out
}

func fraction(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
