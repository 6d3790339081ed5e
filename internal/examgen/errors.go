package examgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig matches every *InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid generation config")

	// ErrInsufficientQuestions matches every *InsufficientQuestionsError.
	ErrInsufficientQuestions = errors.New("insufficient questions")
)

// InvalidConfigError indicates a malformed or out-of-range Config field.
// Nothing is generated; the caller can correct the input and retry.
type InvalidConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid config: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error { return e.Err }

func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// InsufficientQuestionsError indicates the section cannot fill even one
// exam of the requested size once exclusions are applied. The whole
// batch fails rather than returning an under-sized exam.
type InsufficientQuestionsError struct {
	Section   string
	Areas     []string // blueprint areas whose eligible pool is below target
	Required  int
	Available int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("insufficient questions for section %q: need %d, have %d (exhausted areas: %s)",
		e.Section, e.Required, e.Available, strings.Join(e.Areas, ", "))
}

func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}

// PoolExhausted is a warning, not an error: exam ExamIndex could only be
// filled by reusing Reused questions already placed in earlier exams of
// the same batch.
type PoolExhausted struct {
	ExamIndex int
	Reused    int
}

func (w PoolExhausted) String() string {
	return fmt.Sprintf("pool exhausted: exam %d reuses %d question(s) from earlier exams", w.ExamIndex+1, w.Reused)
}
