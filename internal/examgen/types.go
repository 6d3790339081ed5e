package examgen

import "time"

// AreaCount reports how many questions of one blueprint area an exam
// was meant to carry and how many it actually carries.
type AreaCount struct {
	Area   string `json:"area"`
	Target int    `json:"target"`
	Actual int    `json:"actual"`
}

// Substitution records Count questions taken from area To because area
// From could not supply its target.
type Substitution struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// GeneratedExam is one assembled exam. It is immutable once returned;
// the session layer and the scorer both refer to it by ID.
type GeneratedExam struct {
	ID            string         `json:"id"`
	Section       string         `json:"section"`
	Index         int            `json:"index"`
	Questions     []string       `json:"questions"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Areas         []AreaCount    `json:"areas"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
}

// Len returns the number of questions in the exam.
func (e *GeneratedExam) Len() int {
	return len(e.Questions)
}

// Batch is the output of one Generate call.
type Batch struct {
	Seed     uint64          `json:"seed"`
	Section  string          `json:"section"`
	Exams    []GeneratedExam `json:"exams"`
	Warnings []PoolExhausted `json:"warnings,omitempty"`
}

// QuestionIDs returns every question ID in the batch, in exam order.
// IDs reused across exams appear once per exam.
func (b *Batch) QuestionIDs() []string {
	var ids []string
	for _, e := range b.Exams {
		ids = append(ids, e.Questions...)
	}
	return ids
}
