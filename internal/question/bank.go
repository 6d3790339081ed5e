package question

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Bank is an in-memory Repository with precomputed indices.
type Bank struct {
	questions []Question
	byID      map[string]int
	bySection map[string][]int
	byArea    map[areaKey][]int
}

type areaKey struct {
	section string
	area    string
}

// NewBank builds a Bank from the given questions after checking their
// structure. Questions are copied; later changes to the input slice do
// not affect the Bank.
func NewBank(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })

	b := &Bank{
		questions: qs,
		byID:      make(map[string]int, len(qs)),
		bySection: make(map[string][]int),
		byArea:    make(map[areaKey][]int),
	}
	for i, q := range qs {
		b.byID[q.ID] = i
		b.bySection[q.Section] = append(b.bySection[q.Section], i)
		key := areaKey{q.Section, q.Area}
		b.byArea[key] = append(b.byArea[key], i)
	}
	return b, nil
}

// Section implements Repository.
func (b *Bank) Section(section string) []Question {
	return b.collect(b.bySection[section], "")
}

// Area implements Repository.
func (b *Bank) Area(section, area string, difficulty Difficulty) []Question {
	return b.collect(b.byArea[areaKey{section, area}], difficulty)
}

// Get implements Repository.
func (b *Bank) Get(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.clone(i), true
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Sections returns the distinct section identifiers in sorted order.
func (b *Bank) Sections() []string {
	sections := make([]string, 0, len(b.bySection))
	for s := range b.bySection {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// Stats counts questions by area and difficulty for one section.
func (b *Bank) Stats(section string) []AreaStats {
	byArea := make(map[string]*AreaStats)
	var order []string
	for _, i := range b.bySection[section] {
		q := b.questions[i]
		st, ok := byArea[q.Area]
		if !ok {
			st = &AreaStats{Area: q.Area, ByDifficulty: make(map[Difficulty]int)}
			byArea[q.Area] = st
			order = append(order, q.Area)
		}
		st.Total++
		st.ByDifficulty[q.Difficulty]++
	}
	sort.Strings(order)

	stats := make([]AreaStats, 0, len(order))
	for _, area := range order {
		stats = append(stats, *byArea[area])
	}
	return stats
}

// AreaStats summarizes one blueprint area of a section.
type AreaStats struct {
	Area         string
	Total        int
	ByDifficulty map[Difficulty]int
}

func (b *Bank) collect(idx []int, difficulty Difficulty) []Question {
	out := make([]Question, 0, len(idx))
	for _, i := range idx {
		if difficulty != "" && b.questions[i].Difficulty != difficulty {
			continue
		}
		out = append(out, b.clone(i))
	}
	return out
}

func (b *Bank) clone(i int) Question {
	q := b.questions[i]
	q.Options = slices.Clone(q.Options)
	return q
}

// validateQuestions checks every question and returns a combined error
// describing all problems found, or nil if the set is usable.
func validateQuestions(questions []Question) error {
	var errs []string

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question #%d: empty ID", i))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if q.Section == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty section", q.ID))
		}
		if q.Area == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty area", q.ID))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("question %q: unknown difficulty %q", q.ID, q.Difficulty))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %q: needs at least 2 options, got %d", q.ID, len(q.Options)))
		}

		optIDs := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if optIDs[o.ID] {
				errs = append(errs, fmt.Sprintf("question %q: duplicate option %q", q.ID, o.ID))
			}
			optIDs[o.ID] = true
		}
		if !optIDs[q.Correct] {
			errs = append(errs, fmt.Sprintf("question %q: correct answer %q is not an option", q.ID, q.Correct))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
