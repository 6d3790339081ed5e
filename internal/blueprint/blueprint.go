// Package blueprint models exam blueprints: the per-section topic areas
// and the share of questions each one must contribute.
package blueprint

import (
	"errors"
	"fmt"
)

// WeightTolerance bounds how far a section's weight sum may drift from 1.
const WeightTolerance = 1e-6

// ErrUnknownSection indicates a table has no blueprint for a section.
var ErrUnknownSection = errors.New("unknown section")

// Area is a topic area within a section and its target share of questions.
type Area struct {
	Code   string  `json:"code"`
	Label  string  `json:"label,omitempty"`
	Weight float64 `json:"weight"`
}

// DisplayName returns the label, falling back to the code.
func (a Area) DisplayName() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Code
}

// Blueprint is the ordered area list for one exam section.
type Blueprint struct {
	Section string `json:"section"`
	Label   string `json:"label,omitempty"`
	Areas   []Area `json:"areas"`
}

// Weights returns the area weights in blueprint order.
func (b Blueprint) Weights() []float64 {
	w := make([]float64, len(b.Areas))
	for i, a := range b.Areas {
		w[i] = a.Weight
	}
	return w
}

// Area returns the area with the given code.
func (b Blueprint) Area(code string) (Area, bool) {
	i := b.Index(code)
	if i < 0 {
		return Area{}, false
	}
	return b.Areas[i], true
}

// Index returns the position of the area with the given code, or -1.
func (b Blueprint) Index(code string) int {
	for i, a := range b.Areas {
		if a.Code == code {
			return i
		}
	}
	return -1
}

// Table is an ordered set of section blueprints. Sections whose
// blueprint failed validation stay in the table but cannot be looked up
// until corrected.
type Table struct {
	order     []string
	valid     map[string]Blueprint
	malformed map[string]error
}

// NewTable validates each blueprint and builds a Table. A malformed
// blueprint only blocks its own section; use Err to report problems.
func NewTable(blueprints ...Blueprint) *Table {
	t := &Table{
		valid:     make(map[string]Blueprint, len(blueprints)),
		malformed: make(map[string]error),
	}
	for _, b := range blueprints {
		_, dup := t.valid[b.Section]
		_, dupBad := t.malformed[b.Section]
		if !dup && !dupBad {
			t.order = append(t.order, b.Section)
		}

		if dup || dupBad {
			t.malformed[b.Section] = &MalformedBlueprintError{
				Section:  b.Section,
				Problems: []string{"section defined more than once"},
			}
			delete(t.valid, b.Section)
			continue
		}
		if err := Validate(b); err != nil {
			t.malformed[b.Section] = err
			continue
		}
		b.Areas = append([]Area(nil), b.Areas...)
		t.valid[b.Section] = b
	}
	return t
}

// Lookup returns the blueprint for a section. It returns an error
// matching ErrUnknownSection when the section is absent and a
// *MalformedBlueprintError when the section failed validation.
func (t *Table) Lookup(section string) (Blueprint, error) {
	if err, ok := t.malformed[section]; ok {
		return Blueprint{}, err
	}
	b, ok := t.valid[section]
	if !ok {
		return Blueprint{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	b.Areas = append([]Area(nil), b.Areas...)
	return b, nil
}

// Sections returns every section in table order, including malformed ones.
func (t *Table) Sections() []string {
	return append([]string(nil), t.order...)
}

// Blueprints returns the usable blueprints in table order.
func (t *Table) Blueprints() []Blueprint {
	out := make([]Blueprint, 0, len(t.valid))
	for _, s := range t.order {
		if b, ok := t.valid[s]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Err returns the joined validation errors of all malformed sections,
// or nil when every section is usable.
func (t *Table) Err() error {
	var errs []error
	for _, s := range t.order {
		if err, ok := t.malformed[s]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
