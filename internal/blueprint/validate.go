package blueprint

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedBlueprint matches every *MalformedBlueprintError.
var ErrMalformedBlueprint = errors.New("malformed blueprint")

// MalformedBlueprintError lists everything wrong with one section's
// blueprint. Generation for that section is blocked until it is fixed.
type MalformedBlueprintError struct {
	Section  string
	Problems []string
}

func (e *MalformedBlueprintError) Error() string {
	return fmt.Sprintf("malformed blueprint for section %q:\n  %s", e.Section, strings.Join(e.Problems, "\n  "))
}

func (e *MalformedBlueprintError) Is(target error) bool {
	return target == ErrMalformedBlueprint
}

// Validate performs all structural checks on a blueprint.
// Returns a *MalformedBlueprintError describing every problem found.
func Validate(b Blueprint) error {
	var problems []string

	if b.Section == "" {
		problems = append(problems, "empty section identifier")
	}
	if len(b.Areas) == 0 {
		problems = append(problems, "no areas defined")
	}

	seen := make(map[string]bool, len(b.Areas))
	sum := 0.0
	for i, a := range b.Areas {
		if a.Code == "" {
			problems = append(problems, fmt.Sprintf("area #%d: empty code", i))
		} else if seen[a.Code] {
			problems = append(problems, fmt.Sprintf("duplicate area code: %q", a.Code))
		}
		seen[a.Code] = true

		if math.IsNaN(a.Weight) || a.Weight < 0 || a.Weight > 1 {
			problems = append(problems, fmt.Sprintf("area %q: weight must be in [0, 1], got %v", a.Code, a.Weight))
			continue
		}
		sum += a.Weight
	}

	if len(b.Areas) > 0 && math.Abs(sum-1) > WeightTolerance {
		problems = append(problems, fmt.Sprintf("area weights sum to %.6f, want 1", sum))
	}

	if len(problems) > 0 {
		return &MalformedBlueprintError{Section: b.Section, Problems: problems}
	}
	return nil
}
