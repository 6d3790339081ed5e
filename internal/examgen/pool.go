package examgen

import (
	"math/rand/v2"
	"sort"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/question"
)

// pool tracks the eligible questions of one section during a batch.
type pool struct {
	codes []string
	areas [][]question.Question // per blueprint area, ID order, exclusions removed
	used  map[string]usage      // questions already placed in this batch
}

// usage is where a question was last placed: lower is less recently used.
type usage struct {
	exam int
	pos  int
}

func (u usage) before(o usage) bool {
	if u.exam != o.exam {
		return u.exam < o.exam
	}
	return u.pos < o.pos
}

func newPool(bp blueprint.Blueprint, repo question.Repository, exclude []string) *pool {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	p := &pool{
		codes: make([]string, len(bp.Areas)),
		areas: make([][]question.Question, len(bp.Areas)),
		used:  make(map[string]usage),
	}
	for i, a := range bp.Areas {
		p.codes[i] = a.Code
		qs := repo.Area(bp.Section, a.Code, "")
		sort.Slice(qs, func(x, y int) bool { return qs[x].ID < qs[y].ID })
		for _, q := range qs {
			if !skip[q.ID] {
				p.areas[i] = append(p.areas[i], q)
			}
		}
	}
	return p
}

// size is the number of eligible questions across all areas.
func (p *pool) size() int {
	n := 0
	for _, qs := range p.areas {
		n += len(qs)
	}
	return n
}

// exhaustedAreas names the areas whose eligible pool is below target.
func (p *pool) exhaustedAreas(bp blueprint.Blueprint, targets []int) []string {
	var out []string
	for i, a := range bp.Areas {
		if len(p.areas[i]) < targets[i] {
			out = append(out, a.Code)
		}
	}
	return out
}

// assembly is the outcome of building one exam.
type assembly struct {
	questions     []string
	counts        []int
	substitutions []Substitution
	reused        int
}

// assemble builds exam number exam and marks its questions used.
// Unused questions are preferred; used ones become eligible only when
// the unused pool cannot fill the exam, least recently used first.
// Once reuse starts every area may draw on its whole eligible pool, so
// the exam keeps its blueprint counts and the number reused can exceed
// the shortfall of unused questions.
func (p *pool) assemble(exam int, targets []int, tierWeights []float64, rng *rand.Rand) assembly {
	size := 0
	for _, t := range targets {
		size += t
	}

	fresh := make([][]question.Question, len(p.areas))
	stale := make([][]question.Question, len(p.areas))
	freshTotal := 0
	for i, qs := range p.areas {
		for _, q := range qs {
			if _, ok := p.used[q.ID]; ok {
				stale[i] = append(stale[i], q)
			} else {
				fresh[i] = append(fresh[i], q)
			}
		}
		freshTotal += len(fresh[i])
	}
	reuse := freshTotal < size

	caps := make([]int, len(p.areas))
	for i := range p.areas {
		caps[i] = len(fresh[i])
		if reuse {
			caps[i] += len(stale[i])
		}
	}
	counts, subs := allocate(p.codes, targets, caps)

	var picked []question.Question
	for i := range p.areas {
		cands := append([]question.Question(nil), fresh[i]...)
		rng.Shuffle(len(cands), func(x, y int) { cands[x], cands[y] = cands[y], cands[x] })
		if reuse {
			lru := append([]question.Question(nil), stale[i]...)
			sort.SliceStable(lru, func(x, y int) bool { return p.used[lru[x].ID].before(p.used[lru[y].ID]) })
			cands = append(cands, lru...)
		}
		picked = append(picked, pick(cands, counts[i], tierWeights)...)
	}
	rng.Shuffle(len(picked), func(x, y int) { picked[x], picked[y] = picked[y], picked[x] })

	a := assembly{
		questions:     make([]string, len(picked)),
		counts:        counts,
		substitutions: subs,
	}
	for pos, q := range picked {
		if _, ok := p.used[q.ID]; ok {
			a.reused++
		}
		a.questions[pos] = q.ID
	}
	for pos, q := range picked {
		p.used[q.ID] = usage{exam: exam, pos: pos}
	}
	return a
}

// allocate caps each area at its capacity and lends every missing unit
// from the area with the largest spare-capacity-to-target ratio, ties
// going to the earlier area. The caller guarantees the capacities cover
// the targets in total.
func allocate(codes []string, targets, caps []int) ([]int, []Substitution) {
	counts := make([]int, len(targets))
	for i := range targets {
		counts[i] = min(targets[i], caps[i])
	}

	var subs []Substitution
	subIndex := make(map[[2]int]int)
	for short := range targets {
		for deficit := targets[short] - counts[short]; deficit > 0; deficit-- {
			lender, best := -1, 0.0
			for i := range targets {
				spare := caps[i] - counts[i]
				if i == short || spare <= 0 {
					continue
				}
				ratio := float64(spare) / float64(max(targets[i], 1))
				if lender < 0 || ratio > best {
					lender, best = i, ratio
				}
			}
			if lender < 0 {
				break
			}
			counts[lender]++

			key := [2]int{short, lender}
			if k, ok := subIndex[key]; ok {
				subs[k].Count++
			} else {
				subIndex[key] = len(subs)
				subs = append(subs, Substitution{From: codes[short], To: codes[lender], Count: 1})
			}
		}
	}
	return counts, subs
}

// pick takes n questions from cands, which are in preference order.
// With tier weights the n slots are apportioned over difficulty tiers;
// a tier that runs short is topped up from the nearest tiers, easier
// first on ties.
func pick(cands []question.Question, n int, tierWeights []float64) []question.Question {
	n = min(n, len(cands))
	if tierWeights == nil {
		return cands[:n]
	}

	tiers := question.AllDifficulties()
	byTier := make([][]question.Question, len(tiers))
	for _, q := range cands {
		if r := q.Difficulty.Rank(); r >= 0 {
			byTier[r] = append(byTier[r], q)
		}
	}

	quotas := Apportion(tierWeights, n)
	taken := make([]int, len(tiers))
	for t := range tiers {
		taken[t] = min(quotas[t], len(byTier[t]))
	}
	short := make([]int, len(tiers))
	for t := range tiers {
		short[t] = quotas[t] - taken[t]
	}
	for t := range tiers {
		need := short[t]
		for _, nb := range nearestTiers(t, len(tiers)) {
			if need == 0 {
				break
			}
			take := min(need, len(byTier[nb])-taken[nb])
			taken[nb] += take
			need -= take
		}
	}

	out := make([]question.Question, 0, n)
	chosen := make(map[string]bool, n)
	for t := range tiers {
		for _, q := range byTier[t][:taken[t]] {
			out = append(out, q)
			chosen[q.ID] = true
		}
	}
	// Questions with an unrecognized tier only fill what is left.
	for _, q := range cands {
		if len(out) == n {
			break
		}
		if !chosen[q.ID] {
			out = append(out, q)
			chosen[q.ID] = true
		}
	}
	return out
}

// nearestTiers lists the other tiers by distance from t, lower first.
func nearestTiers(t, k int) []int {
	var out []int
	for d := 1; d < k; d++ {
		if t-d >= 0 {
			out = append(out, t-d)
		}
		if t+d < k {
			out = append(out, t+d)
		}
	}
	return out
}
