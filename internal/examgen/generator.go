// Package examgen assembles practice exams from a question repository so
// that each exam follows its section's blueprint weights.
package examgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/question"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator builds exam batches. It holds only immutable configuration
// and is safe for concurrent use.
type Generator struct {
	table *blueprint.Table
	now   func() time.Time
	seeds func() (uint64, error)
	ids   io.Reader
	log   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes every batch that does not carry its own seed use seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seeds = func() (uint64, error) { return seed, nil }
	}
}

// WithSeedSource replaces the default crypto/rand seed source.
func WithSeedSource(fn func() (uint64, error)) Option {
	return func(g *Generator) { g.seeds = fn }
}

// WithIDSource sets the entropy behind exam IDs. Exam IDs are drawn
// apart from the seeded stream so a replayed seed never collides with
// an exam already stored.
func WithIDSource(r io.Reader) Option {
	return func(g *Generator) { g.ids = r }
}

// WithClock sets the clock used for GeneratedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator for the sections in table.
func New(table *blueprint.Table, opts ...Option) *Generator {
	g := &Generator{
		table: table,
		now:   time.Now,
		seeds: cryptoSeed,
		ids:   crand.Reader,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate assembles cfg.ExamCount exams for cfg.Section from repo.
//
// Within a batch no question is repeated unless the eligible pool is
// smaller than ExamCount*QuestionsPerExam; from the first exam that
// cannot be filled with unused questions, least-recently-used questions
// are reused and a PoolExhausted warning is added to the batch. Reused
// exams keep their blueprint area counts, so an area can reuse questions
// while another area still holds unused ones.
func (g *Generator) Generate(cfg Config, repo question.Repository) (*Batch, error) {
	if repo == nil {
		return nil, &InvalidConfigError{Field: "repository", Reason: "must not be nil"}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bp, err := g.table.Lookup(cfg.Section)
	if err != nil {
		if errors.Is(err, blueprint.ErrUnknownSection) {
			return nil, &InvalidConfigError{Field: "section", Reason: "not in blueprint table", Err: err}
		}
		return nil, err
	}
	if err := blueprint.Validate(bp); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = g.seeds(); err != nil {
			return nil, fmt.Errorf("draw seed: %w", err)
		}
	}
	rng := newRand(seed)

	p := newPool(bp, repo, cfg.Exclude)
	targets := Apportion(bp.Weights(), cfg.QuestionsPerExam)
	if p.size() < cfg.QuestionsPerExam {
		return nil, &InsufficientQuestionsError{
			Section:   cfg.Section,
			Areas:     p.exhaustedAreas(bp, targets),
			Required:  cfg.QuestionsPerExam,
			Available: p.size(),
		}
	}

	var tierWeights []float64
	if len(cfg.DifficultyTargets) > 0 {
		tierWeights = cfg.tierWeights()
	}

	batch := &Batch{Seed: seed, Section: cfg.Section}
	generatedAt := g.now()
	for i := 0; i < cfg.ExamCount; i++ {
		id, err := uuid.NewRandomFromReader(g.ids)
		if err != nil {
			return nil, fmt.Errorf("exam id: %w", err)
		}

		a := p.assemble(i, targets, tierWeights, rng)
		exam := GeneratedExam{
			ID:            id.String(),
			Section:       cfg.Section,
			Index:         i,
			Questions:     a.questions,
			GeneratedAt:   generatedAt,
			Areas:         make([]AreaCount, len(bp.Areas)),
			Substitutions: a.substitutions,
		}
		for k, area := range bp.Areas {
			exam.Areas[k] = AreaCount{Area: area.Code, Target: targets[k], Actual: a.counts[k]}
		}

		for _, s := range a.substitutions {
			g.log.Debug("area shortfall substituted",
				zap.String("section", cfg.Section),
				zap.Int("exam", i),
				zap.String("from", s.From),
				zap.String("to", s.To),
				zap.Int("count", s.Count))
		}
		if a.reused > 0 {
			w := PoolExhausted{ExamIndex: i, Reused: a.reused}
			batch.Warnings = append(batch.Warnings, w)
			g.log.Warn("question pool exhausted",
				zap.String("section", cfg.Section),
				zap.Int("exam", i),
				zap.Int("reused", a.reused))
		}
		batch.Exams = append(batch.Exams, exam)
	}

	g.log.Debug("generated exam batch",
		zap.String("section", cfg.Section),
		zap.Uint64("seed", seed),
		zap.Int("exams", len(batch.Exams)),
		zap.Int("questions_per_exam", cfg.QuestionsPerExam))
	return batch, nil
}

// newRand derives a ChaCha8 stream from seed. It backs selection and
// shuffling, so one seed reproduces a batch's question sets.
func newRand(seed uint64) *rand.Rand {
	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed^(uint64(i)*0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewChaCha8(key))
}

// cryptoSeed draws a non-zero seed from crypto/rand.
func cryptoSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	seed := binary.LittleEndian.Uint64(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
