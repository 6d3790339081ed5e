// Package practice is the boundary between the pure exam engine and the
// session layer: it persists what the engine produces and hands exams to
// the scorer by reference.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/certprep/internal/examgen"
	"github.com/abhisek/certprep/internal/question"
	"github.com/abhisek/certprep/internal/scoring"
	"go.uber.org/zap"
)

// Repo stores exams and results. *store.Store implements it.
type Repo interface {
	SaveBatch(ctx context.Context, b *examgen.Batch) error
	GetExam(ctx context.Context, id string) (*examgen.GeneratedExam, error)
	UsedQuestionIDs(ctx context.Context, section string) ([]string, error)
	SaveResult(ctx context.Context, r *scoring.Result) error
	ListResults(ctx context.Context, section string, limit int) ([]scoring.Result, error)
}

// GenerateOptions tunes Service.Generate.
type GenerateOptions struct {
	// AvoidHistory excludes every question that appeared in a previously
	// stored exam of the section, as long as that leaves enough questions.
	AvoidHistory bool
}

// Service generates, stores and scores practice exams.
type Service struct {
	gen    *examgen.Generator
	scorer *scoring.Scorer
	bank   question.Repository
	repo   Repo
	log    *zap.Logger
}

// NewService creates a Service.
func NewService(gen *examgen.Generator, scorer *scoring.Scorer, bank question.Repository, repo Repo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gen: gen, scorer: scorer, bank: bank, repo: repo, log: log}
}

// Generate builds a batch and stores it.
func (s *Service) Generate(ctx context.Context, cfg examgen.Config, opts GenerateOptions) (*examgen.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, err := s.generate(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	for _, w := range batch.Warnings {
		s.log.Warn(w.String(), zap.String("section", batch.Section))
	}
	s.log.Info("stored exam batch",
		zap.String("section", batch.Section),
		zap.Int("exams", len(batch.Exams)),
		zap.Uint64("seed", batch.Seed))
	return batch, nil
}

func (s *Service) generate(ctx context.Context, cfg examgen.Config, opts GenerateOptions) (*examgen.Batch, error) {
	if !opts.AvoidHistory {
		return s.gen.Generate(cfg, s.bank)
	}

	used, err := s.repo.UsedQuestionIDs(ctx, cfg.Section)
	if err != nil {
		return nil, fmt.Errorf("load question history: %w", err)
	}
	if len(used) == 0 {
		return s.gen.Generate(cfg, s.bank)
	}

	withHistory := cfg
	withHistory.Exclude = append(append([]string(nil), cfg.Exclude...), used...)
	batch, err := s.gen.Generate(withHistory, s.bank)
	if !errors.Is(err, examgen.ErrInsufficientQuestions) {
		return batch, err
	}

	s.log.Warn("not enough unseen questions, allowing previously seen ones",
		zap.String("section", cfg.Section),
		zap.Int("history", len(used)),
		zap.Error(err))
	return s.gen.Generate(cfg, s.bank)
}

// Exam loads a stored exam.
func (s *Service) Exam(ctx context.Context, id string) (*examgen.GeneratedExam, error) {
	return s.repo.GetExam(ctx, id)
}

// Submit scores an attempt against the stored exam it names and records
// the result. A zero SubmittedAt is stamped with the current time.
func (s *Service) Submit(ctx context.Context, attempt scoring.Attempt) (*scoring.Result, error) {
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now().UTC()
	}
	exam, err := s.repo.GetExam(ctx, attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("load exam: %w", err)
	}

	res, err := s.scorer.Score(exam, attempt, s.bank)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	if err := s.repo.SaveResult(ctx, res); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	s.log.Info("scored attempt",
		zap.String("exam", res.ExamID),
		zap.Int("correct", res.Correct),
		zap.Int("total", res.Total),
		zap.Bool("passed", res.Passed))
	return res, nil
}

// History returns stored results, newest first.
func (s *Service) History(ctx context.Context, section string, limit int) ([]scoring.Result, error) {
	return s.repo.ListResults(ctx, section, limit)
}
