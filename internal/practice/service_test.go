package practice

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/examgen"
	"github.com/abhisek/certprep/internal/question"
	"github.com/abhisek/certprep/internal/scoring"
	"github.com/abhisek/certprep/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo implements Repo in memory.
type mockRepo struct {
	exams   map[string]examgen.GeneratedExam
	results []scoring.Result
	saveErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{exams: make(map[string]examgen.GeneratedExam)}
}

func (m *mockRepo) SaveBatch(_ context.Context, b *examgen.Batch) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, e := range b.Exams {
		m.exams[e.ID] = e
	}
	return nil
}

func (m *mockRepo) GetExam(_ context.Context, id string) (*examgen.GeneratedExam, error) {
	e, ok := m.exams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (m *mockRepo) UsedQuestionIDs(_ context.Context, section string) ([]string, error) {
	var ids []string
	for _, e := range m.exams {
		if e.Section == section {
			ids = append(ids, e.Questions...)
		}
	}
	return ids, nil
}

func (m *mockRepo) SaveResult(_ context.Context, r *scoring.Result) error {
	m.results = append(m.results, *r)
	return nil
}

func (m *mockRepo) ListResults(_ context.Context, section string, limit int) ([]scoring.Result, error) {
	var out []scoring.Result
	for i := len(m.results) - 1; i >= 0; i-- {
		if section == "" || m.results[i].Section == section {
			out = append(out, m.results[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var testBlueprint = blueprint.Blueprint{
	Section: "part1",
	Areas: []blueprint.Area{
		{Code: "A", Weight: 0.6},
		{Code: "B", Weight: 0.4},
	},
}

func testBank(t *testing.T, perArea int) *question.Bank {
	t.Helper()
	var qs []question.Question
	for _, area := range []string{"A", "B"} {
		for i := 0; i < perArea; i++ {
			qs = append(qs, question.Question{
				ID:         fmt.Sprintf("%s%02d", area, i),
				Section:    "part1",
				Area:       area,
				Difficulty: question.DifficultyEasy,
				Options:    []question.Option{{ID: "a"}, {ID: "b"}},
				Correct:    "a",
			})
		}
	}
	b, err := question.NewBank(qs)
	require.NoError(t, err)
	return b
}

func newTestService(t *testing.T, bank question.Repository, repo Repo) *Service {
	t.Helper()
	table := blueprint.NewTable(testBlueprint)
	gen := examgen.New(table, examgen.WithSeed(11))
	scorer := scoring.NewScorer(table, scoring.Thresholds{"part1": 0.7})
	return NewService(gen, scorer, bank, repo, nil)
}

func TestGenerate_Persists(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, testBank(t, 10), repo)

	batch, err := svc.Generate(context.Background(), examgen.Config{Section: "part1", ExamCount: 2, QuestionsPerExam: 5}, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, batch.Exams, 2)

	for _, e := range batch.Exams {
		stored, err := svc.Exam(context.Background(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.Questions, stored.Questions)
	}
}

func TestGenerate_SaveFailure(t *testing.T) {
	repo := newMockRepo()
	repo.saveErr = errors.New("disk full")
	svc := newTestService(t, testBank(t, 10), repo)

	_, err := svc.Generate(context.Background(), examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 5}, GenerateOptions{})
	assert.ErrorContains(t, err, "disk full")
}

func TestGenerate_CanceledContext(t *testing.T) {
	svc := newTestService(t, testBank(t, 10), newMockRepo())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 5}, GenerateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_AvoidHistory(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, testBank(t, 10), repo)
	ctx := context.Background()
	cfg := examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 10}

	first, err := svc.Generate(ctx, cfg, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)

	second, err := svc.Generate(ctx, cfg, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, id := range first.Exams[0].Questions {
		seen[id] = true
	}
	for _, id := range second.Exams[0].Questions {
		assert.False(t, seen[id], "question %s repeated across sessions", id)
	}
}

func TestGenerate_AvoidHistoryFallsBack(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, testBank(t, 10), repo)
	ctx := context.Background()
	cfg := examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 15}

	_, err := svc.Generate(ctx, cfg, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)

	// Only 5 unseen questions remain, so history is ignored.
	batch, err := svc.Generate(ctx, cfg, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)
	assert.Equal(t, 15, batch.Exams[0].Len())
}

func TestGenerate_CallerErrorsPassThrough(t *testing.T) {
	svc := newTestService(t, testBank(t, 10), newMockRepo())
	_, err := svc.Generate(context.Background(), examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 0}, GenerateOptions{AvoidHistory: true})
	assert.ErrorIs(t, err, examgen.ErrInvalidConfig)
}

func TestSubmit(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(t, testBank(t, 10), repo)
	ctx := context.Background()

	batch, err := svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 10}, GenerateOptions{})
	require.NoError(t, err)
	exam := batch.Exams[0]

	answers := make(map[string]string)
	for i, id := range exam.Questions {
		if i < 7 {
			answers[id] = "a"
		}
	}
	res, err := svc.Submit(ctx, scoring.Attempt{ExamID: exam.ID, Answers: answers, SubmittedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Correct)
	assert.True(t, res.Passed)
	assert.Equal(t, exam.Questions[7:], res.Missed)

	history, err := svc.History(ctx, "part1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, exam.ID, history[0].ExamID)
}

func TestSubmit_UnknownExam(t *testing.T) {
	svc := newTestService(t, testBank(t, 10), newMockRepo())
	_, err := svc.Submit(context.Background(), scoring.Attempt{ExamID: "ghost"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := newTestService(t, testBank(t, 20), st)

	batch, err := svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 2, QuestionsPerExam: 10}, GenerateOptions{})
	require.NoError(t, err)

	next, err := svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 10, Seed: 5}, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)
	used := make(map[string]bool)
	for _, id := range batch.QuestionIDs() {
		used[id] = true
	}
	for _, id := range next.Exams[0].Questions {
		assert.False(t, used[id])
	}

	exam := batch.Exams[1]
	res, err := svc.Submit(ctx, scoring.Attempt{ExamID: exam.ID, Answers: map[string]string{exam.Questions[0]: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.False(t, res.Passed)

	history, err := svc.History(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.Missed, history[0].Missed)
}

func TestService_ReplayedSeedWithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "replay.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := newTestService(t, testBank(t, 20), st)
	cfg := examgen.Config{Section: "part1", ExamCount: 2, QuestionsPerExam: 10, Seed: 42}

	first, err := svc.Generate(ctx, cfg, GenerateOptions{})
	require.NoError(t, err)
	again, err := svc.Generate(ctx, cfg, GenerateOptions{})
	require.NoError(t, err)

	for i := range first.Exams {
		assert.Equal(t, first.Exams[i].Questions, again.Exams[i].Questions)
		assert.NotEqual(t, first.Exams[i].ID, again.Exams[i].ID)
		stored, err := svc.Exam(ctx, again.Exams[i].ID)
		require.NoError(t, err)
		assert.Equal(t, again.Exams[i].Questions, stored.Questions)
	}

	// A generator-wide seed with history avoidance stores every batch too.
	_, err = svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 10}, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, examgen.Config{Section: "part1", ExamCount: 1, QuestionsPerExam: 10}, GenerateOptions{AvoidHistory: true})
	require.NoError(t, err)
}
