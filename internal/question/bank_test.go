package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcq(id, section, area string, d Difficulty) Question {
	return Question{
		ID:         id,
		Section:    section,
		Area:       area,
		Difficulty: d,
		Prompt:     "prompt " + id,
		Options:    []Option{{ID: "a", Text: "yes"}, {ID: "b", Text: "no"}},
		Correct:    "a",
	}
}

func TestNewBank_Indexes(t *testing.T) {
	b, err := NewBank([]Question{
		mcq("q3", "part1", "A", DifficultyHard),
		mcq("q1", "part1", "A", DifficultyEasy),
		mcq("q2", "part1", "B", DifficultyEasy),
		mcq("q4", "part2", "A", DifficultyMedium),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []string{"part1", "part2"}, b.Sections())

	ids := func(qs []Question) []string {
		out := make([]string, len(qs))
		for i, q := range qs {
			out[i] = q.ID
		}
		return out
	}
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids(b.Section("part1")))
	assert.Equal(t, []string{"q1", "q3"}, ids(b.Area("part1", "A", "")))
	assert.Equal(t, []string{"q3"}, ids(b.Area("part1", "A", DifficultyHard)))
	assert.Empty(t, b.Area("part1", "C", ""))

	q, ok := b.Get("q4")
	require.True(t, ok)
	assert.Equal(t, "part2", q.Section)

	_, ok = b.Get("missing")
	assert.False(t, ok)
}

func TestBank_ReturnsCopies(t *testing.T) {
	b, err := NewBank([]Question{mcq("q1", "part1", "A", DifficultyEasy)})
	require.NoError(t, err)

	q, _ := b.Get("q1")
	q.Options[0].Text = "mutated"
	q.Correct = "b"

	again, _ := b.Get("q1")
	assert.Equal(t, "yes", again.Options[0].Text)
	assert.Equal(t, "a", again.Correct)
}

func TestNewBank_ValidationErrors(t *testing.T) {
	bad := mcq("q2", "part1", "A", "brutal")
	bad.Correct = "z"

	_, err := NewBank([]Question{
		mcq("q1", "part1", "A", DifficultyEasy),
		mcq("q1", "part1", "A", DifficultyEasy),
		bad,
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `duplicate question ID: "q1"`)
	assert.Contains(t, msg, `unknown difficulty "brutal"`)
	assert.Contains(t, msg, `correct answer "z" is not an option`)
}

func TestBank_Stats(t *testing.T) {
	b, err := NewBank([]Question{
		mcq("q1", "part1", "B", DifficultyEasy),
		mcq("q2", "part1", "A", DifficultyEasy),
		mcq("q3", "part1", "A", DifficultyHard),
	})
	require.NoError(t, err)

	stats := b.Stats("part1")
	require.Len(t, stats, 2)
	assert.Equal(t, "A", stats[0].Area)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].ByDifficulty[DifficultyHard])
	assert.Equal(t, "B", stats[1].Area)
}

func TestLoad(t *testing.T) {
	doc := `{"questions":[
		{"id":"q1","section":"part1","area":"A","difficulty":"easy","prompt":"2+2?",
		 "options":[{"id":"a","text":"4"},{"id":"b","text":"5"}],"correct":"a","explanation":"arithmetic"}
	]}`
	b, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	q, ok := b.Get("q1")
	require.True(t, ok)
	assert.Equal(t, DifficultyEasy, q.Difficulty)
	assert.True(t, q.IsCorrect("a"))
	assert.False(t, q.IsCorrect("b"))
	assert.False(t, q.IsCorrect(""))
}

func TestLoad_SchemaViolation(t *testing.T) {
	_, err := Load(strings.NewReader(`{"questions":[{"id":"q1"}]}`))
	require.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty(" Hard ")
	assert.True(t, ok)
	assert.Equal(t, DifficultyHard, d)
	assert.Equal(t, 2, d.Rank())

	_, ok = ParseDifficulty("extreme")
	assert.False(t, ok)
}
