package blueprint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		bp      Blueprint
		wantErr string
	}{
		{
			name: "valid",
			bp:   Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 0.4}, {Code: "B", Weight: 0.35}, {Code: "C", Weight: 0.25}}},
		},
		{
			name: "within tolerance",
			bp:   Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 0.1}, {Code: "B", Weight: 0.2}, {Code: "C", Weight: 0.7000000001}}},
		},
		{
			name:    "sum too low",
			bp:      Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 0.5}, {Code: "B", Weight: 0.4}}},
			wantErr: "sum to 0.900000",
		},
		{
			name:    "negative weight",
			bp:      Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: -0.1}, {Code: "B", Weight: 1.1}}},
			wantErr: "weight must be in [0, 1]",
		},
		{
			name:    "duplicate code",
			bp:      Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 0.5}, {Code: "A", Weight: 0.5}}},
			wantErr: `duplicate area code: "A"`,
		},
		{
			name:    "no areas",
			bp:      Blueprint{Section: "p1"},
			wantErr: "no areas defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.bp)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedBlueprint))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTable_MalformedSectionIsBlocked(t *testing.T) {
	table := NewTable(
		Blueprint{Section: "good", Areas: []Area{{Code: "A", Weight: 1}}},
		Blueprint{Section: "bad", Areas: []Area{{Code: "A", Weight: 0.6}}},
	)

	assert.Equal(t, []string{"good", "bad"}, table.Sections())
	require.Error(t, table.Err())

	_, err := table.Lookup("good")
	require.NoError(t, err)

	_, err = table.Lookup("bad")
	var mbe *MalformedBlueprintError
	require.True(t, errors.As(err, &mbe))
	assert.Equal(t, "bad", mbe.Section)

	_, err = table.Lookup("missing")
	assert.True(t, errors.Is(err, ErrUnknownSection))

	require.Len(t, table.Blueprints(), 1)
}

func TestTable_DuplicateSection(t *testing.T) {
	table := NewTable(
		Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 1}}},
		Blueprint{Section: "p1", Areas: []Area{{Code: "B", Weight: 1}}},
	)
	_, err := table.Lookup("p1")
	assert.True(t, errors.Is(err, ErrMalformedBlueprint))
	assert.Equal(t, []string{"p1"}, table.Sections())
}

func TestTable_LookupReturnsCopy(t *testing.T) {
	table := NewTable(Blueprint{Section: "p1", Areas: []Area{{Code: "A", Weight: 1}}})
	b, err := table.Lookup("p1")
	require.NoError(t, err)
	b.Areas[0].Weight = 0

	again, _ := table.Lookup("p1")
	assert.Equal(t, 1.0, again.Areas[0].Weight)
}

func TestDefault(t *testing.T) {
	table := Default()
	require.NoError(t, table.Err())
	assert.Equal(t, []string{"part1", "part2"}, table.Sections())

	for _, s := range table.Sections() {
		b, err := table.Lookup(s)
		require.NoError(t, err)
		assert.Len(t, b.Areas, 6)
	}
}

func TestLoad(t *testing.T) {
	doc := `{"sections":[
		{"section":"p1","areas":[{"code":"A","label":"Alpha","weight":0.334},{"code":"B","weight":0.333},{"code":"C","weight":0.333}]},
		{"section":"p2","areas":[{"code":"A","weight":0.5}]}
	]}`
	table, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	b, err := table.Lookup("p1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.334, 0.333, 0.333}, b.Weights())
	a, ok := b.Area("A")
	require.True(t, ok)
	assert.Equal(t, "Alpha", a.DisplayName())
	assert.Equal(t, 2, b.Index("C"))

	assert.True(t, errors.Is(table.Err(), ErrMalformedBlueprint))
}

func TestLoad_SchemaViolation(t *testing.T) {
	_, err := Load(strings.NewReader(`{"sections":[]}`))
	require.Error(t, err)
}
