package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/domain"
)

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(` {"a":{"x":16,"y":32,"width":20,"height":10,"text":"hi","z":3}} `))
	require.NoError(t, err)
	assert.Equal(t, domain.Card{X: 16, Y: 32, Width: 20, Height: 10, Text: "hi", Z: 3}, snap["a"])

	empty, err := ParseSnapshot([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseSnapshot_FormatErrors(t *testing.T) {
	payloads := map[string]string{
		"null":        `null`,
		"empty":       ``,
		"array":       `[{"x":1}]`,
		"number":      `42`,
		"string":      `"board"`,
		"truncated":   `{"a":{"x":1}`,
		"scalar card": `{"a":5}`,
		"null card":   `{"a":null}`,
		"bad field":   `{"a":{"x":"left"}}`,
		"empty id":    `{"":{"x":1}}`,
	}
	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(p))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
			var fe *domain.FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}

func TestMerge_ShallowKeyOverride(t *testing.T) {
	live := domain.Snapshot{
		"A": {X: 1, Width: 10, Height: 10, Text: "a"},
		"B": {X: 2, Y: 5, Width: 10, Height: 10, Z: 7, Text: "old b"},
	}
	imported := domain.Snapshot{
		"B": {X: 99, Width: 12, Height: 12, Text: "new b"},
		"C": {X: 3, Width: 10, Height: 10, Text: "c"},
	}

	plan := PlanImport(live, imported)
	assert.Equal(t, ImportPlan{Total: 2, Existing: 1, New: 1}, plan)

	got := Merge(live, imported)
	assert.Equal(t, live["A"], got["A"])
	assert.Equal(t, imported["B"], got["B"], "no field-level merge: Y and Z are not carried over")
	assert.Equal(t, imported["C"], got["C"])
	assert.Len(t, got, 3)

	assert.Equal(t, "old b", live["B"].Text, "inputs are untouched")
	assert.Len(t, live, 2)
}
