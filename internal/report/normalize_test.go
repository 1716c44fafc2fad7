package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNilAndGarbage(t *testing.T) {
	for _, raw := range []any{nil, 42, "not json", []byte("{broken"), true} {
		p := Normalize(raw)
		assert.Empty(t, p.Categories)
		assert.Empty(t, p.Aggregates)
		assert.Empty(t, p.Meta)
	}
}

func TestNormalizeStringAndMapAreIdentical(t *testing.T) {
	src := `{"categories":{"sleep":[{"type":"nap","data":{"notes":"ok"}}],"feeding":[]},` +
		`"aggregates":{"total_sleep_minutes":420},"meta":{"date":"2024-01-01"}}`

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(src), &m))

	fromString := Normalize(src)
	fromMap := Normalize(m)
	fromRaw := Normalize(json.RawMessage(src))

	assert.Equal(t, fromString, fromMap)
	assert.Equal(t, fromString, fromRaw)
}

func TestNormalizeDefaultsMissingSections(t *testing.T) {
	p := Normalize(`{"categories":{"sleep":[]}}`)
	assert.Len(t, p.Categories, 1)
	assert.NotNil(t, p.Aggregates)
	assert.Empty(t, p.Aggregates)
	assert.NotNil(t, p.Meta)
	assert.Empty(t, p.Meta)
}

func TestNormalizeWronglyTypedSections(t *testing.T) {
	p := Normalize(`{"categories":"oops","aggregates":[1,2],"meta":7}`)
	assert.Empty(t, p.Categories)
	assert.Empty(t, p.Aggregates)
	assert.Empty(t, p.Meta)
}

func TestNormalizeCategoryOrderIsCanonical(t *testing.T) {
	p := Normalize(`{"categories":{"teething":[],"activity":[],"sleep":[]}}`)
	require.Len(t, p.Categories, 3)
	assert.Equal(t, "activity", p.Categories[0].Name)
	assert.Equal(t, "sleep", p.Categories[1].Name)
	assert.Equal(t, "teething", p.Categories[2].Name)
}

func TestNormalizeItems(t *testing.T) {
	p := Normalize(`{"categories":{"sleep":[` +
		`{"type":"nap","data":{"notes":"short"}},` +
		`{"data":{"value":3}},` +
		`"bogus",` +
		`{"type":7}` +
		`]}}`)
	require.Len(t, p.Categories, 1)
	items := p.Categories[0].Items
	require.Len(t, items, 3, "non-object items are dropped")

	assert.Equal(t, "nap", items[0].Type)
	assert.Equal(t, "short", items[0].Data["notes"])

	assert.Empty(t, items[1].Type)
	assert.Equal(t, float64(3), items[1].Data["value"])

	// Wrongly-typed type field defaults to empty; data defaults to empty map.
	assert.Empty(t, items[2].Type)
	assert.NotNil(t, items[2].Data)
}

func TestNormalizeNonListCategoryKeepsSlot(t *testing.T) {
	p := Normalize(`{"categories":{"sleep":"oops"}}`)
	require.Len(t, p.Categories, 1)
	assert.Equal(t, "sleep", p.Categories[0].Name)
	assert.Empty(t, p.Categories[0].Items)
}
