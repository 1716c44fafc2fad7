// Package report turns loosely-typed stored report payloads into bounded,
// human-readable prompt context. Normalize isolates every shape check so the
// renderer can assume a strict structure.
package report

import (
	"encoding/json"
	"sort"

	"github.com/seyitm/baby-ai/internal"
)

// Normalize converts a raw payload (pre-parsed mapping, JSON text, or nothing)
// into a Payload with categories, aggregates and meta always present.
// Categories and aggregates are ordered lexicographically by name so that a
// string-encoded payload and an already-parsed one with the same logical
// content normalize to the same value. Unparseable or wrongly-typed input
// collapses to empty mappings, never an error.
func Normalize(raw any) internal.Payload {
	m := asMap(raw)
	return internal.Payload{
		Categories: normalizeCategories(m["categories"]),
		Aggregates: normalizeAggregates(m["aggregates"]),
		Meta:       asMap(m["meta"]),
	}
}

func asMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		return parseJSONMap([]byte(t))
	case []byte:
		return parseJSONMap(t)
	case json.RawMessage:
		return parseJSONMap(t)
	default:
		return map[string]any{}
	}
}

func parseJSONMap(b []byte) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

func normalizeCategories(v any) []internal.Category {
	m, ok := v.(map[string]any)
	if !ok {
		return []internal.Category{}
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	cats := make([]internal.Category, 0, len(names))
	for _, name := range names {
		items, ok := m[name].([]any)
		if !ok {
			// A category whose value is not a list keeps its slot with no entries.
			cats = append(cats, internal.Category{Name: name, Items: []internal.Item{}})
			continue
		}
		c := internal.Category{Name: name, Items: make([]internal.Item, 0, len(items))}
		for _, it := range items {
			im, ok := it.(map[string]any)
			if !ok {
				continue
			}
			item := internal.Item{Data: map[string]any{}}
			if t, ok := im["type"].(string); ok {
				item.Type = t
			}
			if d, ok := im["data"].(map[string]any); ok {
				item.Data = d
			}
			c.Items = append(c.Items, item)
		}
		cats = append(cats, c)
	}
	return cats
}

func normalizeAggregates(v any) []internal.Aggregate {
	m, ok := v.(map[string]any)
	if !ok {
		return []internal.Aggregate{}
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	aggs := make([]internal.Aggregate, 0, len(names))
	for _, name := range names {
		aggs = append(aggs, internal.Aggregate{Name: name, Value: m[name]})
	}
	return aggs
}
