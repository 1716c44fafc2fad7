package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/seyitm/baby-ai/internal"
)

const maxNoteChars = 120

// Render produces the text block for one normalized record. It is pure and
// deterministic: identical inputs yield byte-identical output, and malformed
// sub-fields are dropped rather than reported.
func Render(rec *internal.Record, maxItemsPerCategory int, includeAggregates bool) string {
	if maxItemsPerCategory < 1 {
		maxItemsPerCategory = 1
	}
	if rec == nil || isEmpty(rec.Payload) {
		return "(no records available)"
	}

	var b strings.Builder
	b.WriteString("=== " + strings.ToUpper(string(rec.Kind)) + " ===\n")
	writeMeta(&b, rec)

	if includeAggregates && len(rec.Payload.Aggregates) > 0 {
		b.WriteString("\n[AGGREGATES]\n")
		for _, agg := range rec.Payload.Aggregates {
			b.WriteString(agg.Name + ": " + formatAggregateValue(agg.Value) + "\n")
		}
	}

	for _, cat := range rec.Payload.Categories {
		b.WriteString("\n[" + strings.ToUpper(cat.Name) + "]\n")
		if len(cat.Items) == 0 {
			b.WriteString("(no entries)\n")
			continue
		}
		shown := cat.Items
		if len(shown) > maxItemsPerCategory {
			shown = shown[:maxItemsPerCategory]
		}
		for _, item := range shown {
			b.WriteString("- " + renderItem(item) + "\n")
		}
		if omitted := len(cat.Items) - len(shown); omitted > 0 {
			b.WriteString(fmt.Sprintf("(+%d more entries omitted)\n", omitted))
		}
	}

	b.WriteString(fmt.Sprintf("\n(showing up to %d entries per category)", maxItemsPerCategory))
	return b.String()
}

func isEmpty(p internal.Payload) bool {
	return len(p.Categories) == 0 && len(p.Aggregates) == 0 && len(p.Meta) == 0
}

func writeMeta(b *strings.Builder, rec *internal.Record) {
	meta := rec.Payload.Meta
	if d, ok := metaString(meta, "date"); ok {
		b.WriteString("Date: " + d + "\n")
	}
	start, hasStart := metaString(meta, "period_start")
	end, hasEnd := metaString(meta, "period_end")
	if hasStart && hasEnd {
		b.WriteString("Period: " + start + " to " + end + "\n")
	}
	if n, ok := metaString(meta, "source_entries"); ok {
		b.WriteString("Entries: " + n + "\n")
	}
	if g, ok := metaString(meta, "generated_at"); ok {
		b.WriteString("Generated: " + g + "\n")
	}
}

func metaString(meta map[string]any, key string) (string, bool) {
	v, ok := meta[key]
	if !ok || v == nil {
		return "", false
	}
	return formatScalar(v), true
}

// renderItem assembles the pipe-separated fragments in fixed order:
// type, duration, value, temperature, tooth, notes. An item with nothing to
// show renders as the single word "entry" so the line is never blank.
func renderItem(item internal.Item) string {
	var frags []string
	if item.Type != "" {
		frags = append(frags, item.Type)
	}
	if d, ok := itemDuration(item.Data); ok {
		frags = append(frags, fmt.Sprintf("%dm", d))
	}
	if v, ok := item.Data["value"]; ok && v != nil {
		frags = append(frags, "value="+formatScalar(v))
	}
	if v, ok := item.Data["temperature"]; ok && v != nil {
		frags = append(frags, "temperature="+formatScalar(v)+"°C")
	}
	if v, ok := item.Data["tooth_name"]; ok && v != nil {
		frags = append(frags, "tooth="+formatScalar(v))
	}
	if notes, ok := item.Data["notes"].(string); ok && notes != "" {
		frags = append(frags, truncate(notes, maxNoteChars))
	}
	if len(frags) == 0 {
		return "entry"
	}
	return strings.Join(frags, " | ")
}

// itemDuration derives whole minutes from startTime/endTime. Durations
// outside (0, 1440) minutes, or unparseable timestamps, are omitted.
func itemDuration(data map[string]any) (int, bool) {
	start, ok := parseTimestamp(data["startTime"])
	if !ok {
		return 0, false
	}
	end, ok := parseTimestamp(data["endTime"])
	if !ok {
		return 0, false
	}
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes <= 0 || minutes >= 24*60 {
		return 0, false
	}
	return minutes, true
}

func parseTimestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatAggregateValue renders a scalar directly; a nested mapping flattens to
// "k=v, k2=v2" with absent subvalues skipped.
func formatAggregateValue(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return formatScalar(v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if m[k] == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatScalar(m[k]))
	}
	return strings.Join(parts, ", ")
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integers clean.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
