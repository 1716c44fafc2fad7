package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyitm/baby-ai/internal"
)

type fakeFetcher struct {
	records map[internal.ReportKind]*internal.Record
	errs    map[internal.ReportKind]error
	calls   []internal.ReportKind
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, kind internal.ReportKind, _ string) (*internal.Record, error) {
	f.calls = append(f.calls, kind)
	if err, ok := f.errs[kind]; ok {
		return nil, err
	}
	if rec, ok := f.records[kind]; ok {
		return rec, nil
	}
	return nil, internal.ErrNotFound
}

func summaryRecord(kind internal.ReportKind, note string) *internal.Record {
	return &internal.Record{
		Kind: kind,
		Payload: internal.Payload{
			Categories: []internal.Category{{Name: "sleep", Items: []internal.Item{{Type: note}}}},
			Meta:       map[string]any{},
		},
	}
}

func bothKinds() []internal.ReportKind {
	return []internal.ReportKind{internal.ReportWeeklySummary, internal.ReportEndOfDay}
}

func TestCombineWeeklyFirst(t *testing.T) {
	f := &fakeFetcher{records: map[internal.ReportKind]*internal.Record{
		internal.ReportWeeklySummary: summaryRecord(internal.ReportWeeklySummary, "weekly"),
		internal.ReportEndOfDay:      summaryRecord(internal.ReportEndOfDay, "daily"),
	}}
	a := NewAssembler(f, internal.NewNopLogger(), 5, true)

	out := a.Combine(context.Background(), "baby-1", "tok", bothKinds(), WeeklyFirst)

	weeklyAt := strings.Index(out, "WEEKLY_SUMMARY")
	dailyAt := strings.Index(out, "END_OF_DAY_SUMMARY")
	require.GreaterOrEqual(t, weeklyAt, 0)
	require.GreaterOrEqual(t, dailyAt, 0)
	assert.Less(t, weeklyAt, dailyAt)
	assert.Contains(t, out, "\n\n", "blocks are joined with a blank line")
}

func TestCombineDailyFirst(t *testing.T) {
	f := &fakeFetcher{records: map[internal.ReportKind]*internal.Record{
		internal.ReportWeeklySummary: summaryRecord(internal.ReportWeeklySummary, "weekly"),
		internal.ReportEndOfDay:      summaryRecord(internal.ReportEndOfDay, "daily"),
	}}
	a := NewAssembler(f, internal.NewNopLogger(), 5, true)

	out := a.Combine(context.Background(), "baby-1", "tok", bothKinds(), DailyFirst)
	assert.Less(t, strings.Index(out, "END_OF_DAY_SUMMARY"), strings.Index(out, "WEEKLY_SUMMARY"))
}

func TestCombineDropsNotFound(t *testing.T) {
	f := &fakeFetcher{records: map[internal.ReportKind]*internal.Record{
		internal.ReportEndOfDay: summaryRecord(internal.ReportEndOfDay, "daily"),
	}}
	a := NewAssembler(f, internal.NewNopLogger(), 5, true)

	out := a.Combine(context.Background(), "baby-1", "tok", bothKinds(), WeeklyFirst)
	assert.Contains(t, out, "END_OF_DAY_SUMMARY")
	assert.NotContains(t, out, "WEEKLY_SUMMARY")
	assert.False(t, strings.HasPrefix(out, "\n"), "no leading separator when a block is dropped")
}

func TestCombineDropsStoreFailures(t *testing.T) {
	f := &fakeFetcher{
		records: map[internal.ReportKind]*internal.Record{
			internal.ReportEndOfDay: summaryRecord(internal.ReportEndOfDay, "daily"),
		},
		errs: map[internal.ReportKind]error{
			internal.ReportWeeklySummary: internal.ErrStoreUnavailable,
		},
	}
	a := NewAssembler(f, internal.NewNopLogger(), 5, true)

	out := a.Combine(context.Background(), "baby-1", "tok", bothKinds(), WeeklyFirst)
	assert.Contains(t, out, "END_OF_DAY_SUMMARY")
	assert.NotContains(t, out, "WEEKLY_SUMMARY")
}

func TestCombineAllDroppedIsEmpty(t *testing.T) {
	f := &fakeFetcher{}
	a := NewAssembler(f, internal.NewNopLogger(), 5, true)

	out := a.Combine(context.Background(), "baby-1", "tok", bothKinds(), WeeklyFirst)
	assert.Empty(t, out)
	assert.Equal(t, bothKinds(), f.calls, "every kind is still attempted")
}
