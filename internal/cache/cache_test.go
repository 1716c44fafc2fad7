package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seyitm/baby-ai/internal"
)

func TestGetMissOnEmptyCache(t *testing.T) {
	c := NewRecordCache(time.Minute)
	rec, ok := c.Get("baby-1", internal.ReportEndOfDay)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestSetThenGetWithinTTL(t *testing.T) {
	c := NewRecordCache(time.Minute)
	want := &internal.Record{ID: "r1", BabyID: "baby-1", Kind: internal.ReportEndOfDay}
	c.Set("baby-1", internal.ReportEndOfDay, want)

	got, ok := c.Get("baby-1", internal.ReportEndOfDay)
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := NewRecordCache(time.Minute)
	now := time.Now()
	c.SetClock(func() time.Time { return now })

	c.Set("baby-1", internal.ReportEndOfDay, &internal.Record{ID: "r1"})

	now = now.Add(59 * time.Second)
	_, ok := c.Get("baby-1", internal.ReportEndOfDay)
	assert.True(t, ok, "entry younger than TTL must be served")

	now = now.Add(time.Second)
	_, ok = c.Get("baby-1", internal.ReportEndOfDay)
	assert.False(t, ok, "entry at TTL age must be stale")
}

func TestSetOverwritesEntry(t *testing.T) {
	c := NewRecordCache(time.Minute)
	c.Set("baby-1", internal.ReportEndOfDay, &internal.Record{ID: "old"})
	c.Set("baby-1", internal.ReportEndOfDay, &internal.Record{ID: "new"})

	got, ok := c.Get("baby-1", internal.ReportEndOfDay)
	require.True(t, ok)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, 1, c.Size())
}

func TestKeysAreIndependentPerKind(t *testing.T) {
	c := NewRecordCache(time.Minute)
	c.Set("baby-1", internal.ReportEndOfDay, &internal.Record{ID: "daily"})
	c.Set("baby-1", internal.ReportWeeklySummary, &internal.Record{ID: "weekly"})

	daily, ok := c.Get("baby-1", internal.ReportEndOfDay)
	require.True(t, ok)
	weekly, ok := c.Get("baby-1", internal.ReportWeeklySummary)
	require.True(t, ok)
	assert.Equal(t, "daily", daily.ID)
	assert.Equal(t, "weekly", weekly.ID)
}

func TestReset(t *testing.T) {
	c := NewRecordCache(time.Minute)
	c.Set("baby-1", internal.ReportEndOfDay, &internal.Record{ID: "r1"})
	c.Reset()

	_, ok := c.Get("baby-1", internal.ReportEndOfDay)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}
