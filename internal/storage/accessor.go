package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/seyitm/baby-ai/internal"
	"github.com/seyitm/baby-ai/internal/cache"
	"github.com/seyitm/baby-ai/internal/report"
)

// CachedRecordAccessor sits between callers and the record store. A cache hit
// inside the TTL returns the normalized record without touching the store; a
// miss issues exactly one store fetch, normalizes the payload and overwrites
// the cache entry.
type CachedRecordAccessor struct {
	repo   RecordRepository
	cache  *cache.RecordCache
	logger internal.Logger
}

func NewCachedRecordAccessor(repo RecordRepository, c *cache.RecordCache, logger internal.Logger) *CachedRecordAccessor {
	return &CachedRecordAccessor{repo: repo, cache: c, logger: logger}
}

// Fetch returns the latest record for (babyID, kind). It signals
// internal.ErrNotFound when the store has no matching row and
// internal.ErrStoreUnavailable when the store cannot be reached; neither is
// retried here — degradation decisions belong to the caller.
func (a *CachedRecordAccessor) Fetch(ctx context.Context, babyID string, kind internal.ReportKind, auth string) (*internal.Record, error) {
	if rec, ok := a.cache.Get(babyID, kind); ok {
		a.logger.Debugf("record cache hit baby=%s kind=%s", babyID, kind)
		return rec, nil
	}

	raw, err := a.repo.FetchLatestRecord(ctx, babyID, kind, auth)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			return nil, err
		}
		if !errors.Is(err, internal.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
		}
		a.logger.Errorf("record fetch failed baby=%s kind=%s: %v", babyID, kind, err)
		return nil, err
	}

	rec := &internal.Record{
		ID:        raw.ID,
		BabyID:    raw.BabyID,
		Kind:      raw.Kind,
		CreatedAt: raw.CreatedAt,
		Payload:   report.Normalize(raw.Data),
	}
	a.cache.Set(babyID, kind, rec)
	return rec, nil
}
