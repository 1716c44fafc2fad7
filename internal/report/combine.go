package report

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/seyitm/baby-ai/internal"
)

// Ordering fixes the position of the weekly block relative to the daily one.
type Ordering string

const (
	WeeklyFirst Ordering = "weekly_first"
	DailyFirst  Ordering = "daily_first"
)

// Fetcher is the record accessor the assembler pulls from; satisfied by
// storage.CachedRecordAccessor.
type Fetcher interface {
	Fetch(ctx context.Context, babyID string, kind internal.ReportKind, auth string) (*internal.Record, error)
}

// Assembler fetches and renders several report kinds into one context block.
type Assembler struct {
	fetcher           Fetcher
	logger            internal.Logger
	maxItems          int
	includeAggregates bool
}

func NewAssembler(fetcher Fetcher, logger internal.Logger, maxItems int, includeAggregates bool) *Assembler {
	return &Assembler{
		fetcher:           fetcher,
		logger:            logger,
		maxItems:          maxItems,
		includeAggregates: includeAggregates,
	}
}

// Combine renders each requested kind and joins the surviving blocks with a
// blank line. NotFound kinds and empty renders are dropped; a store failure
// drops the block too (degraded mode) after logging. An empty result means
// "no context available" and callers fall back to the unpersonalized mode.
func (a *Assembler) Combine(ctx context.Context, babyID, auth string, kinds []internal.ReportKind, ordering Ordering) string {
	type block struct {
		kind internal.ReportKind
		text string
	}
	var blocks []block
	for _, kind := range kinds {
		rec, err := a.fetcher.Fetch(ctx, babyID, kind, auth)
		if err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				continue
			}
			a.logger.Warnf("context fetch failed for baby=%s kind=%s: %v", babyID, kind, err)
			continue
		}
		text := Render(rec, a.maxItems, a.includeAggregates)
		if text == "" || text == "(no records available)" {
			continue
		}
		blocks = append(blocks, block{kind: kind, text: text})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return kindRank(blocks[i].kind, ordering) < kindRank(blocks[j].kind, ordering)
	})

	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.text)
	}
	return strings.Join(texts, "\n\n")
}

func kindRank(kind internal.ReportKind, ordering Ordering) int {
	switch kind {
	case internal.ReportWeeklySummary:
		if ordering == DailyFirst {
			return 1
		}
		return 0
	case internal.ReportEndOfDay:
		if ordering == DailyFirst {
			return 0
		}
		return 1
	default:
		return 2
	}
}
