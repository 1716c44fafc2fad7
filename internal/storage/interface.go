package storage

import (
	"context"
	"time"

	"github.com/seyitm/baby-ai/internal"
)

// RawRecord is a report row as the store returns it, before normalization.
// Data may be a pre-parsed mapping or JSON text; the accessor handles both.
type RawRecord struct {
	ID        string
	BabyID    string
	Kind      internal.ReportKind
	CreatedAt time.Time
	Data      any
}

// RecordRepository fetches the single most-recent report row for a baby and
// kind (created_at descending, limit one). The auth credential is forwarded
// to the store unmodified; validation is the store's responsibility.
type RecordRepository interface {
	FetchLatestRecord(ctx context.Context, babyID string, kind internal.ReportKind, auth string) (*RawRecord, error)
}

// BabyRepository resolves the caller's most recently created baby.
// An empty id with a nil error means the user has no babies yet.
type BabyRepository interface {
	LatestBabyID(ctx context.Context, userID, auth string) (string, error)
}

type ChatHistoryRepository interface {
	ListMessages(ctx context.Context, sessionID, auth string) ([]internal.ChatMessage, error)
	AppendMessage(ctx context.Context, msg *internal.ChatMessage, auth string) error
}
