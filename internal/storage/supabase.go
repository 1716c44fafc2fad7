package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/seyitm/baby-ai/internal"
)

// SupabaseStorage talks to the hosted Supabase project over PostgREST.
// The service api key identifies the project; the caller's access token is
// forwarded as the bearer credential so row-level security decides what each
// user can see.
type SupabaseStorage struct {
	client *resty.Client
	logger internal.Logger
}

func NewSupabaseStorage(baseURL, apiKey string, logger internal.Logger) *SupabaseStorage {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SupabaseStorage{client: client, logger: logger}
}

type reportRow struct {
	ID        string          `json:"id"`
	BabyID    string          `json:"baby_id"`
	Kind      string          `json:"report_type"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

func (s *SupabaseStorage) FetchLatestRecord(ctx context.Context, babyID string, kind internal.ReportKind, auth string) (*RawRecord, error) {
	var rows []reportRow
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(auth).
		SetQueryParams(map[string]string{
			"select":      "*",
			"baby_id":     "eq." + babyID,
			"report_type": "eq." + string(kind),
			"order":       "created_at.desc",
			"limit":       "1",
		}).
		SetResult(&rows).
		Get("/rest/v1/reports")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: reports query returned %d", internal.ErrStoreUnavailable, resp.StatusCode())
	}
	if len(rows) == 0 {
		return nil, internal.ErrNotFound
	}
	row := rows[0]
	return &RawRecord{
		ID:        row.ID,
		BabyID:    row.BabyID,
		Kind:      internal.ReportKind(row.Kind),
		CreatedAt: row.CreatedAt,
		Data:      row.Data,
	}, nil
}

func (s *SupabaseStorage) LatestBabyID(ctx context.Context, userID, auth string) (string, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(auth).
		SetQueryParams(map[string]string{
			"select":  "id",
			"user_id": "eq." + userID,
			"order":   "created_at.desc",
			"limit":   "1",
		}).
		SetResult(&rows).
		Get("/rest/v1/babies")
	if err != nil {
		return "", fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: babies query returned %d", internal.ErrStoreUnavailable, resp.StatusCode())
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

func (s *SupabaseStorage) ListMessages(ctx context.Context, sessionID, auth string) ([]internal.ChatMessage, error) {
	var rows []internal.ChatMessage
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(auth).
		SetQueryParams(map[string]string{
			"select":     "role,message_content",
			"session_id": "eq." + sessionID,
			"order":      "created_at.asc",
		}).
		SetResult(&rows).
		Get("/rest/v1/chat_history")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: chat_history query returned %d", internal.ErrStoreUnavailable, resp.StatusCode())
	}
	return rows, nil
}

func (s *SupabaseStorage) AppendMessage(ctx context.Context, msg *internal.ChatMessage, auth string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(auth).
		SetHeader("Prefer", "return=minimal").
		SetBody(map[string]string{
			"session_id":      msg.SessionID,
			"role":            msg.Role,
			"message_content": msg.Content,
			"user_id":         msg.UserID,
		}).
		Post("/rest/v1/chat_history")
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: chat_history insert returned %d", internal.ErrStoreUnavailable, resp.StatusCode())
	}
	return nil
}

var (
	_ RecordRepository      = (*SupabaseStorage)(nil)
	_ BabyRepository        = (*SupabaseStorage)(nil)
	_ ChatHistoryRepository = (*SupabaseStorage)(nil)
)
