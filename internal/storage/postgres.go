package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seyitm/baby-ai/internal"
)

// PostgresStorage queries the same tables directly over a pgx pool, for
// deployments that sit next to the database instead of going through the
// hosted REST layer. The bearer credential is unused here; scoping happens
// through the ids in each query.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) FetchLatestRecord(ctx context.Context, babyID string, kind internal.ReportKind, _ string) (*RawRecord, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, baby_id, report_type, created_at, data FROM reports
		 WHERE baby_id = $1 AND report_type = $2
		 ORDER BY created_at DESC LIMIT 1`, babyID, string(kind))

	var rec RawRecord
	var kindStr string
	var data []byte
	if err := row.Scan(&rec.ID, &rec.BabyID, &kindStr, &rec.CreatedAt, &data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	rec.Kind = internal.ReportKind(kindStr)
	rec.Data = data
	return &rec, nil
}

func (p *PostgresStorage) LatestBabyID(ctx context.Context, userID, _ string) (string, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id FROM babies WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)

	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	return id, nil
}

func (p *PostgresStorage) ListMessages(ctx context.Context, sessionID, _ string) ([]internal.ChatMessage, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT session_id, user_id, role, message_content, created_at FROM chat_history
		 WHERE session_id = $1 ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var msgs []internal.ChatMessage
	for rows.Next() {
		var m internal.ChatMessage
		if err := rows.Scan(&m.SessionID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	return msgs, nil
}

func (p *PostgresStorage) AppendMessage(ctx context.Context, msg *internal.ChatMessage, _ string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO chat_history (session_id, user_id, role, message_content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		msg.SessionID, msg.UserID, msg.Role, msg.Content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
	}
	return nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

var (
	_ RecordRepository      = (*PostgresStorage)(nil)
	_ BabyRepository        = (*PostgresStorage)(nil)
	_ ChatHistoryRepository = (*PostgresStorage)(nil)
)
