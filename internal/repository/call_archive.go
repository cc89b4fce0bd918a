package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/console-service/internal/domain"
)

// ArchivedCall is the durable record written when a call completes.
type ArchivedCall struct {
	ID              string
	PhoneNumber     string
	Type            domain.CallType
	DurationSeconds int
	AIConfidence    int
	Urgency         domain.CallUrgency
	AgentID         string
	StartedAt       time.Time
	CompletedAt     time.Time
}

// CallArchive persists completed calls to Postgres.
type CallArchive interface {
	ArchiveCall(ctx context.Context, record *ArchivedCall) error
	ListRecent(ctx context.Context, limit int) ([]ArchivedCall, error)
}

type callArchive struct {
	pool *pgxpool.Pool
}

// NewCallArchive returns a Postgres-backed archive. A nil pool yields a
// disabled archive whose writes succeed silently.
func NewCallArchive(pool *pgxpool.Pool) CallArchive {
	return &callArchive{pool: pool}
}

func (a *callArchive) ArchiveCall(ctx context.Context, record *ArchivedCall) error {
	if a.pool == nil {
		return nil
	}
	const query = `
        INSERT INTO call_archive (id, phone_number, call_type, duration_seconds, ai_confidence, urgency, agent_id, started_at, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO NOTHING`
	_, err := a.pool.Exec(ctx, query,
		record.ID,
		record.PhoneNumber,
		record.Type,
		record.DurationSeconds,
		record.AIConfidence,
		record.Urgency,
		record.AgentID,
		record.StartedAt,
		record.CompletedAt,
	)
	return err
}

func (a *callArchive) ListRecent(ctx context.Context, limit int) ([]ArchivedCall, error) {
	if a.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, phone_number, call_type, duration_seconds, ai_confidence, urgency, agent_id, started_at, completed_at
        FROM call_archive ORDER BY completed_at DESC LIMIT $1`
	rows, err := a.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ArchivedCall
	for rows.Next() {
		var record ArchivedCall
		if err := rows.Scan(
			&record.ID,
			&record.PhoneNumber,
			&record.Type,
			&record.DurationSeconds,
			&record.AIConfidence,
			&record.Urgency,
			&record.AgentID,
			&record.StartedAt,
			&record.CompletedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
