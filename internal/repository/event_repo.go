package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"file_vault/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository { return &EventRepository{db: db} }

var _ EventRepo = (*EventRepository)(nil)

const (
	insertEventSQL = `INSERT INTO audit_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, message, meta FROM audit_events`
)

type eventRow struct {
	ID         string         `db:"id"`
	OccurredAt time.Time      `db:"occurred_at"`
	Type       string         `db:"type"`
	Message    string         `db:"message"`
	Meta       sql.NullString `db:"meta"`
}

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventRepository) Append(ctx context.Context, e models.AuditEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var meta sql.NullString
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", e.Type, err)
		}
		meta = sql.NullString{String: string(b), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertEventSQL),
		e.EventID,
		e.OccurredAt.UTC(),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert audit event %s: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *EventRepository) List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := selectEventSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	out := make([]models.AuditEvent, 0, len(rows))
	for _, row := range rows {
		ev := models.AuditEvent{
			EventID:     row.ID,
			OccurredAt:  row.OccurredAt.UTC(),
			Type:        row.Type,
			Description: row.Message,
		}
		if row.Meta.Valid && row.Meta.String != "" {
			var v any
			if err := json.Unmarshal([]byte(row.Meta.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = row.Meta.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	return out, nil
}
