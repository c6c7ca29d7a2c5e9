package service

import (
	"context"
	"strings"
	"time"

	"file_vault/internal/logger"
	"file_vault/internal/models"
	"file_vault/internal/repository"

	"github.com/samber/oops"
)

// AuditRecorder appends security events. Recording is best effort: a
// failure is logged and never reaches the caller.
type AuditRecorder struct {
	repo repository.EventRepo
	log  *logger.Logger
}

func NewAuditRecorder(repo repository.EventRepo, log *logger.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

func (r *AuditRecorder) Record(ctx context.Context, typ, description string, meta map[string]any) {
	if r == nil || r.repo == nil {
		return
	}
	ev := models.AuditEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	// the request may already be cancelled; the event should still land
	if err := r.repo.Append(context.WithoutCancel(ctx), ev); err != nil && r.log != nil {
		r.log.Warnw("audit_append_failed", "type", typ, "error", err)
	}
}

type AuditLogService struct {
	eventRepo repository.EventRepo
}

func NewAuditLogService(eventRepo repository.EventRepo) *AuditLogService {
	return &AuditLogService{eventRepo: eventRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", validationError("invalid time range: from must be <= to")
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *AuditLogService) ListEvents(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, from, to, typ)
	if err != nil {
		return nil, oops.Code("AUDIT_LIST_FAILED").With("type", typ).Wrap(err)
	}
	return events, nil
}
