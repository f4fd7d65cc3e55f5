package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/usecase/shared"
)

// DBAuditSink appends lifecycle events to an audit table. Like
// notifications, audit writes happen after the commit and are logged rather
// than propagated on failure.
type DBAuditSink struct {
	db db.DBTX
}

func NewDBAuditSink(dbtx db.DBTX) shared.AuditSink {
	return &DBAuditSink{db: dbtx}
}

func (s *DBAuditSink) Record(ctx context.Context, event string, actorID, entityID uuid.UUID, details map[string]any) {
	payload := []byte("{}")
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			slog.Warn("failed to encode audit details", "event", event, "error", err.Error())
		} else {
			payload = b
		}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO audit_events (id, event, actor_id, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		uuid.New(), event, actorID, entityID, payload,
	)
	if err != nil {
		slog.Warn("failed to record audit event", "event", event, "error", err.Error())
	}
}
