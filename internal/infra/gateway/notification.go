package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/usecase/shared"
)

// DBNotificationSink queues notifications as rows for an out-of-process
// worker to deliver. A failed enqueue is logged and dropped; notifications
// never fail the request that triggered them.
type DBNotificationSink struct {
	db db.DBTX
}

func NewDBNotificationSink(dbtx db.DBTX) shared.NotificationSink {
	return &DBNotificationSink{db: dbtx}
}

func (s *DBNotificationSink) Notify(ctx context.Context, userID uuid.UUID, title, message string, relatedEntityID uuid.UUID) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, recipient_id, title, message, related_entity_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'queued', now())`,
		uuid.New(), userID, title, message, relatedEntityID,
	)
	if err != nil {
		slog.Warn("failed to enqueue notification",
			"recipient_id", userID.String(),
			"title", title,
			"error", err.Error())
	}
}
