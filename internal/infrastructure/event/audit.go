package event

import (
	"context"

	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditHandler writes every domain event to the structured log
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates an AuditHandler
func NewAuditHandler(l *zap.Logger) *AuditHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditHandler{logger: l.Named("audit")}
}

// Handle logs the event with the request id carried by ctx, if any
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}
	if id := logger.GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	h.logger.Info("domain event", fields...)
	return nil
}

// EventTypes returns nil so the handler receives every event
func (h *AuditHandler) EventTypes() []string {
	return nil
}
