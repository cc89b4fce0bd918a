package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/events"
	"github.com/spec-kit/console-service/internal/observability"
)

// AuditService mirrors domain events into the log and the metrics counters
// so the console's activity is observable without a push channel.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to every domain event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventCallCreated,
		events.EventCallStatusChanged,
		events.EventCallCompleted,
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketAssigned,
		events.EventTicketEscalated,
		events.EventUserBlocked,
	} {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.metrics.RecordEvent(string(event.Type))
	a.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor", event.Actor),
		zap.Any("payload", event.Payload),
	)
	return nil
}
