package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/classifier"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/events"
	"github.com/spec-kit/console-service/internal/repository"
	apperrors "github.com/spec-kit/console-service/pkg/util/errorutil"
)

// CallContext carries the fields the assist panel refreshes in one write.
type CallContext struct {
	CallID          string
	DurationSeconds int
	AIConfidence    int
	Problem         string
}

// CallService coordinates call workflows.
type CallService struct {
	calls      repository.CallRepository
	archive    repository.CallArchive
	engine     *classifier.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CallDependencies bundles collaborators for call service.
type CallDependencies struct {
	CallRepo   repository.CallRepository
	Archive    repository.CallArchive
	Classifier *classifier.Engine
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewCallService constructs the service.
func NewCallService(deps CallDependencies) *CallService {
	return &CallService{
		calls:      deps.CallRepo,
		archive:    deps.Archive,
		engine:     deps.Classifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// HandleIncomingCall classifies the description and registers a new active call.
func (s *CallService) HandleIncomingCall(ctx context.Context, phoneNumber, description string) (*domain.Call, error) {
	if err := domain.ValidatePhoneNumber(phoneNumber); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	call := domain.NewCall(uuid.NewString(), phoneNumber, s.engine.Classify(description), description)
	if err := s.calls.Save(ctx, call); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCallCreated,
		EntityID: call.ID,
		Payload:  events.CallCreatedPayload{PhoneNumber: call.PhoneNumber, Type: call.Type},
	})
	return call, nil
}

// AcceptCall puts the call in the active state.
func (s *CallService) AcceptCall(ctx context.Context, callID, agentID string) error {
	return s.changeStatus(ctx, callID, agentID, domain.CallStatusActive)
}

// HoldCall parks the call.
func (s *CallService) HoldCall(ctx context.Context, callID, agentID string) error {
	return s.changeStatus(ctx, callID, agentID, domain.CallStatusOnHold)
}

// TransferCall marks the call as transferring to another agent.
func (s *CallService) TransferCall(ctx context.Context, callID, agentID string) error {
	return s.changeStatus(ctx, callID, agentID, domain.CallStatusTransferring)
}

// Intervene is the supervisor takeover: the call is parked while a human
// steps in for the assistant.
func (s *CallService) Intervene(ctx context.Context, callID, agentID string) error {
	return s.changeStatus(ctx, callID, agentID, domain.CallStatusOnHold)
}

// CompleteCall finishes the call and archives it when Postgres is configured.
func (s *CallService) CompleteCall(ctx context.Context, callID, agentID string) error {
	call, err := s.calls.FindByID(ctx, callID)
	if err != nil {
		return s.mapNotFound(err, "call")
	}

	old := call.Status
	call.ChangeStatus(domain.CallStatusCompleted)
	if err := s.calls.Update(ctx, call); err != nil {
		return apperrors.NewInternalError(err)
	}

	archived := false
	if err := s.archive.ArchiveCall(ctx, &repository.ArchivedCall{
		ID:              call.ID,
		PhoneNumber:     call.PhoneNumber,
		Type:            call.Type,
		DurationSeconds: call.DurationSeconds,
		AIConfidence:    call.AIConfidence,
		Urgency:         call.Urgency,
		AgentID:         agentID,
		StartedAt:       call.Timestamp,
		CompletedAt:     time.Now(),
	}); err != nil {
		// archive loss is tolerated; the live record is authoritative
		s.logger.Warn("call archive write failed", zap.String("call_id", call.ID), zap.Error(err))
	} else {
		archived = true
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCallStatusChanged,
		EntityID: call.ID,
		Actor:    agentID,
		Payload:  events.CallStatusChangedPayload{OldStatus: old, NewStatus: call.Status},
	})
	s.publish(ctx, events.Event{
		Type:     events.EventCallCompleted,
		EntityID: call.ID,
		Actor:    agentID,
		Payload:  events.CallCompletedPayload{DurationSeconds: call.DurationSeconds, Urgency: call.Urgency, Archived: archived},
	})
	return nil
}

// Reclassify changes the call type without touching urgency.
func (s *CallService) Reclassify(ctx context.Context, callID string, newType domain.CallType) error {
	call, err := s.calls.FindByID(ctx, callID)
	if err != nil {
		return s.mapNotFound(err, "call")
	}
	call.Reclassify(newType)
	if err := s.calls.Update(ctx, call); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// UpdateContext refreshes duration, confidence and problem text in one write.
func (s *CallService) UpdateContext(ctx context.Context, update CallContext) error {
	call, err := s.calls.FindByID(ctx, update.CallID)
	if err != nil {
		return s.mapNotFound(err, "call")
	}
	if err := call.UpdateDuration(update.DurationSeconds); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	call.AIConfidence = update.AIConfidence
	call.Description = update.Problem
	if err := s.calls.Update(ctx, call); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Tick advances every active call by one second, recomputing urgency.
// The duration ticker delivers this on a fixed interval.
func (s *CallService) Tick(ctx context.Context) error {
	active, err := s.calls.FindByStatus(ctx, domain.CallStatusActive)
	if err != nil {
		return err
	}
	for i := range active {
		call := active[i]
		if err := call.UpdateDuration(call.DurationSeconds + 1); err != nil {
			continue
		}
		if err := s.calls.Update(ctx, &call); err != nil {
			s.logger.Warn("tick write-back failed", zap.String("call_id", call.ID), zap.Error(err))
		}
	}
	return nil
}

// GetCall fetches one call.
func (s *CallService) GetCall(ctx context.Context, callID string) (*domain.Call, error) {
	call, err := s.calls.FindByID(ctx, callID)
	if err != nil {
		return nil, s.mapNotFound(err, "call")
	}
	return call, nil
}

// ListCalls returns all calls in insertion order.
func (s *CallService) ListCalls(ctx context.Context) ([]domain.Call, error) {
	return s.calls.FindAll(ctx)
}

// ListByStatus filters calls by lifecycle state.
func (s *CallService) ListByStatus(ctx context.Context, status domain.CallStatus) ([]domain.Call, error) {
	return s.calls.FindByStatus(ctx, status)
}

// ListByType filters calls by classification.
func (s *CallService) ListByType(ctx context.Context, callType domain.CallType) ([]domain.Call, error) {
	return s.calls.FindByType(ctx, callType)
}

// UrgentCalls returns calls at the high urgency tier.
func (s *CallService) UrgentCalls(ctx context.Context) ([]domain.Call, error) {
	return s.calls.FindUrgent(ctx)
}

// RecentArchivedCalls lists the durable record of completed calls.
func (s *CallService) RecentArchivedCalls(ctx context.Context, limit int) ([]repository.ArchivedCall, error) {
	return s.archive.ListRecent(ctx, limit)
}

// DeleteCall removes a call; absence is surfaced, not ignored.
func (s *CallService) DeleteCall(ctx context.Context, callID string) error {
	if _, err := s.calls.FindByID(ctx, callID); err != nil {
		return s.mapNotFound(err, "call")
	}
	return s.calls.Delete(ctx, callID)
}

func (s *CallService) changeStatus(ctx context.Context, callID, agentID string, newStatus domain.CallStatus) error {
	call, err := s.calls.FindByID(ctx, callID)
	if err != nil {
		return s.mapNotFound(err, "call")
	}

	old := call.Status
	call.ChangeStatus(newStatus)
	if err := s.calls.Update(ctx, call); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCallStatusChanged,
		EntityID: call.ID,
		Actor:    agentID,
		Payload:  events.CallStatusChangedPayload{OldStatus: old, NewStatus: newStatus},
	})
	return nil
}

func (s *CallService) mapNotFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewInternalError(err)
}

func (s *CallService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
