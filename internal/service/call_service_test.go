package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/classifier"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/repository"
	apperrors "github.com/spec-kit/console-service/pkg/util/errorutil"
)

func newTestCallService() (*CallService, repository.CallRepository) {
	calls := repository.NewCallRepository()
	svc := NewCallService(CallDependencies{
		CallRepo:   calls,
		Archive:    repository.NewCallArchive(nil),
		Classifier: classifier.New(nil, domain.CallTypeTechnicalSupport),
		Logger:     zap.NewNop(),
	})
	return svc, calls
}

func TestHandleIncomingCallClassifies(t *testing.T) {
	svc, _ := newTestCallService()
	ctx := context.Background()

	tests := []struct {
		name        string
		description string
		want        domain.CallType
	}{
		{"complaint keywords", "quiero hacer un reclamo por la factura", domain.CallTypeComplaint},
		{"sales keywords", "me interesa comprar el plan premium", domain.CallTypeSales},
		{"technical keywords", "tengo un problema con el router", domain.CallTypeTechnicalSupport},
		{"empty description", "", domain.CallTypeTechnicalSupport},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call, err := svc.HandleIncomingCall(ctx, "+573001112222", tc.description)
			if err != nil {
				t.Fatalf("incoming call: %v", err)
			}
			if call.Type != tc.want {
				t.Errorf("expected %s, got %s", tc.want, call.Type)
			}
			if call.Status != domain.CallStatusActive {
				t.Errorf("new call should be active, got %s", call.Status)
			}
			if call.Urgency != domain.CallUrgencyLow {
				t.Errorf("new call should start low, got %s", call.Urgency)
			}
		})
	}
}

func TestHandleIncomingCallRejectsBadPhone(t *testing.T) {
	svc, _ := newTestCallService()
	_, err := svc.HandleIncomingCall(context.Background(), "not-a-phone", "hola")
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestTickAdvancesOnlyActiveCalls(t *testing.T) {
	svc, calls := newTestCallService()
	ctx := context.Background()

	active, err := svc.HandleIncomingCall(ctx, "+573001112222", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}
	parked, err := svc.HandleIncomingCall(ctx, "+573001113333", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}
	if err := svc.HoldCall(ctx, parked.ID, "agent-1"); err != nil {
		t.Fatalf("hold: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.Tick(ctx); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}

	gotActive, _ := calls.FindByID(ctx, active.ID)
	if gotActive.DurationSeconds != 3 {
		t.Errorf("active call duration = %d, want 3", gotActive.DurationSeconds)
	}
	gotParked, _ := calls.FindByID(ctx, parked.ID)
	if gotParked.DurationSeconds != 0 {
		t.Errorf("held call duration = %d, want 0", gotParked.DurationSeconds)
	}
}

func TestUpdateContextRejectsNegativeDuration(t *testing.T) {
	svc, calls := newTestCallService()
	ctx := context.Background()

	call, err := svc.HandleIncomingCall(ctx, "+573001112222", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}

	err = svc.UpdateContext(ctx, CallContext{CallID: call.ID, DurationSeconds: -5, AIConfidence: 80})
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}

	stored, _ := calls.FindByID(ctx, call.ID)
	if stored.DurationSeconds != 0 || stored.AIConfidence != 100 {
		t.Errorf("rejected update mutated the call: %+v", stored)
	}
}

func TestUpdateContextRecomputesUrgency(t *testing.T) {
	svc, calls := newTestCallService()
	ctx := context.Background()

	call, err := svc.HandleIncomingCall(ctx, "+573001112222", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}

	if err := svc.UpdateContext(ctx, CallContext{CallID: call.ID, DurationSeconds: 400, AIConfidence: 60, Problem: "sin servicio"}); err != nil {
		t.Fatalf("update context: %v", err)
	}

	stored, _ := calls.FindByID(ctx, call.ID)
	if stored.Urgency != domain.CallUrgencyHigh {
		t.Errorf("expected high urgency, got %s", stored.Urgency)
	}
	if !stored.NeedsIntervention() {
		t.Error("low confidence long call should need intervention")
	}

	urgent, err := svc.UrgentCalls(ctx)
	if err != nil {
		t.Fatalf("urgent calls: %v", err)
	}
	if len(urgent) != 1 || urgent[0].ID != call.ID {
		t.Errorf("unexpected urgent set: %+v", urgent)
	}
}

func TestCompleteCallWithDisabledArchive(t *testing.T) {
	svc, calls := newTestCallService()
	ctx := context.Background()

	call, err := svc.HandleIncomingCall(ctx, "+573001112222", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}

	if err := svc.CompleteCall(ctx, call.ID, "agent-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stored, _ := calls.FindByID(ctx, call.ID)
	if stored.Status != domain.CallStatusCompleted {
		t.Errorf("expected completed, got %s", stored.Status)
	}
}

func TestCallStatusTransitions(t *testing.T) {
	svc, calls := newTestCallService()
	ctx := context.Background()

	call, err := svc.HandleIncomingCall(ctx, "+573001112222", "")
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}

	steps := []struct {
		name string
		fn   func(context.Context, string, string) error
		want domain.CallStatus
	}{
		{"hold", svc.HoldCall, domain.CallStatusOnHold},
		{"accept", svc.AcceptCall, domain.CallStatusActive},
		{"transfer", svc.TransferCall, domain.CallStatusTransferring},
		{"intervene", svc.Intervene, domain.CallStatusOnHold},
	}
	for _, step := range steps {
		if err := step.fn(ctx, call.ID, "agent-1"); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		stored, _ := calls.FindByID(ctx, call.ID)
		if stored.Status != step.want {
			t.Errorf("%s: expected %s, got %s", step.name, step.want, stored.Status)
		}
	}
}

func TestDeleteCallSurfacesMissing(t *testing.T) {
	svc, _ := newTestCallService()
	err := svc.DeleteCall(context.Background(), "missing")
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
