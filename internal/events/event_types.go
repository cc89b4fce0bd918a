package events

import (
	"time"

	"github.com/spec-kit/console-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCallCreated         EventType = "call_created"
	EventCallStatusChanged   EventType = "call_status_changed"
	EventCallCompleted       EventType = "call_completed"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketEscalated     EventType = "ticket_escalated"
	EventUserBlocked         EventType = "user_blocked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CallCreatedPayload payload.
type CallCreatedPayload struct {
	PhoneNumber string          `json:"phone_number"`
	Type        domain.CallType `json:"type"`
}

// CallStatusChangedPayload payload.
type CallStatusChangedPayload struct {
	OldStatus domain.CallStatus `json:"old_status"`
	NewStatus domain.CallStatus `json:"new_status"`
}

// CallCompletedPayload payload.
type CallCompletedPayload struct {
	DurationSeconds int                `json:"duration_seconds"`
	Urgency         domain.CallUrgency `json:"urgency"`
	Archived        bool               `json:"archived"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Note      string              `json:"note,omitempty"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
}

// UserBlockedPayload payload.
type UserBlockedPayload struct {
	PhoneNumber    string `json:"phone_number"`
	FailedAttempts int    `json:"failed_attempts"`
}
