package domain

import (
	"time"

	"github.com/google/uuid"
)

// TicketCategory is fixed at creation and determines the default priority.
type TicketCategory string

const (
	TicketCategorySupport    TicketCategory = "support"
	TicketCategoryComplaints TicketCategory = "complaints"
	TicketCategorySales      TicketCategory = "sales"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew               TicketStatus = "new"
	TicketStatusInProgress        TicketStatus = "in_progress"
	TicketStatusPendingUser       TicketStatus = "pending_user"
	TicketStatusWaitingThirdParty TicketStatus = "waiting_third_party"
	TicketStatusResolved          TicketStatus = "resolved"
	TicketStatusClosed            TicketStatus = "closed"
)

// TicketPriority enumerates escalation tiers.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// DefaultPriorityFor maps a category to its creation priority.
func DefaultPriorityFor(category TicketCategory) TicketPriority {
	switch category {
	case TicketCategoryComplaints:
		return TicketPriorityHigh
	case TicketCategorySales:
		return TicketPriorityLow
	default:
		return TicketPriorityMedium
	}
}

// Ticket is the aggregate for support requests raised from calls.
type Ticket struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customer_id,omitempty"`
	CustomerName string         `json:"customer_name,omitempty"`
	Category     TicketCategory `json:"category"`
	Status       TicketStatus   `json:"status"`
	Priority     TicketPriority `json:"priority"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	AssignedTo   string         `json:"assigned_to,omitempty"`
	SLADeadline  *time.Time     `json:"sla_deadline,omitempty"`
	History      []HistoryEntry `json:"history"`
}

// NewTicket constructs a ticket in status "new" with the category's default
// priority and a seeded creation history entry.
func NewTicket(id string, category TicketCategory, title, description, customerID, customerName string) *Ticket {
	now := time.Now()
	return &Ticket{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: customerName,
		Category:     category,
		Status:       TicketStatusNew,
		Priority:     DefaultPriorityFor(category),
		Title:        title,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
		History: []HistoryEntry{{
			ID:          uuid.NewString(),
			Timestamp:   now,
			Action:      HistoryActionCreated,
			Actor:       "system",
			Description: "ticket created: " + title,
		}},
	}
}

// ChangeStatus moves the ticket to newStatus and appends exactly one history
// entry. The old status is captured before the overwrite so the entry always
// records the genuine previous state.
func (t *Ticket) ChangeStatus(newStatus TicketStatus, actor, note string) {
	previous := t.Status
	now := time.Now()

	t.Status = newStatus
	t.UpdatedAt = now
	t.History = append(t.History, HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Action:         HistoryActionStatusChange,
		Actor:          actor,
		PreviousStatus: &previous,
		NewStatus:      &newStatus,
		Description:    note,
	})
}

// AssignTo hands the ticket to an agent and records the assignment.
func (t *Ticket) AssignTo(agentID, agentName string) {
	now := time.Now()
	t.AssignedTo = agentID
	t.UpdatedAt = now
	t.History = append(t.History, HistoryEntry{
		ID:          uuid.NewString(),
		Timestamp:   now,
		Action:      HistoryActionAssignment,
		Actor:       agentName,
		Description: "ticket assigned to " + agentName,
	})
}

// Escalate raises priority one step along low→medium→high→urgent. At urgent
// it is a complete no-op so repeated escalation stays idempotent.
func (t *Ticket) Escalate(actor string) {
	var next TicketPriority
	switch t.Priority {
	case TicketPriorityLow:
		next = TicketPriorityMedium
	case TicketPriorityMedium:
		next = TicketPriorityHigh
	case TicketPriorityHigh:
		next = TicketPriorityUrgent
	default:
		return
	}

	now := time.Now()
	previous := t.Priority
	t.Priority = next
	t.UpdatedAt = now
	t.History = append(t.History, HistoryEntry{
		ID:          uuid.NewString(),
		Timestamp:   now,
		Action:      HistoryActionPriorityChange,
		Actor:       actor,
		Description: "priority escalated from " + string(previous) + " to " + string(next),
	})
}

// IsOverdue reports whether the SLA deadline has passed.
func (t *Ticket) IsOverdue(now time.Time) bool {
	return t.SLADeadline != nil && now.After(*t.SLADeadline)
}
