package domain

import "time"

// HistoryAction tags what a history entry records.
type HistoryAction string

const (
	HistoryActionCreated        HistoryAction = "created"
	HistoryActionStatusChange   HistoryAction = "status_change"
	HistoryActionAssignment     HistoryAction = "assignment"
	HistoryActionPriorityChange HistoryAction = "priority_change"
)

// HistoryEntry is an immutable audit record of one ticket mutation.
// Entries are append-only, never removed or reordered.
type HistoryEntry struct {
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Action         HistoryAction `json:"action"`
	Actor          string        `json:"actor"`
	PreviousStatus *TicketStatus `json:"previous_status,omitempty"`
	NewStatus      *TicketStatus `json:"new_status,omitempty"`
	Description    string        `json:"description"`
}
