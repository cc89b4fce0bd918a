package dto

import "time"

// TicketCreateRequest payload for ticket creation.
type TicketCreateRequest struct {
	Category     string     `json:"category"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CustomerID   string     `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	SLADeadline  *time.Time `json:"sla_deadline,omitempty"`
}

// TicketStatusRequest payload for status transitions.
type TicketStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// TicketAssignRequest payload for assignment.
type TicketAssignRequest struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
}
