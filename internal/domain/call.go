package domain

import (
	"errors"
	"time"
)

// CallType is the classification the keyword engine assigns to a call.
type CallType string

const (
	CallTypeSales            CallType = "sales"
	CallTypeTechnicalSupport CallType = "technical_support"
	CallTypeComplaint        CallType = "complaint"
)

// CallStatus enumerates lifecycle states for live calls.
type CallStatus string

const (
	CallStatusActive       CallStatus = "active"
	CallStatusOnHold       CallStatus = "on-hold"
	CallStatusTransferring CallStatus = "transferring"
	CallStatusCompleted    CallStatus = "completed"
)

// CallUrgency is derived from the running duration, never set directly.
type CallUrgency string

const (
	CallUrgencyLow    CallUrgency = "low"
	CallUrgencyMedium CallUrgency = "medium"
	CallUrgencyHigh   CallUrgency = "high"
)

// Duration thresholds in seconds. Above the high threshold a call is urgent
// and flagged for human intervention regardless of assistant confidence.
const (
	urgencyMediumThreshold = 150
	urgencyHighThreshold   = 300
)

// interventionConfidenceFloor is the assistant confidence below which a
// supervisor should step in.
const interventionConfidenceFloor = 70

// Call is a live conversation on the operator console.
type Call struct {
	ID              string      `json:"id"`
	PhoneNumber     string      `json:"phone_number"`
	Type            CallType    `json:"type"`
	Status          CallStatus  `json:"status"`
	Urgency         CallUrgency `json:"urgency"`
	DurationSeconds int         `json:"duration_seconds"`
	AIConfidence    int         `json:"ai_confidence"`
	Description     string      `json:"description,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}

// NewCall registers a call that just connected: active, zero duration,
// low urgency. Confidence starts at full until the assistant reports.
func NewCall(id, phoneNumber string, callType CallType, description string) *Call {
	return &Call{
		ID:              id,
		PhoneNumber:     phoneNumber,
		Type:            callType,
		Status:          CallStatusActive,
		Urgency:         CallUrgencyLow,
		DurationSeconds: 0,
		AIConfidence:    100,
		Description:     description,
		Timestamp:       time.Now(),
	}
}

// UpdateDuration sets the running duration and recomputes urgency from it.
// Negative input is rejected without mutating the call.
func (c *Call) UpdateDuration(seconds int) error {
	if seconds < 0 {
		return errors.New("duration cannot be negative")
	}
	c.DurationSeconds = seconds
	c.Urgency = urgencyFor(seconds)
	return nil
}

// Reclassify changes the call type. Urgency stays untouched since it is a
// function of duration, not classification.
func (c *Call) Reclassify(newType CallType) {
	c.Type = newType
}

// ChangeStatus toggles the lifecycle state.
func (c *Call) ChangeStatus(newStatus CallStatus) {
	c.Status = newStatus
}

// IsUrgent reports whether the call sits at the high urgency tier.
func (c *Call) IsUrgent() bool {
	return c.Urgency == CallUrgencyHigh || c.DurationSeconds > urgencyHighThreshold
}

// NeedsIntervention flags calls a human should take over: low assistant
// confidence or a conversation running past the high-urgency threshold.
func (c *Call) NeedsIntervention() bool {
	return c.AIConfidence < interventionConfidenceFloor || c.DurationSeconds > urgencyHighThreshold
}

func urgencyFor(seconds int) CallUrgency {
	switch {
	case seconds > urgencyHighThreshold:
		return CallUrgencyHigh
	case seconds > urgencyMediumThreshold:
		return CallUrgencyMedium
	default:
		return CallUrgencyLow
	}
}
