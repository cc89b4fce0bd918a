package dto

// IncomingCallRequest payload for registering an incoming call.
type IncomingCallRequest struct {
	PhoneNumber string `json:"phone_number"`
	Description string `json:"description,omitempty"`
}

// CallContextRequest payload for the assist panel context refresh.
type CallContextRequest struct {
	DurationSeconds int    `json:"duration_seconds"`
	AIConfidence    int    `json:"ai_confidence"`
	Problem         string `json:"problem"`
}

// ReclassifyRequest payload for changing a call's type.
type ReclassifyRequest struct {
	Type string `json:"type"`
}
