package model

// Outcome is the result of a write handler. Success false with a Message is
// an application-level refusal (missing reference, nothing to change) and is
// reported to the client with HTTP 200; unexpected failures travel as errors.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK is a successful outcome.
func OK() Outcome { return Outcome{Success: true} }

// Refused is a failed outcome carrying a user-facing reason.
func Refused(msg string) Outcome { return Outcome{Success: false, Message: msg} }
