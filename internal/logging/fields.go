package logging

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldRoute     = "route"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor, set by the admin JWT middleware
	FieldUserID = "user_id"

	FieldService = "service"

	// Database
	FieldDriver    = "driver"
	FieldStatement = "statement"
	FieldInUse     = "in_use"

	// Change events
	FieldEventID   = "event_id"
	FieldEventKind = "event_kind"
)
