package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldEmail     = "email"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldBackend   = "backend"
)
