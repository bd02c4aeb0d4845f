package objects

// ErrorDetail carries the translated error payload.
type ErrorDetail struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	TraceID string            `json:"trace_id,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse is the uniform error envelope for every API failure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is a minimal acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}
