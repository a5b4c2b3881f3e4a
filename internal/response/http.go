package response

// APIResponse is the envelope of every successful JSON reply.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// OK wraps data in a successful envelope.
func OK[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Message: message, Data: data}
}

// ErrorResponse carries the single-line message shown to the user.
type ErrorResponse struct {
	Error string `json:"error"`
}
