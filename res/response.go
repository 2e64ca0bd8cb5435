package res

// Response is the envelope of every failed request and of the health probe.
// Error carries the underlying cause when it says more than Message.
type Response struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Data    map[string]interface{} `json:"body,omitempty"`
}
