package utils

// ErrorResponse is a struct for error response. Code carries the machine
// readable error kind (e.g. SLOT_TAKEN) where callers need to branch.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
