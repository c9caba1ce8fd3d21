package dto

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse is the minimal success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Timestamps echoes the client-supplied submission time next to the server
// receive time.
type Timestamps struct {
	Client string `json:"client"`
	Server string `json:"server"`
}
