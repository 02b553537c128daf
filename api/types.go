package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusResponse confirms a mutation that returns no entity body
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
