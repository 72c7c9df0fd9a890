package handler

// envelope is the success body shared by every JSON endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(message string, data any) envelope {
	return envelope{Success: true, Message: message, Data: data}
}

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Success bool     `json:"success" example:"false"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
