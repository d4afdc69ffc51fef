package dto

// Response is the envelope every endpoint answers with. Error responses set
// Error to a stable machine code and Message to the human explanation.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps data plus a human message.
func OKMessage(data interface{}, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Err builds an error envelope from a machine code and a human message.
func Err(code, message string) Response {
	return Response{Success: false, Error: code, Message: message}
}
