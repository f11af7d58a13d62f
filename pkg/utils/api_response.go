package utils

import "time"

// Every HTTP response of the service uses the same envelope: clients branch
// on the success flag, then read either data or error.

type SuccessResponse struct {
	Success bool          `json:"success"`
	Data    any           `json:"data"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   ErrorDetail   `json:"error"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// ErrorDetail carries a stable machine-readable code next to the human
// message, so clients never have to parse message text.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    &ResponseMeta{Timestamp: time.Now()},
	}
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Code: code, Message: message},
		Meta:    &ResponseMeta{Timestamp: time.Now()},
	}
}
