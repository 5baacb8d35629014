// Package httputil centralizes the JSON response envelopes shared by every
// resource module so the wire shapes stay consistent across the service.
package httputil

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

// Envelope is the uniform success/failure body. Fields are omitted when unset
// so a 404 carries {status, message} and a list carries {status, data, total}.
type Envelope struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	ID      interface{} `json:"_id,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo is the diagnostic descriptor attached to 500 responses. The
// user-visible message stays generic; this carries the underlying cause.
type ErrorInfo struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// WriteJSON serializes v with the given status code. Encoding failures are
// ignored: the header is already written and there is nothing left to do.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data writes the list/fetch success envelope {status, data}.
func Data(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// List writes the paginated success envelope {status, data, total}.
func List(w http.ResponseWriter, data interface{}, total int64) {
	WriteJSON(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data, Total: &total})
}

// Created writes the create success body {message, _id}.
func Created(w http.ResponseWriter, message string, id interface{}) {
	WriteJSON(w, http.StatusOK, Envelope{Message: message, ID: id})
}

// Updated writes the update success body {status, message, data}.
func Updated(w http.ResponseWriter, message string, data interface{}) {
	WriteJSON(w, http.StatusOK, Envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Message writes a {status, message} envelope with the given status code.
// Used for 400s, 404s, and message-only 200s.
func Message(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Status: status, Message: message})
}

// ServerError writes the 500 envelope. The message is the per-endpoint generic
// "<API name> error"; err and the current stack go into the descriptor.
func ServerError(w http.ResponseWriter, apiName string, err error) {
	info := &ErrorInfo{Stack: string(debug.Stack())}
	if err != nil {
		info.Message = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, Envelope{
		Status:  http.StatusInternalServerError,
		Message: apiName + " error",
		Error:   info,
	})
}
