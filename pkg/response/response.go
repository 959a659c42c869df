package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for every JSON reply. Redirect names the page the
// client should move to next (the login page after registering, the
// originating form after a failed submit).
type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    interface{} `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessRedirect(w http.ResponseWriter, statusCode int, message string, data interface{}, redirect string) {
	JSON(w, statusCode, Response{
		Success:  true,
		Message:  message,
		Data:     data,
		Redirect: redirect,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func ErrorRedirect(w http.ResponseWriter, statusCode int, message string, err interface{}, redirect string) {
	JSON(w, statusCode, Response{
		Success:  false,
		Message:  message,
		Error:    err,
		Redirect: redirect,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}, redirect string) {
	JSON(w, http.StatusBadRequest, Response{
		Success:  false,
		Message:  "Please fill all required fields!",
		Error:    errors,
		Redirect: redirect,
	})
}

// Redirect sends a plain 303 to location with no error detail.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, orDefault(message, "Resource not found"), nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, orDefault(message, "Internal server error"), nil)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, orDefault(message, "Too many requests"), nil)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
