package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"speedx/internal/log"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, res Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	res.Status = http.StatusText(statusCode)
	res.StatusCode = statusCode

	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, Response{Data: data, Message: message})
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Response{Message: message})
}

// Fail reports an error with a machine readable code next to the message.
func Fail(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, Response{Code: code, Message: message})
}
