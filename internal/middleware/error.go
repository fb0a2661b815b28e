package middleware

import (
	"errors"
	"net/http"
	"time"

	"boardcamp/internal/domain"
	"boardcamp/internal/validation"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// kindStatus maps error kinds to HTTP status codes
var kindStatus = map[domain.Kind]int{
	domain.KindInvalidInput:     http.StatusBadRequest,
	domain.KindUnknownReference: http.StatusBadRequest,
	domain.KindOutOfStock:       http.StatusBadRequest,
	domain.KindAlreadyClosed:    http.StatusBadRequest,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindConflict:         http.StatusConflict,
	domain.KindUnavailable:      http.StatusServiceUnavailable,
	domain.KindInternal:         http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for err
func StatusFor(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithError sends a structured error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithErrorDetails(w, statusCode, http.StatusText(statusCode), message, nil)
}

// respondWithErrorDetails sends a structured error response with additional details
func respondWithErrorDetails(w http.ResponseWriter, statusCode int, code, message string, details map[string]any) {
	response := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	RespondWithJSON(w, statusCode, response)
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, fields []validation.FieldError) {
	details := map[string]any{"validation_errors": fields}
	respondWithErrorDetails(w, http.StatusBadRequest, string(domain.KindInvalidInput), "validation failed", details)
}

// RespondWithAppError maps a classified error to its status code. Server
// side failures are logged and their cause is never sent to the client.
func RespondWithAppError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(err)

	if fields := validation.FieldErrors(err); len(fields) > 0 {
		RespondWithValidationErrors(w, fields)
		return
	}

	message := http.StatusText(status)
	var appErr *domain.Error
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	} else {
		logger.Debug("Request rejected",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("path", r.URL.Path),
		)
	}

	respondWithErrorDetails(w, status, string(kind), message, nil)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
