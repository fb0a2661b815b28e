package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardcamp/internal/domain"
	"boardcamp/internal/validation"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all error responses have consistent structure", prop.ForAll(
		func(message string, statusCode int) bool {
			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode || w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			if _, err := time.Parse(time.RFC3339, response.Error.Timestamp); err != nil {
				return false
			}

			return response.Error.Code == http.StatusText(statusCode) &&
				response.Error.Message == message
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.OneConstOf(
			http.StatusBadRequest,
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusServiceUnavailable,
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRespondWithAppError_StatusPerKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NewInvalidInputError("bad", nil), http.StatusBadRequest},
		{domain.NewUnknownReferenceError("game 9 does not exist"), http.StatusBadRequest},
		{domain.NewOutOfStockError(3), http.StatusBadRequest},
		{domain.NewAlreadyClosedError(4), http.StatusBadRequest},
		{domain.NewNotFoundError("rental 5 not found"), http.StatusNotFound},
		{domain.NewConflictError("category with this name already exists", nil), http.StatusConflict},
		{domain.NewUnavailableError(context.DeadlineExceeded), http.StatusServiceUnavailable},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(domain.KindOf(tt.err)), func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/rentals", nil)

			RespondWithAppError(w, r, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, w.Code)
			response := decodeError(t, w)
			assert.Equal(t, string(domain.KindOf(tt.err)), response.Error.Code)
			assert.NotEmpty(t, response.Error.Message)
		})
	}
}

func TestRespondWithAppError_HidesInternalCause(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/rentals", nil)
	cause := errors.New(`failed to create rental: ERROR: relation "rentals" does not exist`)

	RespondWithAppError(w, r, zap.New(core), cause)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	require.Equal(t, 1, logs.FilterMessage("Request failed").Len())
	assert.Equal(t, "/rentals", logs.All()[0].ContextMap()["path"])
}

func TestRespondWithAppError_ValidationDetails(t *testing.T) {
	_, vErr := validation.ValidateRentalPayload(map[string]any{"daysRented": "3"})
	require.Error(t, vErr)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/rentals", nil)
	RespondWithAppError(w, r, zap.NewNop(), domain.NewInvalidInputError("invalid rental", vErr))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Equal(t, "validation failed", response.Error.Message)
	require.Contains(t, response.Error.Details, "validation_errors")
	assert.True(t, strings.Contains(w.Body.String(), `"field":"daysRented"`))
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w).Error.Message)
}

func TestProperty_JSONResponsesAreValid(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("JSON responses are valid and parseable", prop.ForAll(
		func(data map[string]string) bool {
			w := httptest.NewRecorder()
			RespondWithJSON(w, http.StatusOK, data)

			var result map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				return false
			}

			for k, v := range data {
				if result[k] != v {
					return false
				}
			}
			return len(result) == len(data)
		},
		gen.MapOf(gen.AlphaString(), gen.AnyString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
