package middleware

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"io"
	"net/http"

	"boardcamp/internal/domain"

	jsoniter "github.com/json-iterator/go"
)

// MaxBodyBytes caps the size of a JSON request body
const MaxBodyBytes = 1 << 20

var errNotObject = errors.New("request body must be a JSON object")

// recordJSON keeps numbers as json.Number so integer checks see the literal
// the client sent
var recordJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// DecodeRecord reads the request body as a single JSON object
func DecodeRecord(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewInvalidInputError("request body is too large", err)
		}
		return nil, domain.NewInvalidInputError("failed to read request body", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewInvalidInputError("request body is empty", nil)
	}

	// jsoniter accepts some truncated documents, so syntax is checked strictly first
	if !stdjson.Valid(body) {
		return nil, domain.NewInvalidInputError("request body is not valid JSON", nil)
	}

	var record map[string]any
	if err := recordJSON.Unmarshal(body, &record); err != nil || record == nil {
		return nil, domain.NewInvalidInputError(errNotObject.Error(), errNotObject)
	}

	return record, nil
}
