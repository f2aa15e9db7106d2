package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	ErrEmptyBody    = errors.New("empty body")
	ErrNullBody     = errors.New("null body")
	ErrTrailingJSON = errors.New("trailing data")
)

// ParseJSONBody reads and decodes a JSON HTTP request body into dst.
//
// Intended HTTP mapping: return **400 Bad Request** when decoding fails due to
// syntax/structural issues in the JSON payload or schema shape violations,
// including:
//
//   - Malformed JSON syntax (e.g., bad tokens, truncated body)
//   - Empty body (returns ErrEmptyBody)
//   - A bare `null` body (encoding/json decodes null into a struct as a
//     no-op, which would read as a valid empty object; ErrNullBody)
//   - Trailing data (ensures a *single* JSON value; ErrTrailingJSON)
//   - Field-type mismatches (e.g., string into int, value overflow)
//
// Unknown properties are tolerated and dropped: request schemas here carry
// every field the caller may set, and extra keys carry no meaning.
//
// Notes & scope alignment with 400:
//
//   - This function performs only structural/shape validation of the payload.
//   - It does not validate the presence of required fields; the request
//     schemas track key presence themselves (see Field).
//   - It does not enforce semantic/business rules (ranges, cross-field logic).
//
// The reader is capped at 1MB; request bodies here are single small entities.
func ParseJSONBody[T any](r *http.Request, dst *T) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ErrEmptyBody
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return ErrNullBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure no trailing JSON values
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrTrailingJSON
	}
	return nil
}
