package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// maxRequestBodyBytes caps request bodies. The largest legitimate payload
// for this API is a user update of a few hundred bytes.
const maxRequestBodyBytes = 1 << 20

// ErrEmptyRequestBody is returned by DecodeJSON when the request has no body.
var ErrEmptyRequestBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct. Unknown fields
// are rejected so a misspelled field surfaces as an error instead of a
// silently dropped value, and bodies over the size cap fail the decode.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyRequestBody
		}
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}
