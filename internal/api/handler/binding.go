package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/cuongbtq/recruitment-be/internal/api/validation"
	"github.com/gin-gonic/gin"
)

// bindJSON runs the request body through pipes, decodes the result into dst and
// validates it. Pipes see the raw JSON object so they can reject payloads whose
// shape a typed struct would silently accept.
func bindJSON(c *gin.Context, dst validation.Validatable, pipes ...validation.Pipe) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return validation.NewShapeError("Invalid request body")
	}

	var payload validation.Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return validation.NewShapeError("Request body must be a JSON object")
	}

	payload, err = validation.Chain(pipes...).Transform(payload)
	if err != nil {
		return err
	}

	normalized, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to re-encode payload: %w", err)
	}

	if err := json.Unmarshal(normalized, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &validation.ConstraintError{Violations: []validation.Violation{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be %s", typeErr.Field, jsonTypeName(typeErr)),
			}}}
		}
		return validation.NewShapeError("Invalid request body: dates must use RFC 3339 format")
	}

	return dst.Validate()
}

// jsonTypeName names the JSON type the target field expects, with its article
func jsonTypeName(err *json.UnmarshalTypeError) string {
	switch err.Type.Kind() {
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	}
	return "a " + err.Type.String()
}
