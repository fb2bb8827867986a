package validation

import (
	"fmt"
	"strings"
)

// Payload is a request body decoded into its untyped JSON form
type Payload = map[string]any

// Pipe is a synchronous step applied to a payload before it reaches a handler.
// A pipe either returns the (possibly reshaped) payload or rejects it.
type Pipe interface {
	Transform(p Payload) (Payload, error)
}

// PipeFunc adapts a function to the Pipe interface
type PipeFunc func(p Payload) (Payload, error)

// Transform calls f(p)
func (f PipeFunc) Transform(p Payload) (Payload, error) {
	return f(p)
}

// Chain runs pipes in order and stops at the first rejection
func Chain(pipes ...Pipe) Pipe {
	return PipeFunc(func(p Payload) (Payload, error) {
		var err error
		for _, pipe := range pipes {
			if p, err = pipe.Transform(p); err != nil {
				return nil, err
			}
		}
		return p, nil
	})
}

// ConditionalFieldPipe requires the nested object selected by a discriminator field.
// Required maps discriminator values to the name of the field that must be present.
type ConditionalFieldPipe struct {
	Discriminator string
	Required      map[string]string
}

// Transform returns p unchanged, or a ShapeError when the selected field is missing
func (c ConditionalFieldPipe) Transform(p Payload) (Payload, error) {
	tag, ok := p[c.Discriminator].(string)
	if !ok {
		return p, nil
	}

	field, ok := c.Required[tag]
	if !ok {
		return p, nil
	}

	if value, present := p[field]; !present || value == nil {
		return nil, NewShapeError(fmt.Sprintf("%s is required for %s users", field, strings.ToUpper(tag)))
	}

	return p, nil
}

// NonEmptyPipe rejects payloads without any key. It guards partial updates
// against accidental no-op requests.
type NonEmptyPipe struct{}

// Transform returns p unchanged unless it is empty
func (NonEmptyPipe) Transform(p Payload) (Payload, error) {
	if len(p) == 0 {
		return nil, NewShapeError("Update data cannot be empty")
	}
	return p, nil
}
