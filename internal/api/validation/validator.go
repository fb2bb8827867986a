// Package validation implements request payload shaping and field validation.
//
// Field constraints are declared with a builder instead of struct tags:
//
//	v := validation.New()
//	v.String("position", r.Position).Required().Length(3, 100)
//	v.String("work_mode", r.WorkMode).Required().OneOf("remote", "hybrid", "onsite")
//	validation.Each(v, "skills", r.Skills, func(v *validation.Validator, s Skill) {
//		v.String("name", s.Name).Required()
//	})
//	return v.Err()
//
// Rules are evaluated in declaration order and every violation is collected, so a
// rejected payload reports all of its problems at once.
package validation

import (
	"fmt"
	"strings"
)

// Validatable is implemented by request DTOs
type Validatable interface {
	Validate() error
}

// Validator collects violations for one object graph
type Validator struct {
	prefix     string
	violations *[]Violation
}

// New creates an empty validator
func New() *Validator {
	return &Validator{violations: &[]Violation{}}
}

// Check records message against field when ok is false
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.add(field, message)
	}
	return v
}

// String starts a rule chain for a string field. A nil value means the field was absent.
func (v *Validator) String(field string, value *string) *StringRule {
	return &StringRule{v: v, field: field, value: value}
}

// Slice starts a rule chain for an array field of length n. present is false when
// the field was absent from the payload.
func (v *Validator) Slice(field string, n int, present bool) *SliceRule {
	return &SliceRule{v: v, field: field, n: n, present: present}
}

// Nested validates a nested object whose fields are reported as "field.<name>"
func (v *Validator) Nested(field string, fn func(*Validator)) *Validator {
	fn(v.child(field))
	return v
}

// Each validates every element of items, reporting fields as "field.<i>.<name>"
func Each[T any](v *Validator, field string, items []T, fn func(*Validator, T)) {
	for i, item := range items {
		fn(v.child(fmt.Sprintf("%s.%d", field, i)), item)
	}
}

// Valid reports whether no violation has been recorded so far
func (v *Validator) Valid() bool {
	return len(*v.violations) == 0
}

// Violations returns a copy of the recorded violations
func (v *Validator) Violations() []Violation {
	out := make([]Violation, len(*v.violations))
	copy(out, *v.violations)
	return out
}

// Err returns a *ConstraintError holding every violation, or nil
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &ConstraintError{Violations: v.Violations()}
}

func (v *Validator) child(field string) *Validator {
	return &Validator{prefix: v.path(field) + ".", violations: v.violations}
}

func (v *Validator) path(field string) string {
	return v.prefix + field
}

func (v *Validator) add(field, message string) {
	*v.violations = append(*v.violations, Violation{Field: v.path(field), Message: message})
}

// addf records a message that starts with the fully qualified field name
func (v *Validator) addf(field, format string, args ...any) {
	full := v.path(field)
	*v.violations = append(*v.violations, Violation{
		Field:   full,
		Message: full + " " + fmt.Sprintf(format, args...),
	})
}

func joinValues(values []string) string {
	return strings.Join(values, ", ")
}

// Optional converts a query or form value to the absent-or-present form used by String
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
