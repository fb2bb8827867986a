package validation

import (
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// StringRule chains constraints on one string field.
// Absent optional fields skip every rule; a failed Required skips the rest.
type StringRule struct {
	v     *Validator
	field string
	value *string
	skip  bool
}

// Required rejects absent and blank values
func (r *StringRule) Required() *StringRule {
	if r.skip {
		return r
	}
	if r.value == nil || strings.TrimSpace(*r.value) == "" {
		r.v.addf(r.field, "should not be empty")
		r.skip = true
	}
	return r
}

// Length enforces min <= rune count <= max
func (r *StringRule) Length(min, max int) *StringRule {
	return r.MinLength(min).MaxLength(max)
}

// MinLength enforces a minimum rune count
func (r *StringRule) MinLength(min int) *StringRule {
	if r.active() && utf8.RuneCountInString(*r.value) < min {
		r.v.addf(r.field, "must be longer than or equal to %d characters", min)
	}
	return r
}

// MaxLength enforces a maximum rune count
func (r *StringRule) MaxLength(max int) *StringRule {
	if r.active() && utf8.RuneCountInString(*r.value) > max {
		r.v.addf(r.field, "must be shorter than or equal to %d characters", max)
	}
	return r
}

// MaxBytes caps the UTF-8 encoded size for sinks that count bytes, not characters
func (r *StringRule) MaxBytes(max int) *StringRule {
	if r.active() && len(*r.value) > max {
		r.v.addf(r.field, "must be shorter than or equal to %d bytes", max)
	}
	return r
}

// OneOf enforces membership in a closed enumeration
func (r *StringRule) OneOf(allowed ...string) *StringRule {
	if r.active() && !slices.Contains(allowed, *r.value) {
		r.v.addf(r.field, "must be one of the following values: %s", joinValues(allowed))
	}
	return r
}

// Email enforces a bare RFC 5322 address
func (r *StringRule) Email() *StringRule {
	if !r.active() {
		return r
	}
	addr, err := mail.ParseAddress(*r.value)
	if err != nil || addr.Address != *r.value {
		r.v.addf(r.field, "must be an email")
	}
	return r
}

func (r *StringRule) active() bool {
	return !r.skip && r.value != nil
}

// SliceRule chains constraints on an array field
type SliceRule struct {
	v       *Validator
	field   string
	n       int
	present bool
	skip    bool
}

// Required rejects absent and empty arrays
func (r *SliceRule) Required() *SliceRule {
	if r.skip {
		return r
	}
	if !r.present || r.n == 0 {
		r.v.addf(r.field, "should not be empty")
		r.skip = true
	}
	return r
}

// MaxSize caps the number of elements
func (r *SliceRule) MaxSize(max int) *SliceRule {
	if !r.skip && r.present && r.n > max {
		r.v.addf(r.field, "must contain no more than %d elements", max)
	}
	return r
}
