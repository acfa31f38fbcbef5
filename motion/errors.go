package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/drift/vec"
)

// ErrInvalidConfig is the sentinel wrapped by every construction-time
// validation failure, so callers can errors.Is against one value.
var ErrInvalidConfig = errors.New("motion: invalid config")

// FieldError describes one rejected configuration field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError reports every offending field of a config struct at once
// rather than failing on the first.
type ValidationError struct {
	Subject string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s config: ", e.Subject)
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Field, f.Reason)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// validator accumulates field rejections during config checks.
type validator struct {
	subject string
	fields  []FieldError
}

func (v *validator) reject(field, reason string) {
	v.fields = append(v.fields, FieldError{Field: field, Reason: reason})
}

// finite rejects NaN and infinite values.
func (v *validator) finite(field string, val float64) {
	if !finite(val) {
		v.reject(field, "must be a finite number")
	}
}

// nonNegative rejects NaN, infinities and negatives.
func (v *validator) nonNegative(field string, val float64) {
	if !finite(val) {
		v.reject(field, "must be a finite number")
		return
	}
	if val < 0 {
		v.reject(field, "must not be negative")
	}
}

// positive rejects anything not strictly above zero.
func (v *validator) positive(field string, val float64) {
	if !finite(val) {
		v.reject(field, "must be a finite number")
		return
	}
	if val <= 0 {
		v.reject(field, "must be positive")
	}
}

func (v *validator) vec(field string, val vec.Vec) {
	v.finite(field+".x", val.X)
	v.finite(field+".y", val.Y)
}

// err returns nil when no field was rejected.
func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Subject: v.subject, Fields: v.fields}
}

// fieldIndex names one entry of a slice field, e.g. sensors[2].
func fieldIndex(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
