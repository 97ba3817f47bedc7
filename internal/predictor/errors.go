package predictor

import "fmt"

// validationError signals bad request input for 400 mapping. It names the
// offending field so the client can correct it.
type validationError struct {
	field string
	msg   string
}

func (e validationError) Error() string { return fmt.Sprintf("field %q %s", e.field, e.msg) }

// ErrValidation constructs a validation error for the given field.
func ErrValidation(field, msg string) error { return validationError{field: field, msg: msg} }

// IsValidation reports whether err indicates rejected request input.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// ValidationField returns the offending field name, or "" if err is not a
// validation error.
func ValidationField(err error) string {
	if v, ok := err.(validationError); ok {
		return v.field
	}
	return ""
}
