package services

import "errors"

// ValidationError marks operator-correctable input failures (malformed
// add-product command, non-numeric price). The message is safe to show to
// the invoking user verbatim. Every other error out of the service is a
// connectivity failure: logged, and surfaced as a generic notice.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
