// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. Detailed messages are provided
// by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidPath = errors.New("invalid directory")
	ErrInvalidTag  = errors.New("invalid tag")
)
