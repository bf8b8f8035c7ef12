// Package validate provides input validation for dtags' domain types.
//
// This package sits at the boundary between free-form user input and the
// mapping store. Tag turns arbitrary text into a canonical tag name and Dir
// turns a directory reference into a canonical path; both return a wrapped
// sentinel error when the input cannot be used.
//
// # Batch helpers
//
// Tags drops entries that fail normalisation instead of returning an error.
// This is a convenience for commands that accept many tags at once, not a
// way around validation: the store re-checks every tag on load.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidTag, ErrInvalidPath). Use errors.Is() for type-safe checking:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // handle invalid tag
//	}
package validate
