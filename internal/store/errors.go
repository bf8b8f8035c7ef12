// errors.go defines the store's failure kinds.
//
// Two kinds exist and both are fatal to the invoking command:
//   - CorruptError: the mapping file exists but is not a valid mapping
//   - StorageError: the filesystem refused a read or write
//
// Both carry the offending path and unwrap to a sentinel (ErrCorrupt,
// ErrStorage) as well as to the underlying cause.

package store

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrCorrupt = errors.New("corrupt mapping")
	ErrStorage = errors.New("storage failure")
)

// CorruptError reports a mapping file that cannot be trusted.
// No repair is attempted; the user must fix or delete the file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("bad data in %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() []error { return []error{ErrCorrupt, e.Err} }

func corrupt(path, format string, args ...any) *CorruptError {
	return &CorruptError{Path: path, Err: fmt.Errorf(format, args...)}
}

// StorageError reports an I/O failure against a store file.
type StorageError struct {
	Op   string // what was being attempted, e.g. "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// storageErr builds a StorageError, unwrapping *fs.PathError so the path is
// not printed twice.
func storageErr(op, path string, err error) *StorageError {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &StorageError{Op: op, Path: path, Err: err}
}
