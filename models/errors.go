package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoteNotFound is returned by stores when no note has the requested id.
var ErrNoteNotFound = errors.New("note not found")

type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (missing: %s)", e.Message, strings.Join(e.Fields, ", "))
}

// StoreError marks a persistence failure. Op is the verb used in the
// response message, e.g. "creating note".
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("Error %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
