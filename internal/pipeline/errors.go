package pipeline

import "fmt"

// PanicError is reported for a batch item whose processing panicked.
type PanicError struct {
	ID    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("processing %s panicked: %v", e.ID, e.Value)
}
