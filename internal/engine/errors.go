package engine

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAmbiguousTaskID = errors.New("task id prefix matches more than one task")
	ErrQuestDoneToday  = errors.New("daily quest already completed today")
	ErrUnknownAction   = errors.New("unknown command action")
)

// ValidationError rejects externally supplied input before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
