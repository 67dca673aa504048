package storage

import "fmt"

// CorruptStateError is returned by Load when the persisted file exists but
// cannot be decoded. PreservedAs names where the unreadable file was moved.
type CorruptStateError struct {
	Path        string
	PreservedAs string
	Err         error
}

func (e *CorruptStateError) Error() string {
	if e.PreservedAs == "" {
		return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("corrupt state file %s (preserved as %s): %v", e.Path, e.PreservedAs, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
