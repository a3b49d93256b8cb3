package database

import "fmt"

// PersistenceError wraps a storage failure after the enclosing transaction
// was rolled back.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("database: %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
