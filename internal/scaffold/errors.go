package scaffold

import "fmt"

// Error is a failed filesystem or repository operation on a specific path.
type Error struct {
	Op   string // Step kind that failed, e.g. "mkdir"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
