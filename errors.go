package ordered

import "fmt"

// Error is a constant error value.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound is returned when a delete targets a key that is not
	// in the tree. Deleting from an empty tree also yields ErrNotFound.
	ErrNotFound = Error("key not found")
	// ErrEmptyTree is returned by DeleteMin and DeleteMax on a tree
	// without entries.
	ErrEmptyTree = Error("tree is empty")
	// ErrModified is the panic value of an iterator whose tree was
	// mutated after the iterator was created.
	ErrModified = Error("tree modified during iteration")
)

// InvariantError is the panic value raised when a balancing routine
// finds the tree in a state it should never be in. It signals a bug
// in this module, not a caller error.
type InvariantError struct {
	Op  string
	Msg string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Msg)
}
