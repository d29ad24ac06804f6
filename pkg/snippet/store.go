package snippet

import (
	"context"
	"fmt"
)

// Store is the read path the renderer depends on. Implementations must
// return snippets ordered by priority ascending, insertion order breaking
// ties.
type Store interface {
	// Get returns one snippet by ID.
	Get(ctx context.Context, id string) (*Snippet, error)

	// FindActiveByPosition returns every enabled snippet bound to the
	// position, in render order.
	FindActiveByPosition(ctx context.Context, position Position) ([]*Snippet, error)
}

// ListFilter narrows a List call. Zero values mean "no filter".
type ListFilter struct {
	Status   Status
	Position Position
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Writer is the authoring path. Callers are expected to have validated the
// snippet record and its code before writing.
type Writer interface {
	Create(ctx context.Context, s *Snippet) error
	Update(ctx context.Context, s *Snippet) error
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (Status, error)
	List(ctx context.Context, filter ListFilter) ([]*Snippet, error)
}

// ValidationError reports a malformed snippet field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("snippet validation failed on %s: %s", e.Field, e.Message)
}

// NotFoundError reports a lookup for a snippet that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snippet %s not found", e.ID)
}

// StoreError wraps a backend failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("snippet store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
