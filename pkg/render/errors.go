package render

import (
	"fmt"

	"tagforge-hq/tagforge/pkg/snippet"
)

// Error reports a render failure for one position.
type Error struct {
	Position snippet.Position
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Position, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
