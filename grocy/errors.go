package grocy

import "fmt"

// ShapeError reports a model built from a response it has no factory for,
// such as a nil record. It marks a programming error in the caller, not bad
// server data.
type ShapeError struct {
	Model string
	Shape string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("grocy: cannot build %s from %s", e.Model, e.Shape)
}
