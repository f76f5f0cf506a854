package pc

import "errors"

var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidHash  = errors.New("invalid field hash")
	ErrNoPlacement  = errors.New("no placement reconstructs the transition")
)

// PlacementError is returned when no placement of Shape turns Before into
// After. It wraps [ErrNoPlacement].
type PlacementError struct {
	Before, After Hash
	Shape         Shape
}

// [PlacementError] implements [error]
func (e PlacementError) Error() string {
	return ErrNoPlacement.Error() + ": " + e.Shape.String() +
		" from " + e.Before.String() + " to " + e.After.String()
}

func (e PlacementError) Unwrap() error {
	return ErrNoPlacement
}
