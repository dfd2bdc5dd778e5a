package chain

import (
	"errors"
	"fmt"
)

// Domain errors for chain construction and editing.
var (
	// ErrEmptyChain indicates a chain with no links.
	ErrEmptyChain = errors.New("chain: at least one link is required")

	// ErrLengthMismatch indicates angles and velocities of different length.
	ErrLengthMismatch = errors.New("chain: angles and velocities differ in length")

	// ErrLinkCount indicates link parameters that do not match the chain.
	ErrLinkCount = errors.New("chain: link parameter count does not match chain")

	// ErrLength indicates a link length that is not strictly positive.
	ErrLength = errors.New("chain: link length must be positive")

	// ErrMass indicates a link mass outside [MinMass, MaxMass].
	ErrMass = errors.New("chain: link mass out of range")

	// ErrLastLink indicates an attempt to remove the only remaining link.
	ErrLastLink = errors.New("chain: cannot remove the last link")

	// ErrNonFinite indicates an angle or velocity that is NaN or infinite.
	ErrNonFinite = errors.New("chain: angle or velocity is not finite")
)

// LinkError wraps an error with the index of the offending link.
type LinkError struct {
	Index   int
	Wrapped error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s (link %d)", e.Wrapped.Error(), e.Index)
}

func (e *LinkError) Unwrap() error {
	return e.Wrapped
}
