package sim

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error raised for a broken simulation invariant.
var ErrInvariant = errors.New("simulation invariant violated")

var (
	ErrMissingPlayer   = fmt.Errorf("%w: no player entity", ErrInvariant)
	ErrDuplicatePlayer = fmt.Errorf("%w: more than one player entity", ErrInvariant)
	ErrInvalidMass     = fmt.Errorf("%w: mass must be positive", ErrInvariant)
)

// ErrInvalidConfig is wrapped by Config.Validate errors.
var ErrInvalidConfig = errors.New("invalid config")

// recoverInvariant turns a panic carrying an ErrInvariant error into *err.
// Any other panic is re-raised.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && errors.Is(e, ErrInvariant) {
		*err = e
		return
	}
	panic(r)
}
