package adjbound

import (
	"errors"
	"fmt"

	"github.com/fealab/adjbound/boundvars"
	"github.com/fealab/adjbound/vertexmap"
)

var (
	// ErrOutOfRange is returned when a global node index or spatial
	// dimension exceeds the configured problem size.
	ErrOutOfRange = errors.New("index out of range")

	// ErrAlreadyAllocated is returned by a second AllocateBoundaryVariables.
	ErrAlreadyAllocated = errors.New("boundary variables already allocated")

	// ErrFrozen is returned when boundary membership is changed after the
	// boundary variables were allocated.
	ErrFrozen = errors.New("boundary membership is frozen")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Range normalization.
	var oor *vertexmap.ErrOutOfRange
	if errors.As(err, &oor) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	var dor *boundvars.ErrDimOutOfRange
	if errors.As(err, &dor) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}

	// Lifecycle misuse.
	var fz *vertexmap.ErrFrozen
	if errors.As(err, &fz) {
		return fmt.Errorf("%w: %w", ErrFrozen, err)
	}
	if errors.Is(err, boundvars.ErrAlreadyAllocated) {
		return fmt.Errorf("%w: %w", ErrAlreadyAllocated, err)
	}

	return err
}
