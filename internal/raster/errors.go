package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a configuration value outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShape marks an empty grid or grids whose dimensions do not agree.
	ErrShape = errors.New("shape error")
)

// InvalidParameter returns an error of kind ErrInvalidParameter for the named parameter.
func InvalidParameter(name string, value int) error {
	return fmt.Errorf("%w: %s must be >= 1, got %d", ErrInvalidParameter, name, value)
}

func shapeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrShape, fmt.Sprintf(format, args...))
}
