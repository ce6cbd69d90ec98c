package sfcgo

import (
	"errors"
)

var (
	// ErrInvalidDimensions is returned by Build when the dimension count is
	// outside [1, MaxDimensions].
	ErrInvalidDimensions = errors.New("dimensions must be between 1 and MaxDimensions")

	// ErrInvalidCellBits is returned by Build when the per-dimension cell
	// bit budget is not positive or does not fit the code width.
	ErrInvalidCellBits = errors.New("invalid cell bits")
)
