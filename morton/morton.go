// Package morton implements the Morton (Z-order) codec used as the sort
// key of the index: it bit-interleaves a vector of per-dimension cell
// identifiers into a single code and inverts that mapping exactly.
package morton

import (
	"fmt"
)

// Code is a Morton code: the bit-interleaved projection of a
// multi-dimensional cell coordinate onto a single dimension. The natural
// order of Codes is the curve order; equal codes mean "same cell".
type Code uint64

// ErrDimensionMismatch indicates a cell-identifier vector whose length does
// not match the codec's configured dimension count.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("morton: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrCellOverflow indicates a cell identifier that does not fit into the
// per-dimension bit budget.
type ErrCellOverflow struct {
	Dimension int    // Dimension holding the offending identifier
	Cell      uint32 // The identifier itself
	CellBits  int    // Configured bits per dimension
}

func (e *ErrCellOverflow) Error() string {
	return fmt.Sprintf("morton: cell %d in dimension %d exceeds %d bits", e.Cell, e.Dimension, e.CellBits)
}

// Codec interleaves cell-identifier vectors into Codes and back.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	dimensions int
	cellBits   int
}

// New creates a codec for the given dimension count and per-dimension bit
// budget. The total interleaved width dimensions*cellBits must fit into a
// 64-bit Code.
func New(dimensions, cellBits int) (*Codec, error) {
	if dimensions < 1 {
		return nil, fmt.Errorf("morton: invalid dimensions: %d", dimensions)
	}
	if cellBits < 1 || cellBits > 32 {
		return nil, fmt.Errorf("morton: invalid cell bits: %d", cellBits)
	}
	if dimensions*cellBits > 64 {
		return nil, fmt.Errorf("morton: %d dimensions at %d bits each exceed the 64-bit code budget", dimensions, cellBits)
	}

	return &Codec{
		dimensions: dimensions,
		cellBits:   cellBits,
	}, nil
}

// Dimensions returns the configured dimension count.
func (c *Codec) Dimensions() int { return c.dimensions }

// CellBits returns the configured bits per dimension.
func (c *Codec) CellBits() int { return c.cellBits }

// Encode interleaves the cell identifiers into a single Code. Bit b of
// dimension d lands at position b*dimensions+d, so dimension 0 occupies the
// least significant slot of every bit group.
func (c *Codec) Encode(cells []uint32) (Code, error) {
	if len(cells) != c.dimensions {
		return 0, &ErrDimensionMismatch{Expected: c.dimensions, Actual: len(cells)}
	}

	limit := uint64(1) << c.cellBits
	for d, cell := range cells {
		if uint64(cell) >= limit {
			return 0, &ErrCellOverflow{Dimension: d, Cell: cell, CellBits: c.cellBits}
		}
	}

	var code Code
	for bit := 0; bit < c.cellBits; bit++ {
		for d := 0; d < c.dimensions; d++ {
			if cells[d]>>bit&1 == 1 {
				code |= 1 << (bit*c.dimensions + d)
			}
		}
	}

	return code, nil
}

// Decode inverts Encode, recovering the cell-identifier vector.
func (c *Codec) Decode(code Code) []uint32 {
	cells := make([]uint32, c.dimensions)
	for bit := 0; bit < c.cellBits; bit++ {
		for d := 0; d < c.dimensions; d++ {
			if code>>(bit*c.dimensions+d)&1 == 1 {
				cells[d] |= 1 << bit
			}
		}
	}

	return cells
}
