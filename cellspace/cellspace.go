// Package cellspace implements the coordinate quantizer backing the index.
//
// A Space holds one sorted dictionary of distinct coordinate values per
// dimension. Each dictionary is cut into 2^cellBits cells of equal rank
// width; a coordinate quantizes to its cell identifier plus the offset of
// its rank inside that cell, and the pair inverts exactly back to the
// original value.
package cellspace

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/sfcgo/internal/conv"
)

var (
	// ErrOutOfGrid is returned when a coordinate cannot be resolved against
	// the quantization grid.
	ErrOutOfGrid = errors.New("cellspace: position out of grid")

	// ErrEmptySpace is returned when an operation needs at least one indexed
	// value and the space holds none.
	ErrEmptySpace = errors.New("cellspace: empty space")
)

// ErrDimensionMismatch indicates a position whose length does not match the
// space's configured dimension count.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("cellspace: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

type rounding int

const (
	roundExact rounding = iota
	roundDown
	roundUp
)

// dimension is one per-axis dictionary: sorted unique values plus the rank
// width of a single cell.
type dimension[V cmp.Ordered] struct {
	values  []V
	perCell int
}

func (dim *dimension[V]) rank(v V, mode rounding) (int, error) {
	pos, found := slices.BinarySearch(dim.values, v)
	switch mode {
	case roundExact:
		if !found {
			return 0, fmt.Errorf("%w: value %v not indexed", ErrOutOfGrid, v)
		}
		return pos, nil
	case roundDown:
		if found {
			return pos, nil
		}
		if pos == 0 {
			return 0, fmt.Errorf("%w: value %v below grid", ErrOutOfGrid, v)
		}
		return pos - 1, nil
	default: // roundUp
		if pos == len(dim.values) {
			return 0, fmt.Errorf("%w: value %v above grid", ErrOutOfGrid, v)
		}
		return pos, nil
	}
}

// Space is the quantization dictionary for a bounded k-dimensional
// coordinate space. It is immutable after New and safe for concurrent use.
type Space[V cmp.Ordered] struct {
	dimensions int
	cellBits   int
	dims       []dimension[V]
}

// New builds a Space from the key positions of the source dataset.
// Keys whose length differs from dimensions contribute no values; the
// builder drops the corresponding items later. An empty key set yields a
// valid empty Space on which every quantization fails.
func New[V cmp.Ordered](keys [][]V, dimensions, cellBits int) (*Space[V], error) {
	if dimensions < 1 {
		return nil, fmt.Errorf("cellspace: invalid dimensions: %d", dimensions)
	}
	if cellBits < 1 || cellBits > 32 {
		return nil, fmt.Errorf("cellspace: invalid cell bits: %d", cellBits)
	}

	cols := make([][]V, dimensions)
	for _, key := range keys {
		if len(key) != dimensions {
			continue
		}
		for d, v := range key {
			cols[d] = append(cols[d], v)
		}
	}

	cells := 1 << cellBits
	s := &Space[V]{
		dimensions: dimensions,
		cellBits:   cellBits,
		dims:       make([]dimension[V], dimensions),
	}
	for d := range cols {
		slices.Sort(cols[d])
		values := slices.Compact(cols[d])
		if _, err := conv.IntToUint32(len(values)); err != nil {
			return nil, fmt.Errorf("cellspace: dimension %d cardinality: %w", d, err)
		}
		perCell := (len(values) + cells - 1) / cells
		if perCell < 1 {
			perCell = 1
		}
		s.dims[d] = dimension[V]{values: values, perCell: perCell}
	}

	return s, nil
}

// Dimensions returns the configured dimension count.
func (s *Space[V]) Dimensions() int { return s.dimensions }

// CellBits returns the configured bits per dimension.
func (s *Space[V]) CellBits() int { return s.cellBits }

// Cardinality returns the number of distinct values indexed along dim.
func (s *Space[V]) Cardinality(dim int) int {
	if dim < 0 || dim >= s.dimensions {
		return 0
	}
	return len(s.dims[dim].values)
}

// Quantize maps a position to its (cell identifier, offset) vectors.
// It fails when any coordinate value was never indexed.
func (s *Space[V]) Quantize(p []V) (cells, offsets []uint32, err error) {
	return s.quantize(p, roundExact)
}

// QuantizeDown resolves p against the nearest indexed position at or below
// it, per dimension. It fails when some coordinate lies below the grid.
func (s *Space[V]) QuantizeDown(p []V) (cells, offsets []uint32, err error) {
	return s.quantize(p, roundDown)
}

// QuantizeUp resolves p against the nearest indexed position at or above
// it, per dimension. It fails when some coordinate lies above the grid.
func (s *Space[V]) QuantizeUp(p []V) (cells, offsets []uint32, err error) {
	return s.quantize(p, roundUp)
}

func (s *Space[V]) quantize(p []V, mode rounding) (cells, offsets []uint32, err error) {
	if len(p) != s.dimensions {
		return nil, nil, &ErrDimensionMismatch{Expected: s.dimensions, Actual: len(p)}
	}

	cells = make([]uint32, s.dimensions)
	offsets = make([]uint32, s.dimensions)
	for d := 0; d < s.dimensions; d++ {
		rank, err := s.dims[d].rank(p[d], mode)
		if err != nil {
			return nil, nil, fmt.Errorf("dimension %d: %w", d, err)
		}
		perCell := s.dims[d].perCell
		cells[d] = uint32(rank / perCell)
		offsets[d] = uint32(rank % perCell)
	}

	return cells, offsets, nil
}

// Reconstruct inverts quantization, recovering the exact original position
// from its (cell identifier, offset) vectors.
func (s *Space[V]) Reconstruct(cells, offsets []uint32) ([]V, error) {
	if len(cells) != s.dimensions {
		return nil, &ErrDimensionMismatch{Expected: s.dimensions, Actual: len(cells)}
	}
	if len(offsets) != s.dimensions {
		return nil, &ErrDimensionMismatch{Expected: s.dimensions, Actual: len(offsets)}
	}

	p := make([]V, s.dimensions)
	for d := 0; d < s.dimensions; d++ {
		dim := &s.dims[d]
		if int(offsets[d]) >= dim.perCell {
			return nil, fmt.Errorf("dimension %d: %w: offset %d exceeds cell width %d", d, ErrOutOfGrid, offsets[d], dim.perCell)
		}
		rank := int(cells[d])*dim.perCell + int(offsets[d])
		if rank >= len(dim.values) {
			return nil, fmt.Errorf("dimension %d: %w: cell %d offset %d", d, ErrOutOfGrid, cells[d], offsets[d])
		}
		p[d] = dim.values[rank]
	}

	return p, nil
}

// Extreme returns the quantization of the grid's maximal indexed position:
// the greatest dictionary value along every dimension.
func (s *Space[V]) Extreme() (cells, offsets []uint32, err error) {
	cells = make([]uint32, s.dimensions)
	offsets = make([]uint32, s.dimensions)
	for d := 0; d < s.dimensions; d++ {
		dim := &s.dims[d]
		if len(dim.values) == 0 {
			return nil, nil, ErrEmptySpace
		}
		rank := len(dim.values) - 1
		cells[d] = uint32(rank / dim.perCell)
		offsets[d] = uint32(rank % dim.perCell)
	}

	return cells, offsets, nil
}
