package sfcgo

import (
	"cmp"
	"slices"
	"time"

	"github.com/hupe1980/sfcgo/cellspace"
	"github.com/hupe1980/sfcgo/morton"
)

// MaxDimensions bounds the number of coordinate dimensions an index can be
// configured with. Record offset vectors are sized to this bound; only the
// first Dimensions() entries are meaningful.
const MaxDimensions = 3

// record ties the in-cell offsets of one indexed point to its payload.
type record[F comparable] struct {
	offsets [MaxDimensions]uint32
	fields  F
}

// cell groups the records sharing one curve code, in insertion order.
type cell[F comparable] struct {
	code    morton.Code
	records []record[F]
}

// Match is a single range-query result: the reconstructed key of an
// indexed point plus its payload.
type Match[V cmp.Ordered, F comparable] struct {
	Key    []V
	Fields F
}

// Index is an immutable space-filling-curve index over a finite point set.
// It is created by Build and supports no mutation afterwards, so any number
// of goroutines may query it concurrently without synchronization.
type Index[V cmp.Ordered, F comparable] struct {
	dimensions int
	codec      *morton.Codec
	space      *cellspace.Space[V]
	cells      []cell[F]
	stats      BuildStats
	logger     *Logger
	metrics    MetricsCollector
}

// Dimensions returns the configured dimension count.
func (i *Index[V, F]) Dimensions() int { return i.dimensions }

// CellBits returns the configured bits of quantization per dimension.
func (i *Index[V, F]) CellBits() int { return i.codec.CellBits() }

// Cells returns the number of occupied cells.
func (i *Index[V, F]) Cells() int { return len(i.cells) }

// Len returns the total number of indexed records.
func (i *Index[V, F]) Len() int {
	n := 0
	for idx := range i.cells {
		n += len(i.cells[idx].records)
	}
	return n
}

// CellCodes returns the curve codes of all occupied cells, ascending.
// Intended for diagnostics.
func (i *Index[V, F]) CellCodes() []morton.Code {
	codes := make([]morton.Code, len(i.cells))
	for idx := range i.cells {
		codes[idx] = i.cells[idx].code
	}
	return codes
}

// BuildStats returns the statistics recorded while building this index.
func (i *Index[V, F]) BuildStats() BuildStats { return i.stats }

// search locates the cell holding code in the sorted cell array.
func (i *Index[V, F]) search(code morton.Code) (int, bool) {
	return slices.BinarySearchFunc(i.cells, code, func(c cell[F], target morton.Code) int {
		return cmp.Compare(c.code, target)
	})
}

// position rebuilds the full-precision coordinates of a record from its
// cell code and offset vector.
func (i *Index[V, F]) position(code morton.Code, offsets *[MaxDimensions]uint32) ([]V, error) {
	return i.space.Reconstruct(i.codec.Decode(code), offsets[:i.dimensions])
}

// inBox reports whether p lies inside the axis-aligned box [start, end],
// component-wise over the configured dimension count.
func (i *Index[V, F]) inBox(p, start, end []V) bool {
	for d := 0; d < i.dimensions; d++ {
		if p[d] < start[d] || p[d] > end[d] {
			return false
		}
	}
	return true
}

// Find returns the payloads of every indexed item whose key equals key, in
// insertion order. A key that cannot be resolved against the grid is
// treated the same as a miss: the result is empty either way.
func (i *Index[V, F]) Find(key []V) (matches []F) {
	defer func(start time.Time) {
		i.metrics.RecordFind(time.Since(start), len(matches))
	}(time.Now())

	cells, offsets, err := i.space.Quantize(key)
	if err != nil {
		i.logger.LogQueryMiss("find", err)
		return nil
	}
	code, err := i.codec.Encode(cells)
	if err != nil {
		i.logger.LogQueryMiss("find", err)
		return nil
	}

	idx, ok := i.search(code)
	if !ok {
		return nil
	}

	for _, r := range i.cells[idx].records {
		match := true
		for d := 0; d < i.dimensions; d++ {
			if r.offsets[d] != offsets[d] {
				match = false
				break
			}
		}
		if match {
			matches = append(matches, r.fields)
		}
	}

	return matches
}

// limits resolves the inclusive-exclusive window of cell indexes covered by
// the bounding box [start, end]: start rounds down to the nearest indexed
// position (absent codes begin at the nearest-below cell), end rounds up
// (a present end cell is included as a boundary).
func (i *Index[V, F]) limits(start, end []V) (lo, hi int, err error) {
	cells, _, err := i.space.QuantizeDown(start)
	if err != nil {
		return 0, 0, err
	}
	code, err := i.codec.Encode(cells)
	if err != nil {
		return 0, 0, err
	}
	lo, ok := i.search(code)
	if !ok && lo > 0 {
		lo--
	}

	cells, _, err = i.space.QuantizeUp(end)
	if err != nil {
		return 0, 0, err
	}
	code, err = i.codec.Encode(cells)
	if err != nil {
		return 0, 0, err
	}
	hi, ok = i.search(code)
	if ok {
		hi++
	}

	return lo, hi, nil
}

// FindRange returns every indexed point inside the axis-aligned bounding
// box [start, end]. Results arrive in curve order: ascending cell code,
// insertion order within a cell. Curve order is not a spatial sort order.
//
// Whole cells are accepted without per-record checks when both the cell's
// first record and the grid's extreme position fall inside the box. The
// upper probe is the global grid extreme, not a per-cell maximum, and the
// first record is the cell's oldest record, not its minimum; cells failing
// the probe fall back to exact per-record checks.
//
// Bounds that cannot be resolved against the grid yield an empty result.
func (i *Index[V, F]) FindRange(start, end []V) (matches []Match[V, F]) {
	defer func(t time.Time) {
		i.metrics.RecordFindRange(time.Since(t), len(matches))
	}(time.Now())

	lo, hi, err := i.limits(start, end)
	if err != nil {
		i.logger.Error("find range: limits resolution failed", "error", err)
		return nil
	}

	// The extreme is a property of the grid, not of any cell, so resolve it
	// once per query. When it cannot be resolved every cell takes the
	// per-record path.
	var extreme []V
	if cells, offsets, err := i.space.Extreme(); err == nil {
		if p, err := i.space.Reconstruct(cells, offsets); err == nil {
			extreme = p
		}
	}

	for idx := lo; idx < hi && idx < len(i.cells); idx++ {
		c := &i.cells[idx]

		first, err := i.position(c.code, &c.records[0].offsets)
		if err != nil {
			i.logger.Error("find range: cannot reconstruct first record of cell",
				"code", uint64(c.code),
				"error", err,
			)
			continue
		}

		// Fast path: first record and grid extreme both inside the box
		// accepts the whole cell.
		if extreme != nil && i.inBox(first, start, end) && i.inBox(extreme, start, end) {
			for r := range c.records {
				key, err := i.position(c.code, &c.records[r].offsets)
				if err != nil {
					i.logger.Error("find range: cannot reconstruct record",
						"code", uint64(c.code),
						"error", err,
					)
					continue
				}
				matches = append(matches, Match[V, F]{Key: key, Fields: c.records[r].fields})
			}
			continue
		}

		for r := range c.records {
			p, err := i.position(c.code, &c.records[r].offsets)
			if err != nil {
				i.logger.Error("find range: cannot reconstruct record",
					"code", uint64(c.code),
					"error", err,
				)
				continue
			}
			if i.inBox(p, start, end) {
				matches = append(matches, Match[V, F]{Key: p, Fields: c.records[r].fields})
			}
		}
	}

	return matches
}

// FindByValue linearly scans the whole index and returns the reconstructed
// keys of every record whose payload equals value. O(record count);
// intended for diagnostics, not hot-path lookups.
func (i *Index[V, F]) FindByValue(value F) (keys [][]V) {
	defer func(t time.Time) {
		i.metrics.RecordFindByValue(time.Since(t), len(keys))
	}(time.Now())

	for ci := range i.cells {
		c := &i.cells[ci]
		for r := range c.records {
			if c.records[r].fields != value {
				continue
			}
			key, err := i.position(c.code, &c.records[r].offsets)
			if err != nil {
				i.logger.Error("find by value: cannot reconstruct key",
					"code", uint64(c.code),
					"error", err,
				)
				continue
			}
			keys = append(keys, key)
		}
	}

	return keys
}
