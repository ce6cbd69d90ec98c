package sfcgo

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sfcgo/cellspace"
	"github.com/hupe1980/sfcgo/internal/conv"
	"github.com/hupe1980/sfcgo/morton"
)

// BuildStats describes the outcome of one Build call.
type BuildStats struct {
	// Items is the number of source items seen.
	Items int

	// Indexed is the number of items that made it into the index.
	Indexed int

	// Dropped is the number of items discarded because their key could not
	// be quantized or encoded.
	Dropped int

	// DroppedOrdinals holds the zero-based input positions of the dropped
	// items. Read-only after Build.
	DroppedOrdinals *roaring.Bitmap

	// Cells is the number of occupied cells.
	Cells int

	// Duration is the total build time.
	Duration time.Duration
}

// buildEntry is one item's outcome from the quantize+encode pass.
type buildEntry[F comparable] struct {
	code morton.Code
	rec  record[F]
	ok   bool
	err  error
}

func buildOne[V cmp.Ordered, F comparable](space *cellspace.Space[V], codec *morton.Codec, item Item[V, F], dimensions int) buildEntry[F] {
	cells, offsets, err := space.Quantize(item.Key())
	if err != nil {
		return buildEntry[F]{err: fmt.Errorf("invalid position: %w", err)}
	}
	code, err := codec.Encode(cells)
	if err != nil {
		return buildEntry[F]{err: fmt.Errorf("unable to encode position: %w", err)}
	}

	var rec record[F]
	copy(rec.offsets[:dimensions], offsets)
	rec.fields = item.Fields()

	return buildEntry[F]{code: code, rec: rec, ok: true}
}

// Build constructs an immutable index over items.
//
// dimensions is the length of every key position and must lie in
// [1, MaxDimensions]. cellBits controls quantizer resolution: the grid has
// 2^cellBits cells per dimension, and dimensions*cellBits must fit into a
// 64-bit curve code.
//
// The pipeline iterates items twice: once to build the quantization
// dictionaries, once to quantize and encode every key. Items whose key
// cannot be quantized or encoded are dropped with a diagnostic; the build
// never aborts over a single bad item. An empty (or fully dropped) input
// yields a well-formed empty index on which every query returns no results.
//
// Build returns an error only for invalid configuration or a cancelled
// context.
func Build[V cmp.Ordered, F comparable](ctx context.Context, items []Item[V, F], dimensions, cellBits int, optFns ...Option) (*Index[V, F], error) {
	o := applyOptions(optFns)
	start := time.Now()

	fail := func(err error) (*Index[V, F], error) {
		o.metricsCollector.RecordBuild(len(items), 0, time.Since(start), err)
		return nil, err
	}

	if dimensions < 1 || dimensions > MaxDimensions {
		return fail(fmt.Errorf("%w: %d", ErrInvalidDimensions, dimensions))
	}
	if cellBits < 1 || dimensions*cellBits > 64 {
		return fail(fmt.Errorf("%w: %d bits over %d dimensions", ErrInvalidCellBits, cellBits, dimensions))
	}

	codec, err := morton.New(dimensions, cellBits)
	if err != nil {
		return fail(err)
	}

	// First pass: per-dimension dictionary construction.
	keys := make([][]V, len(items))
	for n, item := range items {
		keys[n] = item.Key()
	}
	space, err := cellspace.New(keys, dimensions, cellBits)
	if err != nil {
		return fail(err)
	}

	// Second pass: quantize and encode every item. The pass is
	// embarrassingly parallel; each worker owns a disjoint slice of the
	// pre-sized result table, so no locking is needed.
	entries := make([]buildEntry[F], len(items))

	workers := o.buildConcurrency
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (len(items) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for base := 0; base < len(items); base += chunk {
		lo, hi := base, min(base+chunk, len(items))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for n := lo; n < hi; n++ {
				entries[n] = buildOne(space, codec, items[n], dimensions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	// Drop failed items, keeping their ordinals for diagnostics.
	dropped := roaring.New()
	droppedCount := 0
	table := entries[:0]
	for n := range entries {
		if !entries[n].ok {
			droppedCount++
			if ordinal, convErr := conv.IntToUint32(n); convErr == nil {
				dropped.Add(ordinal)
			}
			o.logger.LogDroppedItem(n, entries[n].err)
			continue
		}
		table = append(table, entries[n])
	}

	// Stable sort keeps insertion order among records sharing a code.
	slices.SortStableFunc(table, func(a, b buildEntry[F]) int {
		return cmp.Compare(a.code, b.code)
	})

	// Merge runs of equal codes into cells. An empty table yields an empty
	// index rather than touching a first element that does not exist.
	var cells []cell[F]
	for n := range table {
		if len(cells) == 0 || cells[len(cells)-1].code != table[n].code {
			cells = append(cells, cell[F]{code: table[n].code})
		}
		last := &cells[len(cells)-1]
		last.records = append(last.records, table[n].rec)
	}

	stats := BuildStats{
		Items:           len(items),
		Indexed:         len(table),
		Dropped:         droppedCount,
		DroppedOrdinals: dropped,
		Cells:           len(cells),
		Duration:        time.Since(start),
	}

	o.metricsCollector.RecordBuild(stats.Items, stats.Dropped, stats.Duration, nil)
	o.logger.LogBuild(stats.Items, stats.Indexed, stats.Dropped, stats.Cells, stats.Duration)

	return &Index[V, F]{
		dimensions: dimensions,
		codec:      codec,
		space:      space,
		cells:      cells,
		stats:      stats,
		logger:     o.logger,
		metrics:    o.metricsCollector,
	}, nil
}
