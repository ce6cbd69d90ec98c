package sfcgo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sfcgo"
	"github.com/hupe1980/sfcgo/testutil"
)

func TestBuild_EmptyInput(t *testing.T) {
	idx, err := sfcgo.Build[int, string](context.Background(), nil, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Cells())
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.CellCodes())

	// Every query on an empty index is an empty result, never a crash.
	assert.Empty(t, idx.Find([]int{0, 0, 0}))
	assert.Empty(t, idx.FindRange([]int{0, 0, 0}, []int{1, 1, 1}))
	assert.Empty(t, idx.FindByValue("a"))

	stats := idx.BuildStats()
	assert.Equal(t, 0, stats.Items)
	assert.Equal(t, 0, stats.Indexed)
	assert.Equal(t, 0, stats.Dropped)
}

func TestBuild_DropsMalformedItems(t *testing.T) {
	items := []sfcgo.Item[int, string]{
		sfcgo.Point[int, string]{Position: []int{0, 0, 0}, Payload: "a"},
		sfcgo.Point[int, string]{Position: []int{1, 1}, Payload: "bad"}, // wrong arity
		sfcgo.Point[int, string]{Position: []int{2, 2, 2}, Payload: "c"},
	}

	idx, err := sfcgo.Build(context.Background(), items, 3, 2)
	require.NoError(t, err)

	stats := idx.BuildStats()
	assert.Equal(t, 3, stats.Items)
	assert.Equal(t, 2, stats.Indexed)
	assert.Equal(t, 1, stats.Dropped)
	require.NotNil(t, stats.DroppedOrdinals)
	assert.True(t, stats.DroppedOrdinals.Contains(1))
	assert.False(t, stats.DroppedOrdinals.Contains(0))
	assert.False(t, stats.DroppedOrdinals.Contains(2))

	// The valid subset is fully queryable.
	assert.Equal(t, []string{"a"}, idx.Find([]int{0, 0, 0}))
	assert.Equal(t, []string{"c"}, idx.Find([]int{2, 2, 2}))
}

func TestBuild_AllItemsDropped(t *testing.T) {
	items := []sfcgo.Item[int, string]{
		sfcgo.Point[int, string]{Position: []int{1}, Payload: "a"},
		sfcgo.Point[int, string]{Position: []int{1, 2, 3, 4}, Payload: "b"},
	}

	idx, err := sfcgo.Build(context.Background(), items, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Cells())
	assert.Equal(t, 2, idx.BuildStats().Dropped)
	assert.Empty(t, idx.Find([]int{1, 2, 3}))
}

func TestBuild_FindEveryIndexedItem(t *testing.T) {
	keys := testutil.GridPoints(4, 2)
	payloads := testutil.Labels(len(keys))

	idx, err := sfcgo.Build(context.Background(), sfcgo.Points(keys, payloads), 2, 2)
	require.NoError(t, err)
	require.Equal(t, len(keys), idx.Len())

	for n, key := range keys {
		assert.Contains(t, idx.Find(key), payloads[n], "key %v", key)
	}
}

func TestBuild_CellCodesStrictlyAscending(t *testing.T) {
	rng := testutil.NewRNG(42)
	keys := rng.IntPoints(500, 3, 16)

	idx, err := sfcgo.Build(context.Background(), sfcgo.Points(keys, testutil.Labels(len(keys))), 3, 4)
	require.NoError(t, err)
	require.Equal(t, len(keys), idx.Len())

	codes := idx.CellCodes()
	require.NotEmpty(t, codes)
	for n := 1; n < len(codes); n++ {
		assert.Less(t, codes[n-1], codes[n])
	}
}

func TestBuild_ConcurrencyIsDeterministic(t *testing.T) {
	rng := testutil.NewRNG(7)
	keys := rng.ClusteredIntPoints(300, 3, 32, 5, 2)
	items := sfcgo.Points(keys, testutil.Labels(len(keys)))

	serial, err := sfcgo.Build(context.Background(), items, 3, 5, sfcgo.WithBuildConcurrency(1))
	require.NoError(t, err)

	parallel, err := sfcgo.Build(context.Background(), items, 3, 5, sfcgo.WithBuildConcurrency(8))
	require.NoError(t, err)

	assert.Equal(t, serial.CellCodes(), parallel.CellCodes())
	assert.Equal(t, serial.Len(), parallel.Len())

	for _, key := range keys {
		assert.Equal(t, serial.Find(key), parallel.Find(key), "key %v", key)
	}
}

func TestBuild_RecordsMetrics(t *testing.T) {
	metrics := &sfcgo.BasicMetricsCollector{}

	items := sfcgo.Points(
		[][]int{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
		[]string{"a", "b", "c"},
	)
	idx, err := sfcgo.Build(context.Background(), items, 3, 2, sfcgo.WithMetricsCollector(metrics))
	require.NoError(t, err)

	idx.Find([]int{1, 1, 1})
	idx.FindRange([]int{0, 0, 0}, []int{2, 2, 2})
	idx.FindByValue("c")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(3), stats.BuildItems)
	assert.Equal(t, int64(0), stats.BuildErrors)
	assert.Equal(t, int64(1), stats.FindCount)
	assert.Equal(t, int64(1), stats.FindResults)
	assert.Equal(t, int64(1), stats.RangeCount)
	assert.Equal(t, int64(3), stats.RangeResults)
	assert.Equal(t, int64(1), stats.ByValueCount)
	assert.Equal(t, int64(1), stats.ByValueResults)
}

func TestBuild_InvalidConfigRecordsMetricsError(t *testing.T) {
	metrics := &sfcgo.BasicMetricsCollector{}

	_, err := sfcgo.Build(context.Background(), sfcgo.Points([][]int{{1}}, []string{"a"}), 0, 2,
		sfcgo.WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
}

func TestIndex_Accessors(t *testing.T) {
	idx := diagonalIndex(t)

	assert.Equal(t, 3, idx.Dimensions())
	assert.Equal(t, 2, idx.CellBits())
	assert.Equal(t, 3, idx.Cells())
	assert.Equal(t, 3, idx.Len())

	stats := idx.BuildStats()
	assert.Equal(t, 3, stats.Items)
	assert.Equal(t, 3, stats.Indexed)
	assert.Equal(t, 3, stats.Cells)
}
