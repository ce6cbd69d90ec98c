// Package sfcgo provides an embedded space-filling-curve spatial index for Go.
//
// The index maps points in a bounded k-dimensional coordinate space onto a
// single ordered key space using Morton (Z-order) encoding, then answers
// exact-match and axis-aligned range queries over the indexed points. It is
// built once, in batch, from a finite collection of source items and is
// immutable afterwards; concurrent readers need no synchronization.
//
// # Quick Start
//
//	ctx := context.Background()
//	items := sfcgo.Points(
//	    [][]int{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
//	    []string{"a", "b", "c"},
//	)
//
//	idx, err := sfcgo.Build(ctx, items, 3, 2) // 3 dimensions, 2^2 cells per dimension
//	if err != nil {
//	    panic(err)
//	}
//
//	payloads := idx.Find([]int{1, 1, 1})                       // ["b"]
//	matches := idx.FindRange([]int{0, 0, 0}, []int{1, 1, 1})   // {"a", "b"}
//	keys := idx.FindByValue("c")                               // [[2 2 2]]
//
// # Ordering
//
// Range results arrive in curve order: ascending Morton code, insertion
// order within a cell. Curve order groups spatially nearby cells together
// but is not a true multi-dimensional sort order.
//
// # Updates
//
// The index has no insert, update or delete operations. To change the
// dataset, build a new index and swap it in at the call site.
package sfcgo
