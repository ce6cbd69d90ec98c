package sfcgo

import "cmp"

// Item is the source-record capability consumed by Build: a key position in
// coordinate space plus an opaque payload. The item collection passed to
// Build is a slice because the builder iterates it twice (dictionary pass,
// then encode pass); a one-shot stream cannot satisfy that contract.
type Item[V cmp.Ordered, F comparable] interface {
	// Key returns the item's position. Its length must equal the dimension
	// count the index is built with; items violating this are dropped.
	Key() []V

	// Fields returns the payload stored alongside the position.
	Fields() F
}

// Point is a plain Item implementation.
type Point[V cmp.Ordered, F comparable] struct {
	Position []V
	Payload  F
}

// Key implements Item.
func (p Point[V, F]) Key() []V { return p.Position }

// Fields implements Item.
func (p Point[V, F]) Fields() F { return p.Payload }

// Points builds an item slice from parallel key and payload slices,
// pairing entries up to the shorter of the two.
func Points[V cmp.Ordered, F comparable](keys [][]V, payloads []F) []Item[V, F] {
	n := min(len(keys), len(payloads))
	items := make([]Item[V, F], n)
	for i := 0; i < n; i++ {
		items[i] = Point[V, F]{Position: keys[i], Payload: payloads[i]}
	}
	return items
}
