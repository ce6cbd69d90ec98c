package sfcgo

import "fmt"

// Stats prints statistics about the index.
func (i *Index[V, F]) Stats() {
	fmt.Println("Parameters:")
	fmt.Printf("\tdimensions = %d\n", i.dimensions)
	fmt.Printf("\tcellBits = %d\n", i.codec.CellBits())

	fmt.Println("Contents:")
	fmt.Printf("\tcells = %d\n", len(i.cells))
	fmt.Printf("\trecords = %d\n", i.Len())
	fmt.Printf("\tdropped = %d\n", i.stats.Dropped)
}
