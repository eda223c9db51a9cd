// Package matrix reads and writes tensors in the matrix file format.
//
// A native matrix file is a little-endian header followed by the elements
// in row-major order:
//
//	Format Structure:
//	  [4 bytes: Magic (int32), selects the element type]
//	  [4 bytes: Order (int32)]
//	  [4 bytes each: max(Order, 3) extents (int32), unused extents are 1]
//	  [Payload: NumElements raw elements]
//
// Files written by big-endian hosts are recognized by their byte-swapped
// magic. IDX files (big-endian, type and order packed in the first word)
// can be read but are never written.
//
// Example usage:
//
//	x, err := matrix.Load[float32]("weights.mat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer x.Release()
//
//	view, _ := x.Transpose(0, 1)
//	if err := matrix.Save("weights_t.mat", view); err != nil {
//	    log.Fatal(err)
//	}
package matrix
