// Package chunk partitions an index range into contiguous chunks, one per worker.
//
// Chunk i of n covers [size/n*i, size/n*(i+1)), except that the last chunk
// always ends at size and so absorbs the remainder of the integer division.
//
//	chunks, err := chunk.Split(10, 4)
//	// [0,2) [2,4) [4,6) [6,10)
package chunk
