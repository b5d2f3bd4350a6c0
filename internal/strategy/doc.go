// Package strategy implements the two array-generation workloads being compared.
//
// Sequential allocates the whole array and fills it on the calling goroutine.
// Parallel splits the array into chunks and fills each chunk on its own
// goroutine via worker.RunChunked.
//
// Every element of a filled array holds the same random value. Parallel
// workers each draw their own value.
package strategy
