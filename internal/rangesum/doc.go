// Package rangesum implements the parallel range-sum reducer: it partitions a
// half-open range of unsigned 64-bit integers into chunks, sums every chunk in
// its own goroutine and folds the partial sums into a final result.
//
// The fan-out is an errgroup with one task per chunk; the fan-in is a single
// aggregator draining a channel that is closed once every worker returned.
// The aggregator counts what it received, so a missing partial result is an
// error rather than a smaller sum. Overflow anywhere is fatal.
package rangesum
