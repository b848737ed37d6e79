// Package watrix provides a wavelet matrix over 32-bit unsigned integers
// supporting range queries in time proportional to the bit width:
// access, rank/select, quantile (k-th smallest) and range frequency.
//
// The matrix is built once from a sequence and is read-only afterwards,
// so a single instance may be queried from many goroutines.
package watrix

// WaveletTree supports several range queries.
type WaveletTree interface {
	Num() int

	Access(pos int) (uint32, error)

	AccessAndRank(pos int) (uint32, int, error)

	Rank(ranze Range, val uint32) (int, error)

	RankMoreThan(ranze Range, val uint32) (int, error)

	RangeFreq(ranze Range, upper uint64) (int, error)

	RangeFreqBetween(ranze Range, lo, hi uint64) (int, error)

	Select(pos, i int, val uint32) (int, error)

	Quantile(ranze Range, k int) (uint32, error)

	Intersect(ranges []Range, k int) ([]uint32, error)

	MarshalBinary() ([]byte, error)
}
