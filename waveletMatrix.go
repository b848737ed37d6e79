package watrix

import "fmt"

const (
	// Width is the number of bits of every stored value,
	// and the number of levels of the matrix.
	Width = 32

	// MaxValue is the largest storable value.
	MaxValue = 1<<Width - 1
)

// Range represents a range [Bpos, Epos)
// only valid for Bpos <= Epos
type Range struct {
	Bpos int
	Epos int
}

const (
	opEqual = iota
	opLessThan
	opMoreThan
)

// WaveletMatrix is the core of the library.
//
// layers[0] holds the most significant bit plane. A WaveletMatrix is
// immutable once built and safe for concurrent use.
type WaveletMatrix struct {
	layers []*bitVector
	num    int
}

var _ WaveletTree = (*WaveletMatrix)(nil)

// Num returns the number of values in T
func (wm *WaveletMatrix) Num() int {
	return wm.num
}

// AllocSize returns the number of bytes held by the bit planes
// and their rank caches.
func (wm *WaveletMatrix) AllocSize() int {
	size := 0
	for _, rsd := range wm.layers {
		size += rsd.allocSize()
	}
	return size
}

// Access returns T[pos]
func (wm *WaveletMatrix) Access(pos int) (uint32, error) {
	if err := wm.checkPos(pos); err != nil {
		return 0, err
	}
	val := uint32(0)
	for _, rsd := range wm.layers {
		val <<= 1
		if rsd.bit(pos) {
			val |= 1
			pos = rsd.zeros() + rsd.rank1(pos)
		} else {
			pos = rsd.rank0(pos)
		}
	}
	return val, nil
}

// AccessAndRank returns T[pos] and the number of T[pos] in T[0...pos).
// Faster than Access followed by Rank.
func (wm *WaveletMatrix) AccessAndRank(pos int) (uint32, int, error) {
	if err := wm.checkPos(pos); err != nil {
		return 0, 0, err
	}
	val := uint32(0)
	bpos, epos := 0, pos
	for _, rsd := range wm.layers {
		val <<= 1
		if rsd.bit(epos) {
			val |= 1
			bpos = rsd.zeros() + rsd.rank1(bpos)
			epos = rsd.zeros() + rsd.rank1(epos)
		} else {
			bpos = rsd.rank0(bpos)
			epos = rsd.rank0(epos)
		}
	}
	return val, epos - bpos, nil
}

// Rank returns the number of c (== val) in T[ranze.Bpos, ranze.Epos)
func (wm *WaveletMatrix) Rank(ranze Range, val uint32) (int, error) {
	if err := wm.checkRange(ranze); err != nil {
		return 0, err
	}
	return wm.rangedRankOp(ranze, val, opEqual), nil
}

// RankMoreThan returns the number of c (> val) in T[ranze.Bpos, ranze.Epos)
func (wm *WaveletMatrix) RankMoreThan(ranze Range, val uint32) (int, error) {
	if err := wm.checkRange(ranze); err != nil {
		return 0, err
	}
	return wm.rangedRankOp(ranze, val, opMoreThan), nil
}

// RangeFreq returns the number of c (< upper) in T[ranze.Bpos, ranze.Epos).
// upper may be at most MaxValue+1.
func (wm *WaveletMatrix) RangeFreq(ranze Range, upper uint64) (int, error) {
	if err := wm.checkRange(ranze); err != nil {
		return 0, err
	}
	if upper > MaxValue+1 {
		return 0, fmt.Errorf("%w: upper bound %d exceeds %d bits", ErrInvalidArgument, upper, Width)
	}
	return wm.rangeFreq(ranze, upper), nil
}

// RangeFreqBetween returns the number of c that falls within [lo, hi)
// in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) RangeFreqBetween(ranze Range, lo, hi uint64) (int, error) {
	if err := wm.checkRange(ranze); err != nil {
		return 0, err
	}
	if lo > hi || hi > MaxValue+1 {
		return 0, fmt.Errorf("%w: value range [%d, %d)", ErrInvalidArgument, lo, hi)
	}
	return wm.rangeFreq(ranze, hi) - wm.rangeFreq(ranze, lo), nil
}

func (wm *WaveletMatrix) rangeFreq(ranze Range, upper uint64) int {
	if upper > MaxValue {
		return ranze.Epos - ranze.Bpos
	}
	return wm.rangedRankOp(ranze, uint32(upper), opLessThan)
}

// rangedRankOp returns the number of c that satisfies 'c op val'
// in T[ranze.Bpos, ranze.Epos).
func (wm *WaveletMatrix) rangedRankOp(ranze Range, val uint32, op int) int {
	rankLessThan := 0
	rankMoreThan := 0
	for depth, rsd := range wm.layers {
		if getMSB(val, depth) {
			if op == opLessThan {
				rankLessThan += rsd.rank0(ranze.Epos) - rsd.rank0(ranze.Bpos)
			}
			ranze.Bpos = rsd.zeros() + rsd.rank1(ranze.Bpos)
			ranze.Epos = rsd.zeros() + rsd.rank1(ranze.Epos)
		} else {
			if op == opMoreThan {
				rankMoreThan += rsd.rank1(ranze.Epos) - rsd.rank1(ranze.Bpos)
			}
			ranze.Bpos = rsd.rank0(ranze.Bpos)
			ranze.Epos = rsd.rank0(ranze.Epos)
		}
	}
	switch op {
	case opLessThan:
		return rankLessThan
	case opMoreThan:
		return rankMoreThan
	default:
		return ranze.Epos - ranze.Bpos
	}
}

// Select returns the position of the (i+1)-th val at or after pos.
// A negative i counts backwards: i = -1 is the last val before pos.
// ErrNotFound is returned when no such occurrence exists.
func (wm *WaveletMatrix) Select(pos, i int, val uint32) (int, error) {
	if pos < 0 || pos > wm.num {
		return 0, fmt.Errorf("%w: position %d, num %d", ErrIndexOutOfRange, pos, wm.num)
	}

	from := pos

	// bpos and epos bound the leaf block of val.
	bpos, epos := 0, wm.num
	for depth, rsd := range wm.layers {
		if getMSB(val, depth) {
			bpos = rsd.zeros() + rsd.rank1(bpos)
			epos = rsd.zeros() + rsd.rank1(epos)
			pos = rsd.zeros() + rsd.rank1(pos)
		} else {
			bpos = rsd.rank0(bpos)
			epos = rsd.rank0(epos)
			pos = rsd.rank0(pos)
		}
	}
	if i >= epos-pos || i < bpos-pos {
		return 0, fmt.Errorf("%w: occurrence %d of %d from position %d", ErrNotFound, i, val, from)
	}

	pos += i
	for depth := Width - 1; depth >= 0; depth-- {
		rsd := wm.layers[depth]
		if getMSB(val, depth) {
			pos = rsd.select1(pos - rsd.zeros())
		} else {
			pos = rsd.select0(pos)
		}
	}
	return pos, nil
}

// Quantile returns (k+1)th smallest value in T[ranze.Bpos, ranze.Epos)
func (wm *WaveletMatrix) Quantile(ranze Range, k int) (uint32, error) {
	if err := wm.checkRange(ranze); err != nil {
		return 0, err
	}
	if k < 0 || k >= ranze.Epos-ranze.Bpos {
		return 0, fmt.Errorf("%w: order %d in range of %d", ErrIndexOutOfRange, k, ranze.Epos-ranze.Bpos)
	}
	val := uint32(0)
	bpos, epos := ranze.Bpos, ranze.Epos
	for _, rsd := range wm.layers {
		val <<= 1
		nzBpos := rsd.rank0(bpos)
		nzEpos := rsd.rank0(epos)
		nz := nzEpos - nzBpos
		if k < nz {
			bpos = nzBpos
			epos = nzEpos
		} else {
			k -= nz
			val |= 1
			bpos = rsd.zeros() + bpos - nzBpos
			epos = rsd.zeros() + epos - nzEpos
		}
	}
	return val, nil
}

// Intersect returns, in ascending order, the values that occur in at
// least k of the ranges.
func (wm *WaveletMatrix) Intersect(ranges []Range, k int) ([]uint32, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidArgument, k)
	}
	nonEmpty := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		if err := wm.checkRange(ranze); err != nil {
			return nil, err
		}
		if ranze.Bpos < ranze.Epos {
			nonEmpty = append(nonEmpty, ranze)
		}
	}
	ret := make([]uint32, 0)
	if len(nonEmpty) >= k {
		ret = wm.intersectHelper(ret, nonEmpty, k, 0, 0)
	}
	return ret, nil
}

func (wm *WaveletMatrix) intersectHelper(ret []uint32, ranges []Range, k int, depth int, prefix uint32) []uint32 {
	if depth == Width {
		return append(ret, prefix)
	}
	rsd := wm.layers[depth]
	zeroRanges := make([]Range, 0, len(ranges))
	oneRanges := make([]Range, 0, len(ranges))
	for _, ranze := range ranges {
		nzBpos := rsd.rank0(ranze.Bpos)
		nzEpos := rsd.rank0(ranze.Epos)
		noBpos := ranze.Bpos - nzBpos + rsd.zeros()
		noEpos := ranze.Epos - nzEpos + rsd.zeros()
		if nzEpos > nzBpos {
			zeroRanges = append(zeroRanges, Range{nzBpos, nzEpos})
		}
		if noEpos > noBpos {
			oneRanges = append(oneRanges, Range{noBpos, noEpos})
		}
	}
	if len(zeroRanges) >= k {
		ret = wm.intersectHelper(ret, zeroRanges, k, depth+1, prefix<<1)
	}
	if len(oneRanges) >= k {
		ret = wm.intersectHelper(ret, oneRanges, k, depth+1, prefix<<1|1)
	}
	return ret
}

// getMSB reports whether the bit of x examined at depth is set.
func getMSB(x uint32, depth int) bool {
	return x>>uint(Width-depth-1)&1 == 1
}
