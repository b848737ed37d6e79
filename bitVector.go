package watrix

import (
	"math/bits"
	"sort"
)

// bitVector is one level of the matrix: a word-packed bit array with a
// cumulative popcount per word, so rank is a table lookup plus one masked
// popcount.
type bitVector struct {
	// words has one trailing zero word so rank1(num) never
	// indexes past the end.
	words []uint64

	// ranks[k] is the number of 1s in words[0:k].
	ranks []int

	num  int
	ones int
}

func newBitVector(num int) *bitVector {
	n := wordLen(num)
	return &bitVector{
		words: make([]uint64, n),
		ranks: make([]int, n),
		num:   num,
	}
}

// wordLen returns the number of words backing num bits,
// trailing word included. It does not overflow for any num >= 0.
func wordLen(num int) int {
	n := num>>6 + 1
	if num&63 != 0 {
		n++
	}
	return n
}

func (bv *bitVector) set(i int) {
	bv.words[i>>6] |= 1 << uint(i&63)
}

// freeze fills the rank cache. It must be called once after the last set.
func (bv *bitVector) freeze() {
	rank := 0
	for k, w := range bv.words {
		bv.ranks[k] = rank
		rank += bits.OnesCount64(w)
	}
	bv.ones = rank
}

func (bv *bitVector) bit(i int) bool {
	return bv.words[i>>6]>>uint(i&63)&1 == 1
}

// rank1 returns the number of 1s in [0, i).
func (bv *bitVector) rank1(i int) int {
	k := i >> 6
	return bv.ranks[k] + bits.OnesCount64(bv.words[k]&(1<<uint(i&63)-1))
}

// rank0 returns the number of 0s in [0, i).
func (bv *bitVector) rank0(i int) int {
	return i - bv.rank1(i)
}

func (bv *bitVector) zeros() int {
	return bv.num - bv.ones
}

// select1 returns the position of the k-th (0-indexed) 1.
// k must be in [0, ones).
func (bv *bitVector) select1(k int) int {
	// last word whose preceding count is <= k
	w := sort.Search(len(bv.ranks), func(j int) bool { return bv.ranks[j] > k }) - 1
	return w<<6 + selectInWord(bv.words[w], k-bv.ranks[w])
}

// select0 returns the position of the k-th (0-indexed) 0.
// k must be in [0, zeros()).
func (bv *bitVector) select0(k int) int {
	w := sort.Search(len(bv.ranks), func(j int) bool { return j<<6-bv.ranks[j] > k }) - 1
	return w<<6 + selectInWord(^bv.words[w], k-(w<<6-bv.ranks[w]))
}

// selectInWord returns the bit offset of the k-th (0-indexed) 1 in x.
func selectInWord(x uint64, k int) int {
	for ; k > 0; k-- {
		x &= x - 1
	}
	return bits.TrailingZeros64(x)
}

// allocSize returns the number of bytes held by the vector.
func (bv *bitVector) allocSize() int {
	return len(bv.words)*8 + len(bv.ranks)*bits.UintSize/8
}
