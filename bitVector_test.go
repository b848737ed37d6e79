package watrix

import (
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	. "github.com/smartystreets/goconvey/convey"
)

func randomBitVector(num int, density int) (*bitVector, *roaring.Bitmap) {
	bv := newBitVector(num)
	bm := roaring.New()
	for i := 0; i < num; i++ {
		if rand.Intn(density) == 0 {
			bv.set(i)
			bm.Add(uint32(i))
		}
	}
	bv.freeze()
	return bv, bm
}

func TestBitVector(t *testing.T) {
	Convey("When bits alternate", t, func() {
		bv := newBitVector(16)
		for i := 0; i < 16; i += 2 {
			bv.set(i)
		}
		bv.freeze()

		expected := true
		for i := 0; i < 16; i++ {
			So(bv.bit(i), ShouldEqual, expected)
			expected = !expected
		}
		So(bv.ones, ShouldEqual, 8)
		So(bv.zeros(), ShouldEqual, 8)
	})
	Convey("When a vector is empty", t, func() {
		bv := newBitVector(0)
		bv.freeze()
		So(bv.rank1(0), ShouldEqual, 0)
		So(bv.rank0(0), ShouldEqual, 0)
		So(bv.zeros(), ShouldEqual, 0)
	})
	Convey("When the length is a multiple of the word size", t, func() {
		bv := newBitVector(128)
		for i := 0; i < 128; i++ {
			bv.set(i)
		}
		bv.freeze()
		So(bv.rank1(64), ShouldEqual, 64)
		So(bv.rank1(128), ShouldEqual, 128)
		So(bv.rank0(128), ShouldEqual, 0)
	})
	Convey("The word count covers the trailing word", t, func() {
		So(wordLen(0), ShouldEqual, 1)
		So(wordLen(1), ShouldEqual, 2)
		So(wordLen(64), ShouldEqual, 2)
		So(wordLen(65), ShouldEqual, 3)
		So(len(newBitVector(65).words), ShouldEqual, 3)
	})
}

func TestBitVectorRank(t *testing.T) {
	for _, density := range []int{1, 2, 33, 1024} {
		bv, bm := randomBitVector(100000, density)
		Convey("Rank matches a roaring bitmap", t, func() {
			So(bv.ones, ShouldEqual, int(bm.GetCardinality()))
			So(bv.rank1(0), ShouldEqual, 0)

			mismatch := -1
			for i := 1; i <= bv.num; i++ {
				expected := int(bm.Rank(uint32(i - 1)))
				if bv.rank1(i) != expected || bv.rank0(i) != i-expected {
					mismatch = i
					break
				}
			}
			So(mismatch, ShouldEqual, -1)
		})
	}
}

func TestBitVectorSelect(t *testing.T) {
	for _, density := range []int{2, 3, 50, 1024} {
		bv, bm := randomBitVector(100000, density)
		Convey("Select1 matches a roaring bitmap", t, func() {
			mismatch := -1
			for k := 0; k < bv.ones; k++ {
				expected, err := bm.Select(uint32(k))
				So(err, ShouldBeNil)
				if bv.select1(k) != int(expected) {
					mismatch = k
					break
				}
			}
			So(mismatch, ShouldEqual, -1)
		})
		Convey("Select0 finds every clear bit in order", t, func() {
			zeros := make([]int, 0, bv.zeros())
			for i := 0; i < bv.num; i++ {
				if !bm.Contains(uint32(i)) {
					zeros = append(zeros, i)
				}
			}
			So(len(zeros), ShouldEqual, bv.zeros())

			mismatch := -1
			for k, expected := range zeros {
				if bv.select0(k) != expected {
					mismatch = k
					break
				}
			}
			So(mismatch, ShouldEqual, -1)
		})
	}
}

func TestSelectInWord(t *testing.T) {
	Convey("Select within a single word", t, func() {
		x := uint64(0x8000_0000_0000_0501)
		So(selectInWord(x, 0), ShouldEqual, 0)
		So(selectInWord(x, 1), ShouldEqual, 8)
		So(selectInWord(x, 2), ShouldEqual, 10)
		So(selectInWord(x, 3), ShouldEqual, 63)
	})
}

var bigVector *bitVector

func initBigVector() {
	if bigVector == nil {
		bigVector, _ = randomBitVector(1<<24, 2)
	}
}

func BenchmarkBitVectorRank1(b *testing.B) {
	initBigVector()

	idx := make([]int, b.N)
	for i := range idx {
		idx[i] = rand.Intn(bigVector.num)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bigVector.rank1(idx[i])
	}
}

func BenchmarkBitVectorSelect1(b *testing.B) {
	initBigVector()

	in := make([]int, b.N)
	for i := range in {
		in[i] = rand.Intn(bigVector.ones)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bigVector.select1(in[i])
	}
}

func BenchmarkBitVectorSelect0(b *testing.B) {
	initBigVector()

	in := make([]int, b.N)
	for i := range in {
		in[i] = rand.Intn(bigVector.zeros())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bigVector.select0(in[i])
	}
}
