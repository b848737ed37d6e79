package watrix

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes WaveletMatrix into a binary form and returns the result.
// Rank caches are not encoded; UnmarshalBinary rebuilds them.
func (wm *WaveletMatrix) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(wm.num)
	if err != nil {
		return
	}
	err = enc.Encode(len(wm.layers))
	if err != nil {
		return
	}
	for _, rsd := range wm.layers {
		err = enc.Encode(rsd.words)
		if err != nil {
			return
		}
	}
	return
}

// UnmarshalBinary decodes WaveletMatrix from a binary form generated MarshalBinary.
// Malformed input yields ErrInvalidArgument.
func (wm *WaveletMatrix) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	num := 0
	err = dec.Decode(&num)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if num < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, num)
	}
	layerNum := 0
	err = dec.Decode(&layerNum)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if layerNum != Width {
		return fmt.Errorf("%w: %d layers, want %d", ErrInvalidArgument, layerNum, Width)
	}

	// every layer must hold exactly wordLen(num) words
	want := wordLen(num)
	layers := make([]*bitVector, layerNum)
	for depth := range layers {
		var words []uint64
		err = dec.Decode(&words)
		if err != nil {
			return fmt.Errorf("%w: layer %d: %w", ErrInvalidArgument, depth, err)
		}
		if len(words) != want {
			return fmt.Errorf("%w: layer %d has %d words, want %d", ErrInvalidArgument, depth, len(words), want)
		}
		rsd := &bitVector{
			words: words,
			ranks: make([]int, len(words)),
			num:   num,
		}
		rsd.freeze()
		if rsd.ones != rsd.rank1(num) {
			return fmt.Errorf("%w: layer %d has bits set past %d", ErrInvalidArgument, depth, num)
		}
		layers[depth] = rsd
	}

	wm.layers = layers
	wm.num = num
	return nil
}
