package watrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for values wider than Width bits
	// and for malformed ranges (Bpos > Epos).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned when a position or order
	// statistic lies outside the queried sequence or range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFound is returned by Select when there are fewer
	// occurrences than requested.
	ErrNotFound = errors.New("not found")
)

// ValueError reports a value that does not fit in Width bits.
//
// errors.Is(err, ErrInvalidArgument) holds for every ValueError.
type ValueError struct {
	Index int
	Value uint64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %d at index %d exceeds %d bits", e.Value, e.Index, Width)
}

func (e *ValueError) Unwrap() error { return ErrInvalidArgument }

func (wm *WaveletMatrix) checkPos(pos int) error {
	if pos < 0 || pos >= wm.num {
		return fmt.Errorf("%w: position %d, num %d", ErrIndexOutOfRange, pos, wm.num)
	}
	return nil
}

func (wm *WaveletMatrix) checkRange(ranze Range) error {
	if ranze.Bpos > ranze.Epos {
		return fmt.Errorf("%w: range [%d, %d)", ErrInvalidArgument, ranze.Bpos, ranze.Epos)
	}
	if ranze.Bpos < 0 || ranze.Epos > wm.num {
		return fmt.Errorf("%w: range [%d, %d), num %d", ErrIndexOutOfRange, ranze.Bpos, ranze.Epos, wm.num)
	}
	return nil
}
