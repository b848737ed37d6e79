package watrix

// Builder collects values and builds a WaveletMatrix.
// A user calls PushBack()s followed by Build().
type Builder struct {
	vals []uint64
	opts options
}

// NewBuilder returns a Builder with no values.
func NewBuilder(opts ...Option) *Builder {
	o := newOptions(opts)
	return &Builder{
		vals: make([]uint64, 0, o.capacity),
		opts: o,
	}
}

// PushBack appends val to the sequence. Values above MaxValue are
// accepted here and rejected by Build.
func (b *Builder) PushBack(val uint64) {
	b.vals = append(b.vals, val)
}

// Build returns the matrix of the pushed values. It fails with
// ErrInvalidArgument if any value does not fit in Width bits.
func (b *Builder) Build() (*WaveletMatrix, error) {
	vals := make([]uint32, len(b.vals))
	for i, v := range b.vals {
		if v > MaxValue {
			return nil, &ValueError{Index: i, Value: v}
		}
		vals[i] = uint32(v)
	}
	return build(vals, b.opts), nil
}

// New builds a matrix over vals.
func New(vals []uint64, opts ...Option) (*WaveletMatrix, error) {
	b := &Builder{vals: vals, opts: newOptions(opts)}
	return b.Build()
}

// NewFromUint32 builds a matrix over vals. vals is not retained.
func NewFromUint32(vals []uint32, opts ...Option) *WaveletMatrix {
	cur := make([]uint32, len(vals))
	copy(cur, vals)
	return build(cur, newOptions(opts))
}

// build consumes cur as scratch space.
func build(cur []uint32, o options) *WaveletMatrix {
	num := len(cur)
	next := make([]uint32, num)
	layers := make([]*bitVector, Width)
	for depth := 0; depth < Width; depth++ {
		rsd := newBitVector(num)
		shift := uint(Width - depth - 1)

		// zeros fill next from the front, ones from the back
		zeros, ones := 0, 0
		for k, v := range cur {
			if v>>shift&1 == 1 {
				rsd.set(k)
				ones++
				next[num-ones] = v
			} else {
				next[zeros] = v
				zeros++
			}
		}
		reverse(next[zeros:])
		rsd.freeze()

		layers[depth] = rsd
		cur, next = next, cur
	}

	wm := &WaveletMatrix{layers: layers, num: num}
	o.logger.Debug("wavelet matrix built",
		"num", num,
		"levels", Width,
		"bytes", wm.AllocSize(),
	)
	return wm
}

func reverse(vals []uint32) {
	for i, j := 0, len(vals)-1; i < j; i, j = i+1, j-1 {
		vals[i], vals[j] = vals[j], vals[i]
	}
}
