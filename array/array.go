// Package array implements a growable float32 vector with an in-place
// ascending sort that respects signed IEEE-754 ordering.
package array

import (
	"math"

	"github.com/tsengine/gauged/usort"
)

// InitialSize is the capacity a freshly created Array starts with.
const InitialSize = 4

// Array is a growable, exclusively-owned sequence of float32 samples.
type Array struct {
	buf []float32
}

// New returns an empty Array with InitialSize capacity.
func New() *Array {
	return &Array{buf: make([]float32, 0, InitialSize)}
}

// NewValues returns an Array pre-populated with values, in order.
func NewValues(values ...float32) *Array {
	a := New()
	for _, v := range values {
		a.Append(v)
	}
	return a
}

// Import clones buf (raw little-endian-host float32 words) into a new
// Array. A nil/empty buf yields an empty Array with InitialSize capacity.
func Import(buf []float32) *Array {
	a := &Array{}
	if len(buf) == 0 {
		a.buf = make([]float32, 0, InitialSize)
		return a
	}
	a.buf = make([]float32, len(buf))
	copy(a.buf, buf)
	return a
}

// Len returns the number of samples currently held.
func (a *Array) Len() int {
	return len(a.buf)
}

// LengthBytes returns the byte length of the exported form (length * 4).
func (a *Array) LengthBytes() int {
	return len(a.buf) * 4
}

// Export returns the backing storage, borrowed: callers must not retain it
// past the next mutating call on a.
func (a *Array) Export() []float32 {
	return a.buf
}

// Clear resets the logical length to zero; capacity is retained.
func (a *Array) Clear() {
	a.buf = a.buf[:0]
}

// Append adds value to the end of the array, growing capacity by doubling
// when needed.
func (a *Array) Append(value float32) {
	if len(a.buf) == cap(a.buf) {
		newCap := 2 * cap(a.buf)
		if newCap == 0 {
			newCap = InitialSize
		}
		grown := make([]float32, len(a.buf), newCap)
		copy(grown, a.buf)
		a.buf = grown
	}
	a.buf = append(a.buf, value)
}

// Sort orders the array ascending, honoring signed IEEE-754 comparison
// (-0.0 < +0.0, negatives below positives) via a bit-flip trick over the
// unsigned sort in package usort.
func (a *Array) Sort() {
	if len(a.buf) < 2 {
		return
	}
	bits := asUint32Slice(a.buf)
	for i, w := range bits {
		bits[i] = w ^ ((-(w >> 31)) | 0x80000000)
	}
	bits = usort.Sort(bits)
	for i, w := range bits {
		bits[i] = w ^ (((w >> 31) - 1) | 0x80000000)
	}
	a.buf = asFloat32Slice(bits)
}

func asUint32Slice(f []float32) []uint32 {
	u := make([]uint32, len(f))
	for i, v := range f {
		u[i] = math.Float32bits(v)
	}
	return u
}

func asFloat32Slice(u []uint32) []float32 {
	f := make([]float32, len(u))
	for i, v := range u {
		f[i] = math.Float32frombits(v)
	}
	return f
}
