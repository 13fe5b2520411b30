// Package gmap implements the packed binary container described in
// spec.md §4.4: a sequence of (position, values[]) sub-arrays, each
// preceded by a short (1-word) or long (2-word) header, concatenated
// head-to-tail with no padding. It also implements the aggregation
// primitives (sum, min, max, mean, stddev, percentile, first, last, count)
// that iterate that buffer.
package gmap

import (
	"iter"
	"math"

	"github.com/tsengine/gauged/array"
)

// InitialSize is the word capacity a freshly created Map starts with.
const InitialSize = 32

// Start and End are the sentinels accepted by Concat: Start is the
// inclusive lower bound with no floor, End means "no upper bound".
const (
	Start uint32 = 0
	End   uint32 = 0
)

// Map is a packed binary buffer of (position, values[]) entries.
type Map struct {
	buf []uint32
}

// New returns an empty Map with InitialSize capacity.
func New() *Map {
	return &Map{buf: make([]uint32, 0, InitialSize)}
}

// Import clones buf into a new Map. A nil/empty buf yields an empty Map
// with InitialSize capacity.
func Import(buf []uint32) *Map {
	m := &Map{}
	if len(buf) == 0 {
		m.buf = make([]uint32, 0, InitialSize)
		return m
	}
	m.buf = make([]uint32, len(buf))
	copy(m.buf, buf)
	return m
}

// Len returns the number of words currently stored.
func (m *Map) Len() int {
	return len(m.buf)
}

// LengthBytes returns the byte length of the exported form.
func (m *Map) LengthBytes() int {
	return len(m.buf) * 4
}

// Export returns the backing storage, borrowed: callers must not retain it
// past the next mutating call on m.
func (m *Map) Export() []uint32 {
	return m.buf
}

// Clear resets the logical length to zero (a "soft" clear); capacity is
// retained.
func (m *Map) Clear() {
	m.buf = m.buf[:0]
}

// Append encodes (position, a's samples) and appends it to the map.
// Appending an empty array is a no-op.
func (m *Map) Append(position uint32, a *array.Array) {
	values := a.Export()
	if len(values) == 0 {
		return
	}
	hdr := sizeWords(position, len(values))
	start := len(m.buf)
	m.buf = append(m.buf, make([]uint32, hdr+len(values))...)
	encodeHeader(m.buf[start:], position, len(values))
	copy(m.buf[start+hdr:], float32sToUint32s(values))
}

func float32sToUint32s(values []float32) []uint32 {
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = math.Float32bits(v)
	}
	return out
}

// Advance decodes the single entry at the head of buf, returning its
// header, the decoded values view, and the remainder of buf following that
// entry. It is the low-level cursor underlying All and Concat; exposed so
// callers needing custom traversal aren't limited to the built-in
// iterator.
func Advance(buf []uint32) (hdr Header, values []float32, rest []uint32) {
	hdr, words := decodeHeader(buf)
	payload := buf[words : words+int(hdr.Length)]
	values = make([]float32, len(payload))
	for i, w := range payload {
		values[i] = math.Float32frombits(w)
	}
	return hdr, values, buf[words+int(hdr.Length):]
}

// All iterates every (position, values) entry in buffer order. The values
// slice is only valid for the duration of one iteration step.
func (m *Map) All() iter.Seq2[uint32, []float32] {
	return func(yield func(uint32, []float32) bool) {
		buf := m.buf
		for len(buf) > 0 {
			hdr, values, rest := Advance(buf)
			if !yield(hdr.Position, values) {
				return
			}
			buf = rest
		}
	}
}

// Concat iterates src's entries, skipping those with position < start and
// stopping at the first entry with position >= end (unless end == End,
// meaning no upper bound), appending each remaining entry as
// (position+offset, values) onto dst.
//
// The original C implementation rewinds dst.length on allocator failure
// mid-append; Go's allocator has no recoverable failure mode (exhaustion
// is a fatal, unrecoverable runtime error, not a panic callers can catch),
// so there is no partial-application state for Concat to roll back here.
func Concat(dst, src *Map, start, end, offset uint32) {
	for position, values := range src.All() {
		if position < start {
			continue
		}
		if end != End && position >= end {
			break
		}
		dst.Append(position+offset, array.Import(values))
	}
}
