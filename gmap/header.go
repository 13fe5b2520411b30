package gmap

// Header encodes the (position, length) pair stored ahead of every
// sub-array in a Map's packed buffer, per DESIGN NOTES in spec.md: a sum
// type rather than inlined bit arithmetic at every call site.
//
// Short form (1 word): top bit set, 9-bit length, 22-bit position.
// Long form (2 words): top bit clear, 31-bit length, then a full 32-bit
// position word.
type Header struct {
	Position uint32
	Length   uint32
	Long     bool
}

const (
	shortLengthMax   = 1<<9 - 1
	shortPositionMax = 1<<22 - 1
)

// sizeWords returns how many uint32 words the header for (position, length)
// occupies: 1 if both fit the short encoding, 2 otherwise.
func sizeWords(position uint32, length int) int {
	if length > shortLengthMax || position > shortPositionMax {
		return 2
	}
	return 1
}

// encodeHeader writes the header for (position, length) into dst (which
// must have room for sizeWords(position, length) elements) and returns the
// number of words written.
func encodeHeader(dst []uint32, position uint32, length int) int {
	if sizeWords(position, length) == 1 {
		dst[0] = 0x80000000 | (uint32(length) << 22) | (position & 0x3FFFFF)
		return 1
	}
	dst[0] = uint32(length) & 0x7FFFFFFF
	dst[1] = position
	return 2
}

// decodeHeader reads the header starting at buf[0], returning the decoded
// Header and the number of words it occupied (1 or 2).
func decodeHeader(buf []uint32) (Header, int) {
	if buf[0]&0x80000000 != 0 {
		return Header{
			Length:   (buf[0] >> 22) & 0x1FF,
			Position: buf[0] & 0x3FFFFF,
			Long:     false,
		}, 1
	}
	return Header{
		Length:   buf[0] & 0x7FFFFFFF,
		Position: buf[1],
		Long:     true,
	}, 2
}
