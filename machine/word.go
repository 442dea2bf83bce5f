// Package machine implements the Universal Machine: an 8-register,
// segmented-memory virtual machine driven by a stream of 32-bit
// instruction words.
package machine

import "io"

// Word is the machine's native integer width. All arithmetic on it is
// modulo 2^32, matching the instruction set's unsigned semantics.
type Word = uint32

// GetField extracts the width-bit unsigned field whose least-significant
// bit sits at position lsb of a 64-bit word. Bit numbering is big-endian
// (bit 63 most significant, bit 0 least significant) within the 64-bit
// staging word.
//
// Requires 0 <= width <= 64 and lsb+width <= 64; callers in this package
// only ever pass compile-time-constant field layouts, so these are not
// re-validated at the call site.
func GetField(word uint64, width, lsb uint) uint64 {
	hi := lsb + width
	return shr(shl(word, 64-hi), 64-width)
}

// SetField returns word with its width-bit field at lsb replaced by value.
// It returns BitpackOverflow if value does not fit in width bits.
func SetField(word uint64, width, lsb uint, value uint64) (uint64, error) {
	if !fitsUnsigned(value, width) {
		return 0, BitpackOverflow
	}
	hi := lsb + width
	return shl(shr(word, hi), hi) | shr(shl(word, 64-lsb), 64-lsb) | (value << lsb), nil
}

// shl and shr define shift-by-64 as zero. A shift by the full operand
// width is otherwise easy to get wrong across platforms, so both wrappers
// make the boundary case explicit rather than relying on Go's shift rules.
func shl(word uint64, bits uint) uint64 {
	if bits >= 64 {
		return 0
	}
	return word << bits
}

func shr(word uint64, bits uint) uint64 {
	if bits >= 64 {
		return 0
	}
	return word >> bits
}

func fitsUnsigned(value uint64, width uint) bool {
	return shr(value, width) == 0
}

// ReadWordBE reads the next big-endian 32-bit word from r. It returns
// io.EOF only when the stream ends exactly on a word boundary (zero bytes
// read). A stream that ends partway through a word is zero-extended;
// well-formed program files always contain a whole number of words.
func ReadWordBE(r io.ByteReader) (Word, error) {
	var buf [4]byte
	n := 0
	for ; n < 4; n++ {
		b, err := r.ReadByte()
		if err != nil {
			if n == 0 {
				return 0, io.EOF
			}
			break
		}
		buf[n] = b
	}

	var word uint64
	for i := 0; i < n; i++ {
		word, _ = SetField(word, 8, uint(8*(3-i)), uint64(buf[i]))
	}
	return Word(word), nil
}
