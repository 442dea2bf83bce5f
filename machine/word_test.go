package machine

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestGetSetFieldRoundTrip(t *testing.T) {
	for _, width := range []uint{0, 1, 3, 8, 25, 32, 64} {
		var max uint64
		if width < 64 {
			max = (uint64(1) << width) - 1
		} else {
			max = ^uint64(0)
		}
		candidates := []uint64{0, max}
		if width >= 1 {
			candidates = append(candidates, 1)
		}
		for _, v := range candidates {
			got, err := SetField(0, width, 0, v)
			assert(t, err == nil, "SetField(width=%d, v=%d): %v", width, v, err)
			back := GetField(got, width, 0)
			assert(t, back == v, "round trip width=%d v=%d got back=%d", width, v, back)
		}
	}
}

func TestSetFieldOverflow(t *testing.T) {
	_, err := SetField(0, 8, 0, 256)
	assert(t, err == BitpackOverflow, "expected BitpackOverflow, got %v", err)
}

func TestShiftBy64IsZero(t *testing.T) {
	assert(t, shl(0xFF, 64) == 0, "shl by 64 must be zero")
	assert(t, shr(0xFF, 64) == 0, "shr by 64 must be zero")
}

func TestSetFieldPreservesOtherBits(t *testing.T) {
	word := uint64(0xFFFFFFFFFFFFFFFF)
	got, err := SetField(word, 4, 28, 0)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, GetField(got, 4, 28) == 0, "field not cleared")
	assert(t, GetField(got, 28, 36) == (1<<28)-1, "bits above field corrupted")
	assert(t, GetField(got, 28, 0) == (1<<28)-1, "bits below field corrupted")
}

func TestReadWordBERoundTrip(t *testing.T) {
	bs := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0x00, 0xAB, 0xCD}
	r := bufio.NewReader(bytes.NewReader(bs))

	w1, err := ReadWordBE(r)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, w1 == 0x01020304, "got %#x", w1)

	w2, err := ReadWordBE(r)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, w2 == 0xFF00ABCD, "got %#x", w2)

	_, err = ReadWordBE(r)
	assert(t, err == io.EOF, "expected EOF, got %v", err)
}

func TestReadWordBEEmptyStream(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader(nil))
	_, err := ReadWordBE(r)
	assert(t, err == io.EOF, "expected EOF on empty stream, got %v", err)
}

func TestReadWordBEPartialWordZeroExtends(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0xAB, 0xCD}))
	w, err := ReadWordBE(r)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, w == 0xABCD0000, "expected zero-extended partial word, got %#x", w)
}
