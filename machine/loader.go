package machine

import (
	"bufio"
	"io"
)

// Load reads r to end-of-stream, packing every four bytes big-endian into
// a word, and returns a freshly constructed Machine with the resulting
// word array installed as segment zero — registers, program counter, and
// free-id pool all zeroed/empty. The whole input is read up front, into
// an append-based Go slice, before the Machine value is built.
func Load(r io.Reader) (*Machine, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	words := make([]Word, 0, 256)
	for {
		word, err := ReadWordBE(br)
		if err == io.EOF {
			break
		}
		words = append(words, word)
	}

	return NewMachine(words), nil
}
