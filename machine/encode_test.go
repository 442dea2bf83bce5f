package machine

// Test-only instruction encoders, the inverse of decode/decodeLoadImm,
// used to build fixture programs without hand-computed hex literals.

func encode(op Op, a, b, c Word) Word {
	w := uint64(0)
	w, _ = SetField(w, 4, 28, uint64(op))
	w, _ = SetField(w, 3, 6, uint64(a))
	w, _ = SetField(w, 3, 3, uint64(b))
	w, _ = SetField(w, 3, 0, uint64(c))
	return Word(w)
}

func encodeImm(a, imm Word) Word {
	w := uint64(0)
	w, _ = SetField(w, 4, 28, uint64(OpLoadImm))
	w, _ = SetField(w, 3, 25, uint64(a))
	w, _ = SetField(w, 25, 0, uint64(imm))
	return Word(w)
}
