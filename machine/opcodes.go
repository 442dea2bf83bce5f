package machine

// Op is a 4-bit opcode selecting one of the machine's fourteen
// instructions: a byte-sized const block plus a string-table-backed
// String().
type Op byte

const (
	OpCondMove    Op = 0
	OpSegLoad     Op = 1
	OpSegStore    Op = 2
	OpAdd         Op = 3
	OpMul         Op = 4
	OpDiv         Op = 5
	OpNand        Op = 6
	OpHalt        Op = 7
	OpMap         Op = 8
	OpUnmap       Op = 9
	OpOutput      Op = 10
	OpInput       Op = 11
	OpLoadProgram Op = 12
	OpLoadImm     Op = 13
)

var opNames = map[Op]string{
	OpCondMove:    "cmove",
	OpSegLoad:     "sload",
	OpSegStore:    "sstore",
	OpAdd:         "add",
	OpMul:         "mul",
	OpDiv:         "div",
	OpNand:        "nand",
	OpHalt:        "halt",
	OpMap:         "map",
	OpUnmap:       "unmap",
	OpOutput:      "output",
	OpInput:       "input",
	OpLoadProgram: "loadprogram",
	OpLoadImm:     "loadimm",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "?unknown?"
}

// Valid reports whether op is one of the fourteen defined opcodes.
func (op Op) Valid() bool { return op <= OpLoadImm }

// decode splits a 32-bit instruction word into its opcode and, for every
// opcode but load-immediate, its three 3-bit register selectors: opcode
// in bits 31..28, then A/B/C in 8..6/5..3/2..0.
func decode(word Word) (op Op, a, b, c Word) {
	w := uint64(word)
	op = Op(GetField(w, 4, 28))
	a = Word(GetField(w, 3, 6))
	b = Word(GetField(w, 3, 3))
	c = Word(GetField(w, 3, 0))
	return
}

// decodeLoadImm splits the load-immediate encoding: opcode in 31..28,
// destination register in 27..25, the 25-bit immediate in 24..0.
func decodeLoadImm(word Word) (a, imm Word) {
	w := uint64(word)
	a = Word(GetField(w, 3, 25))
	imm = Word(GetField(w, 25, 0))
	return
}

// The following are the per-opcode semantics, one method per instruction,
// operating on the register file and segment table owned by *Machine.
// Each returns an error only where a checked runtime failure is possible;
// all other opcodes cannot fail.

func (m *Machine) condMove(a, b, c Word) {
	if m.registers[c] != 0 {
		m.registers[a] = m.registers[b]
	}
}

func (m *Machine) segLoad(a, b, c Word) error {
	v, err := m.segments.Get(m.registers[b], m.registers[c])
	if err != nil {
		return err
	}
	m.registers[a] = v
	return nil
}

func (m *Machine) segStore(a, b, c Word) error {
	return m.segments.Set(m.registers[a], m.registers[b], m.registers[c])
}

func (m *Machine) add(a, b, c Word) {
	m.registers[a] = m.registers[b] + m.registers[c]
}

func (m *Machine) mul(a, b, c Word) {
	m.registers[a] = m.registers[b] * m.registers[c]
}

func (m *Machine) div(a, b, c Word) error {
	if m.registers[c] == 0 {
		return newFault(DivideByZero, m.pc, "")
	}
	m.registers[a] = m.registers[b] / m.registers[c]
	return nil
}

func (m *Machine) nand(a, b, c Word) {
	m.registers[a] = ^(m.registers[b] & m.registers[c])
}

func (m *Machine) doMap(b, c Word) {
	m.registers[b] = m.segments.Map(m.registers[c])
}

func (m *Machine) doUnmap(c Word) error {
	return m.segments.Unmap(m.registers[c])
}

func (m *Machine) output(c Word, out ByteSink) error {
	v := m.registers[c]
	if v > 255 {
		return newFault(OutputRange, m.pc, "")
	}
	if err := out.WriteByte(byte(v)); err != nil {
		return newFault(LoadError, m.pc, err.Error())
	}
	if err := out.Flush(); err != nil {
		return newFault(LoadError, m.pc, err.Error())
	}
	return nil
}

// eofSentinel is the value input stores in r[C] at end-of-stream.
const eofSentinel Word = 0xFFFFFFFF

func (m *Machine) input(c Word, in ByteSource) error {
	b, err := in.ReadByte()
	if err != nil {
		m.registers[c] = eofSentinel
		return nil
	}
	m.registers[c] = Word(b)
	return nil
}

// loadProgram replaces segment 0 with a deep copy of segment r[b] (unless
// b selects segment 0 itself). The pc write itself happens in the
// dispatch loop, not here, and happens unconditionally — even when
// r[b] == 0 and the replace was a no-op.
func (m *Machine) loadProgram(b Word) error {
	return m.segments.ReplaceZero(m.registers[b])
}

func (m *Machine) loadImmediate(a, imm Word) {
	m.registers[a] = imm
}
