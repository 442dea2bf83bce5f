package machine

// Run drives the machine until a halt instruction executes or a fault
// occurs. Nothing is ever recovered internally: Run returns nil only on
// the halt opcode, a successful termination; any non-nil return is a
// *Fault.
//
// One cycle is: fetch the word at segment[0][pc], decode its opcode,
// execute the corresponding operation, then advance pc.
func Run(m *Machine, in ByteSource, out ByteSink) error {
	for {
		if err := m.step(in, out); err != nil {
			if err == errHalt {
				return nil
			}
			return err
		}
	}
}

// errHalt is an internal-only sentinel used to unwind out of step/Run on
// the halt opcode; it is never returned to a caller of Run.
var errHalt = newFault(Kind(-1), 0, "halt")

func (m *Machine) step(in ByteSource, out ByteSink) error {
	segLen, err := m.segments.Length(0)
	if err != nil {
		return attachPC(err, m.pc)
	}
	if m.pc >= segLen {
		return newFault(PcOutOfBounds, m.pc, "")
	}

	word, err := m.segments.Get(0, m.pc)
	if err != nil {
		return attachPC(err, m.pc)
	}

	op, a, b, c := decode(word)

	if op == OpLoadImm {
		a, imm := decodeLoadImm(word)
		m.loadImmediate(a, imm)
		m.pc++
		return nil
	}

	if !op.Valid() {
		return newFault(InvalidOpcode, m.pc, op.String())
	}

	switch op {
	case OpCondMove:
		m.condMove(a, b, c)
	case OpSegLoad:
		if err := m.segLoad(a, b, c); err != nil {
			return attachPC(err, m.pc)
		}
	case OpSegStore:
		if err := m.segStore(a, b, c); err != nil {
			return attachPC(err, m.pc)
		}
	case OpAdd:
		m.add(a, b, c)
	case OpMul:
		m.mul(a, b, c)
	case OpDiv:
		if err := m.div(a, b, c); err != nil {
			return err
		}
	case OpNand:
		m.nand(a, b, c)
	case OpHalt:
		return errHalt
	case OpMap:
		m.doMap(b, c)
	case OpUnmap:
		if err := m.doUnmap(c); err != nil {
			return attachPC(err, m.pc)
		}
	case OpOutput:
		if err := m.output(c, out); err != nil {
			return err
		}
	case OpInput:
		if err := m.input(c, in); err != nil {
			return err
		}
	case OpLoadProgram:
		if err := m.loadProgram(b); err != nil {
			return attachPC(err, m.pc)
		}
	}

	// Advance pc. load-program sets pc from r[C] even when r[B] == 0 (the
	// replace was a no-op): the redirect happens unconditionally, regardless
	// of whether ReplaceZero actually copied anything.
	if op == OpLoadProgram {
		m.pc = m.registers[c]
	} else {
		m.pc++
	}
	return nil
}

// attachPC fills in the program counter on faults raised below the
// dispatch loop (segment table operations have no pc of their own to
// report), leaving faults that already carry one (DivideByZero,
// OutputRange, PcOutOfBounds) untouched.
func attachPC(err error, pc Word) error {
	if f, ok := err.(*Fault); ok && f.PC == 0 {
		f.PC = pc
	}
	return err
}
