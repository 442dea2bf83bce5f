package machine

import (
	"errors"
	"fmt"
)

// Kind identifies which fatal condition stopped the machine. Every Kind
// is terminal: there is no recovery path, only reporting.
type Kind int

const (
	// LoadError means the program file could not be opened or read. The
	// output opcode also reports a failed write or flush of the byte sink
	// with this kind.
	LoadError Kind = iota
	// InvalidOpcode means the fetched instruction's opcode is not 0..13.
	InvalidOpcode
	// DivideByZero means opcode 5 executed with r[C] == 0.
	DivideByZero
	// OutputRange means opcode 10 executed with r[C] > 255.
	OutputRange
	// SegmentFault covers access to an unmapped segment ID, an
	// out-of-bounds offset, unmapping ID 0, or load-program of an
	// unmapped segment.
	SegmentFault
	// PcOutOfBounds means the program counter ran past segment 0's length.
	PcOutOfBounds
	// BitpackOverflowKind means the bit-field codec was asked to pack a
	// value that does not fit the requested width. Never produced by this
	// package's own opcode decoding (every field width here is a compile-time
	// constant known to fit); kept in the taxonomy for completeness.
	BitpackOverflowKind
)

func (k Kind) String() string {
	switch k {
	case LoadError:
		return "load error"
	case InvalidOpcode:
		return "invalid opcode"
	case DivideByZero:
		return "divide by zero"
	case OutputRange:
		return "output value exceeds 255"
	case SegmentFault:
		return "segment fault"
	case PcOutOfBounds:
		return "program counter out of bounds"
	case BitpackOverflowKind:
		return "bitpack overflow"
	default:
		return "unknown fault"
	}
}

// Fault is the error surfaced to the host when the dispatch loop halts
// abnormally. It carries the faulting program counter alongside the kind,
// shaped as a struct wrapping the offending location rather than a bare
// sentinel error.
type Fault struct {
	Kind Kind
	PC   Word
	msg  string
}

func (f *Fault) Error() string {
	if f.msg != "" {
		return fmt.Sprintf("%s at pc=%d: %s", f.Kind, f.PC, f.msg)
	}
	return fmt.Sprintf("%s at pc=%d", f.Kind, f.PC)
}

func newFault(kind Kind, pc Word, msg string) *Fault {
	return &Fault{Kind: kind, PC: pc, msg: msg}
}

// BitpackOverflow is returned directly by SetField, which runs below
// instruction dispatch and so has no program counter to attach; it is a
// plain sentinel rather than a *Fault.
var BitpackOverflow = errors.New("bitpack: value does not fit requested width")
