package mem

import (
	"errors"

	"github.com/rv32sim/rv32sim/translate"
)

var f = translate.From

var (
	// ErrAccessFault is raised for unmapped RAM/MMIO or an unsupported
	// access width.
	ErrAccessFault = errors.New(f("access fault"))
	// ErrAddressMisaligned is raised when addr is not a multiple of width.
	ErrAddressMisaligned = errors.New(f("address misaligned"))

	// Instruction-side fault values, used by ReadInstruction.
	ErrInstructionAccessFault       = errors.New(f("instruction access fault"))
	ErrInstructionAddressMisaligned = errors.New(f("instruction address misaligned"))
)
