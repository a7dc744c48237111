package cpu

import (
	"errors"

	"github.com/rv32sim/rv32sim/translate"
)

var f = translate.From

// Trap cause codes, a subset of the RISC-V privileged spec used in mcause.
const (
	CauseInstructionAddressMisaligned = 0
	CauseInstructionAccessFault       = 1
	CauseIllegalInstruction           = 2
	CauseBreakpoint                   = 3
	CauseLoadAddressMisaligned        = 4
	CauseLoadAccessFault              = 5
	CauseStoreAddressMisaligned       = 6
	CauseStoreAccessFault             = 7
	CauseUserECALL                    = 8
	CauseMachineECALL                 = 11
)

var (
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
)
