package cpu

import "github.com/rv32sim/rv32sim/isa"

// csrFile holds the CSR address space this core implements. mstatus
// is not stored as a full 32-bit register: only the MPP field has
// architectural meaning here. There are no interrupts to mask, so
// MIE/MPIE would just be bits that read back whatever was last
// written to them.
type csrFile struct {
	mpp      uint32
	mscratch uint32
	mepc     uint32
	mtval    uint32
	mcause   uint32
	mtvec    uint32
	cycle    uint64
	instret  uint64
}

func (c *csrFile) read(addr uint32) (uint32, error) {
	switch addr {
	case isa.CsrMstatus:
		return c.mpp << 11, nil
	case isa.CsrMscratch:
		return c.mscratch, nil
	case isa.CsrMepc:
		return c.mepc, nil
	case isa.CsrMcause:
		return c.mcause, nil
	case isa.CsrMtval:
		return c.mtval, nil
	case isa.CsrMtvec:
		return c.mtvec, nil
	case isa.CsrCycle:
		return uint32(c.cycle), nil
	case isa.CsrCycleh:
		return uint32(c.cycle >> 32), nil
	case isa.CsrInstret:
		return uint32(c.instret), nil
	case isa.CsrInstreth:
		return uint32(c.instret >> 32), nil
	}
	return 0, ErrIllegalInstruction
}

func (c *csrFile) write(addr, value uint32) error {
	if isa.ReadOnlyCSR(addr) {
		return ErrIllegalInstruction
	}
	switch addr {
	case isa.CsrMstatus:
		c.mpp = (value >> 11) & 0x3
	case isa.CsrMscratch:
		c.mscratch = value
	case isa.CsrMepc:
		c.mepc = value
	case isa.CsrMcause:
		c.mcause = value
	case isa.CsrMtval:
		c.mtval = value
	case isa.CsrMtvec:
		c.mtvec = value
	default:
		return ErrIllegalInstruction
	}
	return nil
}
