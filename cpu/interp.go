// Package cpu implements the RV32I/Zicsr interpreter: instruction
// fetch/decode/execute, CSR access, privilege transitions, and trap
// delivery against a pluggable Memory.
package cpu

import "log"

// Memory is the capability the interpreter needs from its backing
// store. mem.Memory satisfies it; tests may supply a fake.
//
// The interpreter holds this as an interface rather than a concrete
// *mem.Memory so it never has to know about MMIO devices, address
// ranges, or anything else behind Read/Write: dispatch to a device is
// entirely the memory's business.
type Memory interface {
	Read(addr uint32, width int) (uint32, error)
	Write(addr uint32, width int, value uint32) error
	ReadInstruction(addr uint32) (uint32, error)
}

// Interpreter is the whole of the architectural state: no global
// state exists outside this struct.
type Interpreter struct {
	Regs    [32]uint32
	PC      uint32
	Priv    uint32 // 0 = User, 3 = Machine
	Verbose bool   // if set, logs the outcome of every Step that fetches an instruction

	csr csrFile
	mem Memory
}

const (
	PrivUser    = 0
	PrivMachine = 3
)

// New constructs an Interpreter with all registers, PC, and CSRs
// zero, and priv = Machine, bound to mem.
func New(mem Memory) *Interpreter {
	return &Interpreter{mem: mem, Priv: PrivMachine}
}

func (c *Interpreter) setReg(rd, value uint32) {
	if rd != 0 {
		c.Regs[rd] = value
	}
}

// Step performs one fetch/decode/execute cycle per the core's
// seven-step algorithm: cycle always increments; instret increments
// only on a non-trapping, non-halting retirement.
func (c *Interpreter) Step() StepResult {
	c.csr.cycle++

	if c.PC&0x3 != 0 {
		return c.trap(CauseInstructionAddressMisaligned, c.PC)
	}

	pc := c.PC
	word, err := c.mem.ReadInstruction(pc)
	if err != nil {
		return c.trap(CauseInstructionAccessFault, pc)
	}

	r := c.execute(word)
	if c.Verbose {
		log.Printf("cpu: pc=%#08x word=%#08x -> %s", pc, word, r.Outcome)
	}
	return r
}

func (c *Interpreter) trap(cause, tval uint32) StepResult {
	c.csr.mepc = c.PC
	c.csr.mcause = cause
	c.csr.mtval = tval
	c.csr.mpp = c.Priv
	c.Priv = PrivMachine
	c.PC = c.csr.mtvec &^ 0x3
	return StepResult{Outcome: Trap, Cause: cause, Epc: c.csr.mepc}
}

// retire advances PC by 4 (the common case for every instruction that
// isn't itself a control transfer) and counts the retirement.
func (c *Interpreter) retire() StepResult {
	c.PC += 4
	c.csr.instret++
	return StepResult{Outcome: Retired}
}

// retireJump counts the retirement without touching PC: the caller
// has already set it to the jump/branch target.
func (c *Interpreter) retireJump() StepResult {
	c.csr.instret++
	return StepResult{Outcome: Retired}
}
