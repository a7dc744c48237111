package cpu

import (
	"errors"

	"github.com/rv32sim/rv32sim/isa"
	"github.com/rv32sim/rv32sim/mem"
)

func (c *Interpreter) execute(word uint32) StepResult {
	d := isa.Decode(word)
	switch d.Opcode {
	case isa.OpAluReg:
		return c.execAluReg(d)
	case isa.OpAluImm:
		return c.execAluImm(d)
	case isa.OpLoad:
		return c.execLoad(d)
	case isa.OpStore:
		return c.execStore(d)
	case isa.OpBranch:
		return c.execBranch(d)
	case isa.OpJal:
		c.setReg(d.Rd, c.PC+4)
		c.PC = c.PC + uint32(d.ImmJ)
		return c.retireJump()
	case isa.OpJalr:
		target := (c.Regs[d.Rs1] + uint32(d.ImmI)) &^ 1
		c.setReg(d.Rd, c.PC+4)
		c.PC = target
		return c.retireJump()
	case isa.OpLui:
		c.setReg(d.Rd, d.ImmU)
		return c.retire()
	case isa.OpAuipc:
		c.setReg(d.Rd, c.PC+d.ImmU)
		return c.retire()
	case isa.OpFence:
		return c.retire()
	case isa.OpSystem:
		return c.execSystem(d)
	}
	return c.trap(CauseIllegalInstruction, d.Word)
}

func (c *Interpreter) execAluReg(d isa.Decoded) StepResult {
	a, b := c.Regs[d.Rs1], c.Regs[d.Rs2]
	var result uint32
	switch d.Funct3 {
	case 0x0:
		switch d.Funct7 {
		case 0x00:
			result = a + b
		case 0x20:
			result = a - b
		default:
			return c.trap(CauseIllegalInstruction, d.Word)
		}
	case 0x1:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		result = a << (b & 0x1f)
	case 0x2:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		if int32(a) < int32(b) {
			result = 1
		}
	case 0x3:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		if a < b {
			result = 1
		}
	case 0x4:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		result = a ^ b
	case 0x5:
		switch d.Funct7 {
		case 0x00:
			result = a >> (b & 0x1f)
		case 0x20:
			result = uint32(int32(a) >> (b & 0x1f))
		default:
			return c.trap(CauseIllegalInstruction, d.Word)
		}
	case 0x6:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		result = a | b
	case 0x7:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		result = a & b
	}
	c.setReg(d.Rd, result)
	return c.retire()
}

func (c *Interpreter) execAluImm(d isa.Decoded) StepResult {
	a := c.Regs[d.Rs1]
	imm := d.ImmI
	var result uint32
	switch d.Funct3 {
	case 0x0:
		result = a + uint32(imm)
	case 0x1:
		if d.Funct7 != 0x00 {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		result = a << d.Shamt
	case 0x2:
		if int32(a) < imm {
			result = 1
		}
	case 0x3:
		if a < uint32(imm) {
			result = 1
		}
	case 0x4:
		result = a ^ uint32(imm)
	case 0x5:
		switch d.Funct7 {
		case 0x00:
			result = a >> d.Shamt
		case 0x20:
			result = uint32(int32(a) >> d.Shamt)
		default:
			return c.trap(CauseIllegalInstruction, d.Word)
		}
	case 0x6:
		result = a | uint32(imm)
	case 0x7:
		result = a & uint32(imm)
	}
	c.setReg(d.Rd, result)
	return c.retire()
}

func (c *Interpreter) execLoad(d isa.Decoded) StepResult {
	addr := c.Regs[d.Rs1] + uint32(d.ImmI)
	var width int
	switch d.Funct3 {
	case 0x0, 0x4:
		width = 1
	case 0x1, 0x5:
		width = 2
	case 0x2:
		width = 4
	default:
		return c.trap(CauseIllegalInstruction, d.Word)
	}

	v, err := c.mem.Read(addr, width)
	if err != nil {
		if isMisaligned(err) {
			return c.trap(CauseLoadAddressMisaligned, addr)
		}
		return c.trap(CauseLoadAccessFault, addr)
	}

	switch d.Funct3 {
	case 0x0:
		v = uint32(int32(int8(v)))
	case 0x1:
		v = uint32(int32(int16(v)))
	}
	c.setReg(d.Rd, v)
	return c.retire()
}

func (c *Interpreter) execStore(d isa.Decoded) StepResult {
	addr := c.Regs[d.Rs1] + uint32(d.ImmS)
	var width int
	switch d.Funct3 {
	case 0x0:
		width = 1
	case 0x1:
		width = 2
	case 0x2:
		width = 4
	default:
		return c.trap(CauseIllegalInstruction, d.Word)
	}

	if err := c.mem.Write(addr, width, c.Regs[d.Rs2]); err != nil {
		if isMisaligned(err) {
			return c.trap(CauseStoreAddressMisaligned, addr)
		}
		return c.trap(CauseStoreAccessFault, addr)
	}
	return c.retire()
}

func (c *Interpreter) execBranch(d isa.Decoded) StepResult {
	a, b := c.Regs[d.Rs1], c.Regs[d.Rs2]
	var taken bool
	switch d.Funct3 {
	case 0x0:
		taken = a == b
	case 0x1:
		taken = a != b
	case 0x4:
		taken = int32(a) < int32(b)
	case 0x5:
		taken = int32(a) >= int32(b)
	case 0x6:
		taken = a < b
	case 0x7:
		taken = a >= b
	default:
		return c.trap(CauseIllegalInstruction, d.Word)
	}
	if taken {
		c.PC = c.PC + uint32(d.ImmB)
		return c.retireJump()
	}
	return c.retire()
}

func (c *Interpreter) execSystem(d isa.Decoded) StepResult {
	if d.Funct3 != 0 {
		return c.execCSR(d)
	}
	switch d.Csr {
	case 0x000: // ecall
		cause := uint32(CauseUserECALL)
		if c.Priv == PrivMachine {
			cause = CauseMachineECALL
		}
		return c.trap(cause, 0)
	case 0x001: // ebreak
		return StepResult{Outcome: Halt}
	case 0x302: // mret
		if c.Priv != PrivMachine {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
		c.PC = c.csr.mepc
		c.Priv = c.csr.mpp
		c.csr.mpp = PrivUser
		return c.retireJump()
	}
	return c.trap(CauseIllegalInstruction, d.Word)
}

// execCSR implements csrrw/csrrs/csrrc/csrrwi/csrrsi/csrrci. For the
// *i forms, the 5-bit immediate arrives in the rs1 field, which is
// exactly where the encoding puts it.
func (c *Interpreter) execCSR(d isa.Decoded) StepResult {
	addr := d.Csr
	if isa.MachineOnlyCSR(addr) && c.Priv != PrivMachine {
		return c.trap(CauseIllegalInstruction, d.Word)
	}

	old, err := c.csr.read(addr)
	if err != nil {
		return c.trap(CauseIllegalInstruction, d.Word)
	}

	var writeVal uint32
	doWrite := false
	switch d.Funct3 {
	case 0x1: // csrrw
		writeVal, doWrite = c.Regs[d.Rs1], true
	case 0x2: // csrrs
		if d.Rs1 != 0 {
			writeVal, doWrite = old|c.Regs[d.Rs1], true
		}
	case 0x3: // csrrc
		if d.Rs1 != 0 {
			writeVal, doWrite = old&^c.Regs[d.Rs1], true
		}
	case 0x5: // csrrwi
		writeVal, doWrite = d.Rs1, true
	case 0x6: // csrrsi
		if d.Rs1 != 0 {
			writeVal, doWrite = old|d.Rs1, true
		}
	case 0x7: // csrrci
		if d.Rs1 != 0 {
			writeVal, doWrite = old&^d.Rs1, true
		}
	}

	if doWrite {
		if err := c.csr.write(addr, writeVal); err != nil {
			return c.trap(CauseIllegalInstruction, d.Word)
		}
	}

	c.setReg(d.Rd, old)
	return c.retire()
}

func isMisaligned(err error) bool {
	return errors.Is(err, mem.ErrAddressMisaligned)
}
