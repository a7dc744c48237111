package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/isa"
	"github.com/rv32sim/rv32sim/mem"
)

func newAt(pc uint32, img []uint32) (*cpu.Interpreter, *mem.Memory) {
	m := mem.New(1 << 16)
	addr := pc
	for _, w := range img {
		_ = m.Write(addr, 4, w)
		addr += 4
	}
	c := cpu.New(m)
	c.PC = pc
	return c, m
}

func TestAddRetiresAndAdvancesPC(t *testing.T) {
	assert := assert.New(t)

	// addi x1, x0, 5; add x2, x1, x1
	words := []uint32{
		isa.EncodeI(isa.OpAluImm, 0, 1, 0, 5),
		isa.EncodeR(isa.OpAluReg, 0, 0, 2, 1, 1),
	}
	c, _ := newAt(0, words)

	r1 := c.Step()
	assert.Equal(cpu.Retired, r1.Outcome)
	assert.Equal(uint32(5), c.Regs[1])
	assert.Equal(uint32(4), c.PC)

	r2 := c.Step()
	assert.Equal(cpu.Retired, r2.Outcome)
	assert.Equal(uint32(10), c.Regs[2])
	assert.Equal(uint64(2), c.DumpState().Cycle)
	assert.Equal(uint64(2), c.DumpState().Instret)
}

func TestRegZeroIsAlwaysZero(t *testing.T) {
	assert := assert.New(t)
	words := []uint32{isa.EncodeI(isa.OpAluImm, 0, 0, 0, 99)}
	c, _ := newAt(0, words)
	c.Step()
	assert.Equal(uint32(0), c.Regs[0])
}

func TestBranchTaken(t *testing.T) {
	assert := assert.New(t)
	// beq x0, x0, +8
	words := []uint32{isa.EncodeB(isa.OpBranch, 0, 0, 0, 8)}
	c, _ := newAt(0x1000, words)
	r := c.Step()
	assert.Equal(cpu.Retired, r.Outcome)
	assert.Equal(uint32(0x1008), c.PC)
}

func TestEbreakHaltsWithoutRetiring(t *testing.T) {
	assert := assert.New(t)
	words := []uint32{isa.EncodeSystem(0, 0, 0, 0x001)}
	c, _ := newAt(0, words)
	r := c.Step()
	assert.Equal(cpu.Halt, r.Outcome)
	assert.Equal(uint64(0), c.DumpState().Instret)
	assert.Equal(uint64(1), c.DumpState().Cycle)
}

func TestMisalignedPCTrapsBeforeFetch(t *testing.T) {
	assert := assert.New(t)
	c, _ := newAt(0, nil)
	c.PC = 0x1001
	r := c.Step()
	assert.Equal(cpu.Trap, r.Outcome)
	assert.Equal(uint32(cpu.CauseInstructionAddressMisaligned), r.Cause)
	assert.Equal(uint32(0x1001), r.Epc)
}

func TestEcallCauseByPrivilege(t *testing.T) {
	assert := assert.New(t)
	words := []uint32{isa.EncodeSystem(0, 0, 0, 0x000)}
	c, _ := newAt(0, words)
	c.Priv = cpu.PrivMachine
	r := c.Step()
	assert.Equal(cpu.Trap, r.Outcome)
	assert.Equal(uint32(cpu.CauseMachineECALL), r.Cause)
	assert.Equal(uint32(cpu.PrivMachine), c.Priv)
}

func TestMretReturnsToSavedPrivAndPC(t *testing.T) {
	assert := assert.New(t)

	// lui x1, 0x2        -> x1 = 0x2000
	// csrrw x0, mtvec, x1
	// ecall              -> traps to 0x2000, mepc = address of this ecall (8)
	words := []uint32{
		isa.EncodeU(isa.OpLui, 1, 0x2),
		isa.EncodeSystem(1, 0, 1, isa.CsrMtvec),
		isa.EncodeSystem(0, 0, 0, 0x000),
	}
	c, m := newAt(0, words)
	assert.NoError(m.Write(0x2000, 4, isa.EncodeSystem(0, 0, 0, 0x302))) // mret

	c.Step()             // lui
	c.Step()             // csrrw mtvec, while still machine mode
	c.Priv = cpu.PrivUser // drop to user mode before the trap so mret has something to restore
	trapPC := c.PC
	r := c.Step() // ecall
	assert.Equal(cpu.Trap, r.Outcome)
	assert.Equal(uint32(0x2000), c.PC)
	epc := c.DumpState().Mepc
	assert.Equal(trapPC, epc)

	r = c.Step() // mret
	assert.Equal(cpu.Retired, r.Outcome)
	assert.Equal(epc, c.PC)
	assert.Equal(uint32(cpu.PrivUser), c.Priv)
}
