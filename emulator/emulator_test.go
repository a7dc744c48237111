package emulator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/emulator"
)

func TestLoadAndRunMinimalProgram(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load("_start:\n  li a0, 42\n  ebreak\n", 0x1000))

	res, err := e.Run(context.Background(), 8)
	require.NoError(err)
	assert.Equal(cpu.Halt, res.Outcome)
	assert.Equal(uint32(42), e.Dump().Regs[10])
}

func TestVerboseDefaultsFalseAndPropagatesOnLoad(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	e := emulator.NewEmulator(1 << 16)
	assert.False(e.Verbose)

	e.Verbose = true
	require.NoError(e.Load("_start:\n  nop\n  ebreak\n", 0x1000))
	assert.True(e.Interpreter.Verbose)
}

func TestLoadSurfacesAssembleErrors(t *testing.T) {
	require := require.New(t)

	e := emulator.NewEmulator(1 << 16)
	err := e.Load("  j nowhere\n", 0)
	require.Error(err)

	var asmErr *emulator.ErrAssemble
	require.ErrorAs(err, &asmErr)
	require.Len(asmErr.Errors, 1)
}

func TestRunWithoutLoadReturnsErrNoImageLoaded(t *testing.T) {
	e := emulator.NewEmulator(1 << 16)
	_, err := e.Run(context.Background(), 4)
	require.ErrorIs(t, err, emulator.ErrNoImageLoaded)
}

func TestLoopAccumulatesExpectedRetirementCount(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  li t0, 0\n" +
		"  li t1, 10\n" +
		"loop:\n" +
		"  addi t0, t0, 1\n" +
		"  bne t0, t1, loop\n" +
		"  ebreak\n"

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(src, 0x1000))

	res, err := e.Run(context.Background(), 64)
	require.NoError(err)
	assert.Equal(cpu.Halt, res.Outcome)

	dump := e.Dump()
	assert.Equal(uint32(10), dump.Regs[5])
	// 2 li's, then 10 trips through addi+bne (9 taken, 1 not); ebreak
	// itself halts without retiring.
	assert.Equal(uint64(22), dump.Instret)
}

func TestRunReturnsAfterOneBatchWhenStillRetiring(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  nop\n" +
		"  nop\n" +
		"  nop\n" +
		"  nop\n" +
		"  ebreak\n"

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(src, 0x1000))

	res, err := e.Run(context.Background(), 2)
	require.NoError(err)
	assert.Equal(cpu.Retired, res.Outcome)
	assert.Equal(uint64(2), e.Dump().Instret)

	res, err = e.Run(context.Background(), 2)
	require.NoError(err)
	assert.Equal(cpu.Retired, res.Outcome)
	assert.Equal(uint64(4), e.Dump().Instret)

	res, err = e.Run(context.Background(), 2)
	require.NoError(err)
	assert.Equal(cpu.Halt, res.Outcome)
}

func TestMMIOConsoleOutput(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  li t0, 0x10000000\n" +
		"  li t1, 72\n" + // 'H'
		"  sb t1, 0(t0)\n" +
		"  li t1, 105\n" + // 'i'
		"  sb t1, 0(t0)\n" +
		"  li t1, 10\n" + // '\n'
		"  sb t1, 0(t0)\n" +
		"  ebreak\n"

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(src, 0x1000))

	res, err := e.Run(context.Background(), 64)
	require.NoError(err)
	assert.Equal(cpu.Halt, res.Outcome)
	assert.Equal("Hi\n", e.Console.String())
}

func TestTrapAndReturnThroughMtvec(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  la t0, handler\n" +
		"  csrrw x0, mtvec, t0\n" +
		"  ecall\n" +
		"  ebreak\n" +
		"handler:\n" +
		"  li a0, 7\n" +
		"  mret\n"

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(src, 0x1000))

	// auipc, addi (la); csrrw; ecall traps into the handler; li; mret.
	outcomes := make([]cpu.Outcome, 6)
	for i := range outcomes {
		outcomes[i] = e.Step().Outcome
	}
	require.Equal([]cpu.Outcome{cpu.Retired, cpu.Retired, cpu.Retired, cpu.Trap, cpu.Retired, cpu.Retired}, outcomes)

	dump := e.Dump()
	assert.Equal(uint32(7), dump.Regs[10])
	assert.Equal(uint32(11), dump.Mcause) // machine ECALL
	assert.Equal(uint32(cpu.PrivMachine), dump.Priv)
}

func TestMisalignedJumpTargetTrapsOnNextFetch(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  li t0, 0x1002\n" +
		"  jalr x0, t0, 0\n"

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(src, 0))

	res, err := e.Run(context.Background(), 4)
	require.NoError(err)
	assert.Equal(cpu.Trap, res.Outcome)
	assert.Equal(uint32(0), res.Cause)
	assert.Equal(uint32(0x1002), res.Epc)
	assert.Equal(uint32(0x1002), e.Dump().Mepc)
}

func TestNewEmulatorAtRelocatesConsole(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" +
		"  li t0, 0x20000000\n" +
		"  li t1, 88\n" + // 'X'
		"  sb t1, 0(t0)\n" +
		"  ebreak\n"

	e := emulator.NewEmulatorAt(1<<16, 0x20000000)
	require.NoError(e.Load(src, 0x1000))

	res, err := e.Run(context.Background(), 64)
	require.NoError(err)
	assert.Equal(cpu.Halt, res.Outcome)
	assert.Equal("X", e.Console.String())
}

func TestDefinesMergesEquatesAndSymbols(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	e := emulator.NewEmulator(1 << 16)
	require.NoError(e.Load(".equ STRIDE, 4\nmain:\n  nop\n", 0x2000))

	got := map[string]uint32{}
	for k, v := range e.Defines() {
		got[k] = v
	}
	assert.Equal(uint32(4), got["STRIDE"])
	assert.Equal(uint32(0x2000), got["main"])
}
