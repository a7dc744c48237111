package asm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32sim/rv32sim/asm"
	"github.com/rv32sim/rv32sim/isa"
)

func TestAssembleMinimalProgram(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	out, errs := asm.Assemble("_start:\n  li a0, 42\n  ebreak\n", 0x1000)
	require.Empty(errs)
	require.NotNil(out)
	assert.Equal(uint32(0x1000), out.Symbols["_start"])
	assert.Len(out.Image, 8) // li(42) fits in one addi; ebreak is 4 bytes
}

func TestAssembleCollectsAllErrorsInSourceOrder(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "_start:\n" + // 1
		"  nop\n" + // 2
		"  j undefined_label\n" + // 3
		"foo:\n" + // 4
		"  nop\n" + // 5
		"  nop\n" + // 6
		"foo:\n" + // 7
		"  ebreak\n" // 8

	out, errs := asm.Assemble(src, 0)
	require.Nil(out)
	require.Len(errs, 2)
	assert.Equal(3, errs[0].Line)
	assert.Equal(7, errs[1].Line)
}

func TestDuplicateLabelIsAnError(t *testing.T) {
	require := require.New(t)
	_, errs := asm.Assemble("a:\n  nop\na:\n  nop\n", 0)
	require.Len(errs, 1)
}

func TestHiLoPairReconstructsAny32BitConstant(t *testing.T) {
	assert := assert.New(t)
	// Only values that don't fit a 12-bit signed immediate go through
	// the lui+addi expansion this property exercises.
	values := []uint32{0xdeadbeef, 0x7fffffff, 0x80000000, 0xfffff800, 0x800, 0xfff}
	for _, k := range values {
		src := "li t0, " + itoa32(k) + "\nebreak\n"
		out, errs := asm.Assemble(src, 0)
		assert.Empty(errs, "k=%#x", k)
		if out == nil {
			continue
		}
		// Decode the li expansion and replay it by hand.
		var rd uint32
		var acc uint32
		for addr := uint32(0); addr+4 <= uint32(len(out.Image)); addr += 4 {
			word := uint32(out.Image[addr]) | uint32(out.Image[addr+1])<<8 | uint32(out.Image[addr+2])<<16 | uint32(out.Image[addr+3])<<24
			d := isa.Decode(word)
			switch d.Opcode {
			case isa.OpLui:
				rd = d.Rd
				acc = d.ImmU
			case isa.OpAluImm:
				if d.Rd == rd {
					acc = acc + uint32(d.ImmI)
				}
			}
		}
		assert.Equal(k, acc, "k=%#x", k)
	}
}

func itoa32(v uint32) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for n := v; n > 0; n /= 10 {
		digits = append(digits, byte('0'+n%10))
	}
	buf := make([]byte, len(digits))
	for i, d := range digits {
		buf[len(digits)-1-i] = d
	}
	return string(buf)
}

func TestBranchOffsetRoundTrips(t *testing.T) {
	assert := assert.New(t)
	for _, off := range []int32{-4096, -2, 0, 2, 4094} {
		word := isa.EncodeB(isa.OpBranch, 0x0, 0, 0, uint32(off))
		d := isa.Decode(word)
		assert.Equal(off, d.ImmB)
	}
}

func TestDirectivesEmitExpectedBytes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	out, errs := asm.Assemble(".word 0xdeadbeef\n.half 0x0102\n.byte 1,2,3\n.asciz \"hi\"\n.zero 2\n", 0)
	require.Empty(errs)
	require.NotNil(out)
	assert.Equal([]byte{
		0xef, 0xbe, 0xad, 0xde,
		0x02, 0x01,
		1, 2, 3,
		'h', 'i', 0,
		0, 0,
	}, out.Image)
}

func TestByteDirectiveAcceptsCharLiterals(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	out, errs := asm.Assemble(".byte 'H', 'i', 10, '\\n'\n", 0)
	require.Empty(errs)
	require.NotNil(out)
	assert.Equal([]byte{'H', 'i', 10, '\n'}, out.Image)
}

func TestEquDefinesAreExposedThroughDefines(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	a := asm.NewAssembler()
	out, errs := a.Assemble(".equ FOO, 5\n.equ BAR, FOO+3\n.word FOO\n.word BAR\n", 0)
	require.Empty(errs)
	require.NotNil(out)

	got := map[string]uint32{}
	for k, v := range a.Defines() {
		got[k] = v
	}
	assert.Equal(uint32(5), got["FOO"])
	assert.Equal(uint32(8), got["BAR"])
}

func TestDumpDisassemblyIsTokenEquivalent(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	out, errs := asm.Assemble("_start:\n  add t0, t1, t2\n  addi t0, t0, -5\n  beq t0, x0, _start\n", 0)
	require.Empty(errs)
	require.NotNil(out)

	lines := strings.Split(strings.TrimRight(out.Dump, "\n"), "\n")
	require.Len(lines, 3)
	assert.Contains(lines[0], "add t0, t1, t2")
	assert.Contains(lines[1], "addi t0, t0, -5")
	assert.Contains(lines[2], "beq t0, zero, -8")
}

func TestUnknownMnemonicIsAnError(t *testing.T) {
	require := require.New(t)
	_, errs := asm.Assemble("  frobnicate x1, x2\n", 0)
	require.Len(errs, 1)
}
