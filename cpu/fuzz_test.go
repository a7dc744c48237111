package cpu_test

import (
	"testing"

	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/mem"
)

// FuzzStep feeds arbitrary 32-bit words to the interpreter and checks
// the invariants that must hold no matter what: x0 stays zero, cycle
// always advances, and instret never outruns cycle. It writes the word
// straight into memory and steps, skipping the assembler entirely, so
// it can reach encodings no mnemonic would ever produce.
func FuzzStep(f *testing.F) {
	f.Add(uint32(0x00000013)) // nop (addi x0,x0,0)
	f.Add(uint32(0x00100073)) // ebreak
	f.Add(uint32(0x30200073)) // mret
	f.Add(uint32(0xffffffff))
	f.Add(uint32(0x00000000))

	f.Fuzz(func(t *testing.T, word uint32) {
		m := mem.New(4096)
		if err := m.Write(0, 4, word); err != nil {
			t.Skip()
		}
		c := cpu.New(m)

		before := c.DumpState()
		r := c.Step()
		after := c.DumpState()

		if after.Regs[0] != 0 {
			t.Fatalf("regs[0] = %#x, want 0", after.Regs[0])
		}
		if after.Cycle != before.Cycle+1 {
			t.Fatalf("cycle = %d, want %d", after.Cycle, before.Cycle+1)
		}
		if after.Instret > after.Cycle {
			t.Fatalf("instret %d exceeds cycle %d", after.Instret, after.Cycle)
		}
		if r.Outcome == cpu.Retired && after.Instret != before.Instret+1 {
			t.Fatalf("retired step did not increment instret")
		}
		if r.Outcome != cpu.Retired && after.Instret != before.Instret {
			t.Fatalf("non-retiring step changed instret")
		}
	})
}
