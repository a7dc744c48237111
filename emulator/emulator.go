// Package emulator is the host-facing driver: it owns the Memory and
// Interpreter for one run, assembles source into a loadable image,
// and batches Step calls under cooperative cancellation.
package emulator

import (
	"context"
	"iter"

	"github.com/rv32sim/rv32sim/asm"
	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/internal"
	"github.com/rv32sim/rv32sim/mem"
)

// Emulator wraps a Memory and Interpreter for the lifetime of one run:
// the Memory and its attached Console persist across Load calls, while
// the Interpreter and the last-assembled Output are replaced each time
// a new source file is loaded into it.
type Emulator struct {
	*cpu.Interpreter
	Memory  *mem.Memory
	Console *mem.ConsoleDevice
	Verbose bool // propagated to the Assembler and Interpreter on the next Load

	assembler *asm.Assembler
	output    *asm.Output
}

// NewEmulator allocates a Memory of memSize bytes (with the default
// console device already attached) and an unbound assembler.
func NewEmulator(memSize uint32) *Emulator {
	return newEmulator(mem.New(memSize))
}

// NewEmulatorAt is NewEmulator with the console device relocated to
// consoleBase instead of mem.ConsoleBase.
func NewEmulatorAt(memSize, consoleBase uint32) *Emulator {
	return newEmulator(mem.NewAt(memSize, consoleBase))
}

func newEmulator(m *mem.Memory) *Emulator {
	return &Emulator{
		Memory:    m,
		Console:   m.Console(),
		assembler: asm.NewAssembler(),
	}
}

// Load assembles src and copies the result into Memory at origin,
// then constructs a fresh Interpreter with PC at the _start symbol
// (or origin if absent) and SP at the top of memory.
func (e *Emulator) Load(src string, origin uint32) error {
	e.assembler.Verbose = e.Verbose
	out, errs := e.assembler.Assemble(src, origin)
	if len(errs) > 0 {
		wrapped := make([]error, len(errs))
		for i, er := range errs {
			wrapped[i] = er
		}
		return &ErrAssemble{Errors: wrapped}
	}

	e.Memory.LoadImage(origin, out.Image)
	e.output = out

	entry := origin
	if a, ok := out.Symbols["_start"]; ok {
		entry = a
	}

	e.Interpreter = cpu.New(e.Memory)
	e.Interpreter.Verbose = e.Verbose
	e.Interpreter.PC = entry
	e.Interpreter.Regs[2] = origin + uint32(len(e.Memory.RAM)) // sp
	return nil
}

// Run drives Step up to batch times, checking ctx for cancellation once
// before the batch — never mid-step, per the core's cooperative
// cancellation contract. It returns early as soon as a Step does not
// retire (Trap or Halt); a caller running an open-ended program calls
// Run again for the next batch, which is also the host's one chance to
// cancel or trace between batches.
func (e *Emulator) Run(ctx context.Context, batch int) (cpu.StepResult, error) {
	if e.Interpreter == nil {
		return cpu.StepResult{}, ErrNoImageLoaded
	}
	select {
	case <-ctx.Done():
		return cpu.StepResult{}, ctx.Err()
	default:
	}

	var r cpu.StepResult
	for i := 0; i < batch; i++ {
		r = e.Interpreter.Step()
		if r.Outcome != cpu.Retired {
			return r, nil
		}
	}
	return r, nil
}

// Dump returns the current architectural state.
func (e *Emulator) Dump() cpu.StateDump {
	if e.Interpreter == nil {
		return cpu.StateDump{}
	}
	return e.Interpreter.DumpState()
}

// Defines merges the last assembly's .equ symbols with its resolved
// labels, name to address, so a caller inspecting program state can
// look either kind of name up through one iterator instead of two.
func (e *Emulator) Defines() iter.Seq2[string, uint32] {
	if e.output == nil {
		return e.assembler.Defines()
	}
	return internal.IterSeq2Concat(e.assembler.Defines(), mapSeq(e.output.Symbols))
}

func mapSeq(m map[string]uint32) iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}
