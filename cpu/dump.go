package cpu

// StateDump is a value snapshot of every architectural register,
// safe to retain after the Interpreter has moved on. Diffing two
// dumps for change-highlighting is a host concern, not the core's.
type StateDump struct {
	PC       uint32
	Regs     [32]uint32
	Priv     uint32
	MPP      uint32
	Mscratch uint32
	Mtvec    uint32
	Mepc     uint32
	Mtval    uint32
	Mcause   uint32
	Cycle    uint64
	Instret  uint64
}

// DumpState returns the full architectural state as a value.
func (c *Interpreter) DumpState() StateDump {
	return StateDump{
		PC:       c.PC,
		Regs:     c.Regs,
		Priv:     c.Priv,
		MPP:      c.csr.mpp,
		Mscratch: c.csr.mscratch,
		Mtvec:    c.csr.mtvec,
		Mepc:     c.csr.mepc,
		Mtval:    c.csr.mtval,
		Mcause:   c.csr.mcause,
		Cycle:    c.csr.cycle,
		Instret:  c.csr.instret,
	}
}
