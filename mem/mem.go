// Package mem implements the flat byte-addressable memory and the
// memory-mapped I/O table that sits underneath the interpreter.
package mem

import (
	"encoding/binary"
)

// DefaultSize is the RAM size used when a caller does not specify one.
const DefaultSize = 1 << 20 // 1 MiB

// ConsoleBase is the address of the default character-output device.
const ConsoleBase = 0x10000000

// Memory is a flat byte store plus a small table of memory-mapped devices.
// RAM and MMIO ranges are disjoint: an access first checks the device
// table, and only falls through to the backing byte slice if no device
// claims the address.
type Memory struct {
	RAM     []byte
	devices []region
}

type region struct {
	base, size uint32
	dev        Device
}

// New allocates a Memory of the given size with the default console
// device registered at ConsoleBase.
func New(size uint32) *Memory {
	return NewAt(size, ConsoleBase)
}

// NewAt allocates a Memory of the given size with the console device
// registered at consoleBase instead of the default ConsoleBase.
func NewAt(size, consoleBase uint32) *Memory {
	m := &Memory{RAM: make([]byte, size)}
	m.Attach(consoleBase, 4, &ConsoleDevice{})
	return m
}

// Attach registers a Device to handle accesses in [base, base+size).
func (m *Memory) Attach(base, size uint32, dev Device) {
	m.devices = append(m.devices, region{base: base, size: size, dev: dev})
}

// Console returns the character-output device registered by New or
// NewAt, for callers that want to redirect its output or read back
// what it has buffered.
func (m *Memory) Console() *ConsoleDevice {
	for _, r := range m.devices {
		if c, ok := r.dev.(*ConsoleDevice); ok {
			return c
		}
	}
	return nil
}

func (m *Memory) deviceFor(addr uint32) (Device, uint32, bool) {
	for _, r := range m.devices {
		if addr >= r.base && addr-r.base < r.size {
			return r.dev, addr - r.base, true
		}
	}
	return nil, 0, false
}

// Read returns the little-endian value of width bytes at addr,
// zero-extended to 32 bits.
func (m *Memory) Read(addr uint32, width int) (uint32, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	if addr%uint32(width) != 0 {
		return 0, ErrAddressMisaligned
	}

	if dev, off, ok := m.deviceFor(addr); ok {
		return dev.Read(off, width)
	}

	if uint64(addr)+uint64(width) > uint64(len(m.RAM)) {
		return 0, ErrAccessFault
	}

	switch width {
	case 1:
		return uint32(m.RAM[addr]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(m.RAM[addr:])), nil
	default:
		return binary.LittleEndian.Uint32(m.RAM[addr:]), nil
	}
}

// Write stores the low width bytes of value at addr, little-endian.
func (m *Memory) Write(addr uint32, width int, value uint32) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if addr%uint32(width) != 0 {
		return ErrAddressMisaligned
	}

	if dev, off, ok := m.deviceFor(addr); ok {
		return dev.Write(off, width, value)
	}

	if uint64(addr)+uint64(width) > uint64(len(m.RAM)) {
		return ErrAccessFault
	}

	switch width {
	case 1:
		m.RAM[addr] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(m.RAM[addr:], uint16(value))
	default:
		binary.LittleEndian.PutUint32(m.RAM[addr:], value)
	}
	return nil
}

// ReadInstruction fetches a 32-bit instruction word at addr, mapping
// faults to the instruction-side fault values.
func (m *Memory) ReadInstruction(addr uint32) (uint32, error) {
	v, err := m.Read(addr, 4)
	switch err {
	case nil:
		return v, nil
	case ErrAddressMisaligned:
		return 0, ErrInstructionAddressMisaligned
	default:
		return 0, ErrInstructionAccessFault
	}
}

// LoadImage copies img into RAM starting at origin. It panics on overflow:
// an image that does not fit in the configured memory is a programmer
// error, not an architectural fault.
func (m *Memory) LoadImage(origin uint32, img []byte) {
	end := uint64(origin) + uint64(len(img))
	if end > uint64(len(m.RAM)) {
		panic("mem: image does not fit in configured memory size")
	}
	copy(m.RAM[origin:], img)
}

func checkWidth(width int) error {
	switch width {
	case 1, 2, 4:
		return nil
	default:
		return ErrAccessFault
	}
}
