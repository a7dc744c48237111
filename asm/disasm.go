package asm

import (
	"fmt"
	"strings"

	"github.com/rv32sim/rv32sim/isa"
)

// mnemonicByEncoding reverses isa.Table for disassembly: opcode and,
// where it disambiguates, funct3/funct7 to mnemonic.
var mnemonicByEncoding = buildReverseTable()

func buildReverseTable() map[[3]uint32]string {
	m := make(map[[3]uint32]string, len(isa.Table))
	for name, d := range isa.Table {
		key := [3]uint32{d.Opcode, d.Funct3, d.Funct7}
		if d.Format != isa.FormatR && d.Format != isa.FormatI {
			key[2] = 0
		}
		m[key] = name
	}
	return m
}

// disassemble renders one instruction word as its decoded mnemonic
// with its operands; dumpListing prefixes the address and raw hex.
func disassemble(word uint32) string {
	d := isa.Decode(word)
	name := lookupMnemonic(word, d)
	if name == "" {
		return ".word " + fmt.Sprintf("0x%08x", word)
	}

	r := func(n uint32) string { return isa.RegNames[n] }
	desc := isa.Table[name]

	switch desc.Format {
	case isa.FormatR:
		return fmt.Sprintf("%s %s, %s, %s", name, r(d.Rd), r(d.Rs1), r(d.Rs2))
	case isa.FormatI:
		switch name {
		case "slli", "srli", "srai":
			return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rd), r(d.Rs1), d.Shamt)
		case "lb", "lh", "lw", "lbu", "lhu":
			return fmt.Sprintf("%s %s, %d(%s)", name, r(d.Rd), d.ImmI, r(d.Rs1))
		case "jalr":
			return fmt.Sprintf("jalr %s, %d(%s)", r(d.Rd), d.ImmI, r(d.Rs1))
		case "fence":
			return "fence"
		default:
			return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rd), r(d.Rs1), d.ImmI)
		}
	case isa.FormatS:
		return fmt.Sprintf("%s %s, %d(%s)", name, r(d.Rs2), d.ImmS, r(d.Rs1))
	case isa.FormatB:
		return fmt.Sprintf("%s %s, %s, %d", name, r(d.Rs1), r(d.Rs2), d.ImmB)
	case isa.FormatU:
		return fmt.Sprintf("%s %s, 0x%x", name, r(d.Rd), d.ImmU>>12)
	case isa.FormatJ:
		return fmt.Sprintf("%s %s, %d", name, r(d.Rd), d.ImmJ)
	case isa.FormatSystem:
		switch name {
		case "ecall", "ebreak", "mret":
			return name
		case "csrrwi", "csrrsi", "csrrci":
			return fmt.Sprintf("%s %s, 0x%x, %d", name, r(d.Rd), d.Csr, d.Rs1)
		default:
			return fmt.Sprintf("%s %s, 0x%x, %s", name, r(d.Rd), d.Csr, r(d.Rs1))
		}
	}
	return name
}

func lookupMnemonic(word uint32, d isa.Decoded) string {
	switch d.Opcode {
	case isa.OpSystem:
		switch d.Funct3 {
		case 0:
			switch d.Csr {
			case 0x000:
				return "ecall"
			case 0x001:
				return "ebreak"
			case 0x302:
				return "mret"
			}
			return ""
		case 1:
			return "csrrw"
		case 2:
			return "csrrs"
		case 3:
			return "csrrc"
		case 5:
			return "csrrwi"
		case 6:
			return "csrrsi"
		case 7:
			return "csrrci"
		}
		return ""
	}
	key := [3]uint32{d.Opcode, d.Funct3, d.Funct7}
	switch d.Opcode {
	case isa.OpAluReg:
		// key already includes funct7
	case isa.OpAluImm:
		if d.Funct3 != 0x1 && d.Funct3 != 0x5 {
			key[2] = 0
		}
	default:
		key[2] = 0
	}
	return mnemonicByEncoding[key]
}

// dumpListing renders one line per instruction address in addrs order.
func dumpListing(addrs []uint32, words map[uint32]uint32) string {
	var b strings.Builder
	for _, addr := range addrs {
		w := words[addr]
		fmt.Fprintf(&b, "%08x: %08x  %s\n", addr, w, disassemble(w))
	}
	return b.String()
}
