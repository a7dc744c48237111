package isa

// Decoded holds every field a decoder might need; the interpreter
// reads only the fields relevant to the opcode/funct3/funct7 it found.
type Decoded struct {
	Word   uint32
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
	Rd     uint32
	Rs1    uint32
	Rs2    uint32
	ImmI   int32
	ImmS   int32
	ImmB   int32
	ImmU   uint32
	ImmJ   int32
	Shamt  uint32
	Csr    uint32
}

// Decode extracts every field layout from word unconditionally; the
// caller picks the ones that apply to its opcode.
func Decode(word uint32) Decoded {
	d := Decoded{
		Word:   word,
		Opcode: word & 0x7f,
		Rd:     (word >> 7) & 0x1f,
		Funct3: (word >> 12) & 0x7,
		Rs1:    (word >> 15) & 0x1f,
		Rs2:    (word >> 20) & 0x1f,
		Funct7: (word >> 25) & 0x7f,
	}

	d.ImmI = signExtend(word>>20, 12)
	d.Shamt = (word >> 20) & 0x1f
	d.Csr = (word >> 20) & 0xfff

	immS := ((word >> 25) & 0x7f << 5) | ((word >> 7) & 0x1f)
	d.ImmS = signExtend(immS, 12)

	immB := ((word>>31)&0x1)<<12 | ((word>>7)&0x1)<<11 | ((word>>25)&0x3f)<<5 | ((word>>8)&0xf)<<1
	d.ImmB = signExtend(immB, 13)

	d.ImmU = word & 0xfffff000

	immJ := ((word>>31)&0x1)<<20 | ((word>>12)&0xff)<<12 | ((word>>20)&0x1)<<11 | ((word>>21)&0x3ff)<<1
	d.ImmJ = signExtend(immJ, 21)

	return d
}

func signExtend(v uint32, bits int) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
