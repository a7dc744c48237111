package isa

// EncodeR packs an R-type instruction: funct7|rs2|rs1|funct3|rd|opcode.
func EncodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// EncodeI packs an I-type instruction. imm is taken as the low 12 bits
// of a sign-extended value.
func EncodeI(opcode, funct3, rd, rs1, imm uint32) uint32 {
	return (imm&0xfff)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// EncodeShift packs slli/srli/srai: funct7 in imm[11:5], 5-bit shamt in imm[4:0].
func EncodeShift(opcode, funct3, funct7, rd, rs1, shamt uint32) uint32 {
	return funct7<<25 | (shamt&0x1f)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// EncodeS packs an S-type (store) instruction.
func EncodeS(opcode, funct3, rs1, rs2, imm uint32) uint32 {
	imm11_5 := (imm >> 5) & 0x7f
	imm4_0 := imm & 0x1f
	return imm11_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | imm4_0<<7 | opcode
}

// EncodeB packs a B-type (branch) instruction. imm is the byte offset;
// bit 0 is implicitly zero and not stored.
func EncodeB(opcode, funct3, rs1, rs2, imm uint32) uint32 {
	imm12 := (imm >> 12) & 0x1
	imm10_5 := (imm >> 5) & 0x3f
	imm11 := (imm >> 11) & 0x1
	imm4_1 := (imm >> 1) & 0xf
	return imm12<<31 | imm10_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | imm4_1<<8 | imm11<<7 | opcode
}

// EncodeU packs a U-type instruction (lui/auipc). imm holds the
// already-shifted upper 20 bits in its low 20 bits.
func EncodeU(opcode, rd, imm uint32) uint32 {
	return (imm&0xfffff)<<12 | rd<<7 | opcode
}

// EncodeJ packs a J-type (jal) instruction. imm is the byte offset;
// bit 0 is implicitly zero and not stored.
func EncodeJ(opcode, rd, imm uint32) uint32 {
	imm20 := (imm >> 20) & 0x1
	imm10_1 := (imm >> 1) & 0x3ff
	imm11 := (imm >> 11) & 0x1
	imm19_12 := (imm >> 12) & 0xff
	return imm20<<31 | imm10_1<<21 | imm11<<20 | imm19_12<<12 | rd<<7 | opcode
}

// EncodeSystem packs a SYSTEM-opcode instruction: ecall/ebreak/mret use
// a fixed 12-bit immediate with rd=rs1=0; csr* use imm as the CSR
// address and rs1 as either a source register or a 5-bit immediate.
func EncodeSystem(funct3, rd, rs1, csrOrImm uint32) uint32 {
	return (csrOrImm&0xfff)<<20 | rs1<<15 | funct3<<12 | rd<<7 | OpSystem
}
