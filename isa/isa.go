// Package isa holds the RV32I/Zicsr instruction encoding: the bit
// layouts shared by the assembler's encoder and the interpreter's
// decoder, plus the register and CSR name tables both sides print and
// parse.
//
// The encode and decode tables live together because they describe the
// same mnemonic set from opposite directions; a change to one almost
// always needs the other. isa has no dependency on asm or cpu so both
// can import it without a cycle.
package isa

// Format identifies an instruction's field layout.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
	FormatSystem // ecall/ebreak/mret/csr*: SYSTEM opcode, fields vary by mnemonic
)

// Opcode values (bits [6:0]).
const (
	OpLoad    = 0b0000011
	OpStore   = 0b0100011
	OpAluImm  = 0b0010011
	OpAluReg  = 0b0110011
	OpBranch  = 0b1100011
	OpJal     = 0b1101111
	OpJalr    = 0b1100111
	OpLui     = 0b0110111
	OpAuipc   = 0b0010111
	OpFence   = 0b0001111
	OpSystem  = 0b1110011
)

// Desc describes one mnemonic's fixed encoding fields. Variable fields
// (rd, rs1, rs2, immediates) are supplied per instance by the caller.
type Desc struct {
	Mnemonic string
	Format   Format
	Opcode   uint32
	Funct3   uint32
	Funct7   uint32 // R-type and shift-immediate only
	Imm12    uint32 // SYSTEM instructions with a fixed immediate (ecall/ebreak/mret)
}

// Table is keyed by mnemonic, covering every real (non-pseudo) RV32I
// and Zicsr instruction.
var Table = map[string]Desc{
	// R-type ALU
	"add":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x0, Funct7: 0x00},
	"sub":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x0, Funct7: 0x20},
	"sll":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x1, Funct7: 0x00},
	"slt":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x2, Funct7: 0x00},
	"sltu": {Format: FormatR, Opcode: OpAluReg, Funct3: 0x3, Funct7: 0x00},
	"xor":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x4, Funct7: 0x00},
	"srl":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x5, Funct7: 0x00},
	"sra":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x5, Funct7: 0x20},
	"or":   {Format: FormatR, Opcode: OpAluReg, Funct3: 0x6, Funct7: 0x00},
	"and":  {Format: FormatR, Opcode: OpAluReg, Funct3: 0x7, Funct7: 0x00},

	// I-type ALU
	"addi":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x0},
	"slti":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x2},
	"sltiu": {Format: FormatI, Opcode: OpAluImm, Funct3: 0x3},
	"xori":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x4},
	"ori":   {Format: FormatI, Opcode: OpAluImm, Funct3: 0x6},
	"andi":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x7},
	"slli":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x1, Funct7: 0x00},
	"srli":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x5, Funct7: 0x00},
	"srai":  {Format: FormatI, Opcode: OpAluImm, Funct3: 0x5, Funct7: 0x20},

	// Loads
	"lb":  {Format: FormatI, Opcode: OpLoad, Funct3: 0x0},
	"lh":  {Format: FormatI, Opcode: OpLoad, Funct3: 0x1},
	"lw":  {Format: FormatI, Opcode: OpLoad, Funct3: 0x2},
	"lbu": {Format: FormatI, Opcode: OpLoad, Funct3: 0x4},
	"lhu": {Format: FormatI, Opcode: OpLoad, Funct3: 0x5},

	// Stores
	"sb": {Format: FormatS, Opcode: OpStore, Funct3: 0x0},
	"sh": {Format: FormatS, Opcode: OpStore, Funct3: 0x1},
	"sw": {Format: FormatS, Opcode: OpStore, Funct3: 0x2},

	// Branches
	"beq":  {Format: FormatB, Opcode: OpBranch, Funct3: 0x0},
	"bne":  {Format: FormatB, Opcode: OpBranch, Funct3: 0x1},
	"blt":  {Format: FormatB, Opcode: OpBranch, Funct3: 0x4},
	"bge":  {Format: FormatB, Opcode: OpBranch, Funct3: 0x5},
	"bltu": {Format: FormatB, Opcode: OpBranch, Funct3: 0x6},
	"bgeu": {Format: FormatB, Opcode: OpBranch, Funct3: 0x7},

	"jal":  {Format: FormatJ, Opcode: OpJal},
	"jalr": {Format: FormatI, Opcode: OpJalr, Funct3: 0x0},

	"lui":   {Format: FormatU, Opcode: OpLui},
	"auipc": {Format: FormatU, Opcode: OpAuipc},

	"fence": {Format: FormatI, Opcode: OpFence, Funct3: 0x0, Imm12: 0x000},

	"ecall":  {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x0, Imm12: 0x000},
	"ebreak": {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x0, Imm12: 0x001},
	"mret":   {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x0, Imm12: 0x302},

	"csrrw":  {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x1},
	"csrrs":  {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x2},
	"csrrc":  {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x3},
	"csrrwi": {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x5},
	"csrrsi": {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x6},
	"csrrci": {Format: FormatSystem, Opcode: OpSystem, Funct3: 0x7},
}

// IsCSR reports whether mnemonic is one of the six CSR instructions.
func IsCSR(mnemonic string) bool {
	switch mnemonic {
	case "csrrw", "csrrs", "csrrc", "csrrwi", "csrrsi", "csrrci":
		return true
	}
	return false
}
