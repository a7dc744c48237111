package asm

import "github.com/rv32sim/rv32sim/isa"

// pseudoFixedWidth gives the emitted byte width of every pseudo-
// instruction whose expansion size never varies. `li` is handled
// separately by liWidth since its width depends on the immediate.
var pseudoFixedWidth = map[string]int{
	"nop": 4, "mv": 4, "j": 4, "jr": 4, "ret": 4,
	"beqz": 4, "bnez": 4, "bltz": 4, "bgez": 4, "blez": 4, "bgtz": 4,
	"not": 4, "neg": 4, "seqz": 4, "snez": 4,
	"la": 8, "call": 8,
}

func isPseudo(mnemonic string) bool {
	if mnemonic == "li" {
		return true
	}
	_, ok := pseudoFixedWidth[mnemonic]
	return ok
}

func fitsI12(v int32) bool { return v >= -2048 && v <= 2047 }

// liWidth decides whether `li rd, imm` needs one or two real
// instructions. Pass 1 has only the symbols/equates defined so far;
// when the immediate can't be evaluated yet (it names a symbol not
// yet seen), the worst case (two instructions) is reserved so
// addresses stay stable once pass 2 resolves it.
func liWidth(operandsRaw string, ctx *evalCtx) int {
	ops := splitOperands(operandsRaw)
	if len(ops) < 2 {
		return 8
	}
	v, err := evalExpr(ops[1], ctx.names())
	if err != nil {
		return 8
	}
	if fitsI12(int32(v)) {
		return 4
	}
	return 8
}

func need(ops []string, i int) (string, error) {
	if i >= len(ops) {
		return "", ErrMissingOperand
	}
	return ops[i], nil
}

func encodeAddi(rd, rs1 uint32, imm int32) uint32 {
	return isa.EncodeI(isa.OpAluImm, 0, rd, rs1, uint32(imm))
}

// expandPseudo resolves and encodes a pseudo-instruction into its real
// instruction sequence, per the fixed expansion table.
func expandPseudo(mnemonic, operandsRaw string, addr uint32, ctx *evalCtx) ([]uint32, error) {
	ops := splitOperands(operandsRaw)

	reg := func(i int) (uint32, error) {
		tok, err := need(ops, i)
		if err != nil {
			return 0, err
		}
		return parseReg(tok)
	}

	switch mnemonic {
	case "nop":
		return []uint32{encodeAddi(0, 0, 0)}, nil

	case "mv":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		rs, err := reg(1)
		if err != nil {
			return nil, err
		}
		return []uint32{encodeAddi(rd, rs, 0)}, nil

	case "li":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		imm, err := need(ops, 1)
		if err != nil {
			return nil, err
		}
		v, err := evalExpr(imm, ctx.names())
		if err != nil {
			return nil, err
		}
		if fitsI12(int32(v)) {
			return []uint32{encodeAddi(rd, 0, int32(v))}, nil
		}
		hi, lo := hiLo(v)
		return []uint32{
			isa.EncodeU(isa.OpLui, rd, (hi>>12)&0xfffff),
			encodeAddi(rd, rd, lo),
		}, nil

	case "la":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		sym, err := need(ops, 1)
		if err != nil {
			return nil, err
		}
		target, err := ctx.resolveSymbol(sym)
		if err != nil {
			return nil, err
		}
		return pcrelPair(rd, rd, target, addr, ctx, isa.OpAluImm, 0), nil

	case "j":
		sym, err := need(ops, 0)
		if err != nil {
			return nil, err
		}
		target, err := ctx.resolveSymbol(sym)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeJ(isa.OpJal, 0, target-addr)}, nil

	case "jr":
		rs, err := reg(0)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeI(isa.OpJalr, 0, 0, rs, 0)}, nil

	case "ret":
		return []uint32{isa.EncodeI(isa.OpJalr, 0, 0, 1, 0)}, nil

	case "call":
		sym, err := need(ops, 0)
		if err != nil {
			return nil, err
		}
		target, err := ctx.resolveSymbol(sym)
		if err != nil {
			return nil, err
		}
		return pcrelPair(1, 1, target, addr, ctx, isa.OpJalr, 0), nil

	case "beqz", "bnez", "bltz", "bgez", "blez", "bgtz":
		rs, err := reg(0)
		if err != nil {
			return nil, err
		}
		sym, err := need(ops, 1)
		if err != nil {
			return nil, err
		}
		target, err := ctx.resolveSymbol(sym)
		if err != nil {
			return nil, err
		}
		offset := target - addr
		rs1, rs2, funct3 := rs, uint32(0), uint32(0)
		switch mnemonic {
		case "beqz":
			funct3 = 0x0
		case "bnez":
			funct3 = 0x1
		case "bltz":
			funct3 = 0x4
		case "bgez":
			funct3 = 0x5
		case "blez":
			rs1, rs2, funct3 = 0, rs, 0x5
		case "bgtz":
			rs1, rs2, funct3 = 0, rs, 0x4
		}
		return []uint32{isa.EncodeB(isa.OpBranch, funct3, rs1, rs2, offset)}, nil

	case "not":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		rs, err := reg(1)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeI(isa.OpAluImm, 0x4, rd, rs, 0xffffffff)}, nil // imm -1

	case "neg":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		rs, err := reg(1)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeR(isa.OpAluReg, 0x0, 0x20, rd, 0, rs)}, nil

	case "seqz":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		rs, err := reg(1)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeI(isa.OpAluImm, 0x3, rd, rs, 1)}, nil

	case "snez":
		rd, err := reg(0)
		if err != nil {
			return nil, err
		}
		rs, err := reg(1)
		if err != nil {
			return nil, err
		}
		return []uint32{isa.EncodeR(isa.OpAluReg, 0x3, 0x00, rd, 0, rs)}, nil
	}
	return nil, ErrUnknownMnemonic
}

// pcrelPair emits the auipc+(addi|jalr) pair used by la/call, recording
// the pairing so a later %pcrel_lo(.) on the same address could recover it.
func pcrelPair(auipcRd, secondRd, target, addr uint32, ctx *evalCtx, secondOpcode, secondFunct3 uint32) []uint32 {
	diff := target - addr
	hi, lo := hiLo(diff)
	if ctx.pcrelDiff == nil {
		ctx.pcrelDiff = map[uint32]uint32{}
	}
	ctx.pcrelDiff[addr] = diff
	ctx.lastAuipc = addr
	w1 := isa.EncodeU(isa.OpAuipc, auipcRd, (hi>>12)&0xfffff)
	w2 := isa.EncodeI(secondOpcode, secondFunct3, secondRd, secondRd, uint32(lo))
	return []uint32{w1, w2}
}
