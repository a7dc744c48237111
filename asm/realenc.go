package asm

import (
	"strings"

	"github.com/rv32sim/rv32sim/isa"
)

// encodeReal encodes one non-pseudo mnemonic to its 32-bit word.
func encodeReal(mnemonic string, operandsRaw string, addr uint32, ctx *evalCtx) (uint32, error) {
	desc, ok := isa.Table[mnemonic]
	if !ok {
		return 0, ErrUnknownMnemonic
	}
	ops := splitOperands(operandsRaw)

	reg := func(i int) (uint32, error) {
		tok, err := need(ops, i)
		if err != nil {
			return 0, err
		}
		return parseReg(tok)
	}

	switch desc.Format {
	case isa.FormatR:
		rd, err := reg(0)
		if err != nil {
			return 0, err
		}
		rs1, err := reg(1)
		if err != nil {
			return 0, err
		}
		rs2, err := reg(2)
		if err != nil {
			return 0, err
		}
		return isa.EncodeR(desc.Opcode, desc.Funct3, desc.Funct7, rd, rs1, rs2), nil

	case isa.FormatI:
		switch mnemonic {
		case "slli", "srli", "srai":
			rd, err := reg(0)
			if err != nil {
				return 0, err
			}
			rs1, err := reg(1)
			if err != nil {
				return 0, err
			}
			tok, err := need(ops, 2)
			if err != nil {
				return 0, err
			}
			v, err := evalExpr(tok, ctx.names())
			if err != nil {
				return 0, err
			}
			if v > 31 {
				return 0, ErrImmediateOutRange
			}
			return isa.EncodeShift(desc.Opcode, desc.Funct3, desc.Funct7, rd, rs1, v), nil

		case "lb", "lh", "lw", "lbu", "lhu":
			rd, err := reg(0)
			if err != nil {
				return 0, err
			}
			tok, err := need(ops, 1)
			if err != nil {
				return 0, err
			}
			immExpr, regTok, ok := memOperand(tok)
			if !ok {
				return 0, ErrBadOperand
			}
			rs1, err := parseReg(regTok)
			if err != nil {
				return 0, err
			}
			imm, err := resolveI(immExpr, ctx)
			if err != nil {
				return 0, err
			}
			return isa.EncodeI(desc.Opcode, desc.Funct3, rd, rs1, uint32(imm)), nil

		case "jalr":
			rd, err := reg(0)
			if err != nil {
				return 0, err
			}
			if len(ops) == 2 {
				immExpr, regTok, ok := memOperand(ops[1])
				if !ok {
					return 0, ErrBadOperand
				}
				rs1, err := parseReg(regTok)
				if err != nil {
					return 0, err
				}
				imm, err := resolveI(immExpr, ctx)
				if err != nil {
					return 0, err
				}
				return isa.EncodeI(desc.Opcode, desc.Funct3, rd, rs1, uint32(imm)), nil
			}
			rs1, err := reg(1)
			if err != nil {
				return 0, err
			}
			tok, err := need(ops, 2)
			if err != nil {
				return 0, err
			}
			imm, err := resolveI(tok, ctx)
			if err != nil {
				return 0, err
			}
			return isa.EncodeI(desc.Opcode, desc.Funct3, rd, rs1, uint32(imm)), nil

		case "fence":
			return isa.EncodeI(desc.Opcode, desc.Funct3, 0, 0, desc.Imm12), nil

		default: // addi, slti, sltiu, xori, ori, andi
			rd, err := reg(0)
			if err != nil {
				return 0, err
			}
			rs1, err := reg(1)
			if err != nil {
				return 0, err
			}
			tok, err := need(ops, 2)
			if err != nil {
				return 0, err
			}
			imm, err := resolveI(tok, ctx)
			if err != nil {
				return 0, err
			}
			return isa.EncodeI(desc.Opcode, desc.Funct3, rd, rs1, uint32(imm)), nil
		}

	case isa.FormatS:
		rs2, err := reg(0)
		if err != nil {
			return 0, err
		}
		tok, err := need(ops, 1)
		if err != nil {
			return 0, err
		}
		immExpr, regTok, ok := memOperand(tok)
		if !ok {
			return 0, ErrBadOperand
		}
		rs1, err := parseReg(regTok)
		if err != nil {
			return 0, err
		}
		imm, err := resolveI(immExpr, ctx)
		if err != nil {
			return 0, err
		}
		return isa.EncodeS(desc.Opcode, desc.Funct3, rs1, rs2, uint32(imm)), nil

	case isa.FormatB:
		rs1, err := reg(0)
		if err != nil {
			return 0, err
		}
		rs2, err := reg(1)
		if err != nil {
			return 0, err
		}
		tok, err := need(ops, 2)
		if err != nil {
			return 0, err
		}
		target, err := evalExpr(tok, ctx.names())
		if err != nil {
			return 0, err
		}
		offset := target - addr
		if offset&1 != 0 {
			return 0, ErrImmediateOutRange
		}
		return isa.EncodeB(desc.Opcode, desc.Funct3, rs1, rs2, offset), nil

	case isa.FormatU:
		rd, err := reg(0)
		if err != nil {
			return 0, err
		}
		tok, err := need(ops, 1)
		if err != nil {
			return 0, err
		}
		imm, err := resolveU(tok, addr, ctx)
		if err != nil {
			return 0, err
		}
		return isa.EncodeU(desc.Opcode, rd, imm), nil

	case isa.FormatJ:
		rd, err := reg(0)
		if err != nil {
			return 0, err
		}
		tok, err := need(ops, 1)
		if err != nil {
			return 0, err
		}
		target, err := evalExpr(tok, ctx.names())
		if err != nil {
			return 0, err
		}
		offset := target - addr
		if offset&1 != 0 {
			return 0, ErrImmediateOutRange
		}
		return isa.EncodeJ(desc.Opcode, rd, offset), nil

	case isa.FormatSystem:
		return encodeSystem(mnemonic, desc, ops, ctx)
	}
	return 0, ErrUnknownMnemonic
}

func encodeSystem(mnemonic string, desc isa.Desc, ops []string, ctx *evalCtx) (uint32, error) {
	switch mnemonic {
	case "ecall", "ebreak", "mret":
		return isa.EncodeSystem(desc.Funct3, 0, 0, desc.Imm12), nil
	}

	// csrrw/csrrs/csrrc rd, csr, rs1  |  csrrwi/csrrsi/csrrci rd, csr, uimm
	rdTok, err := need(ops, 0)
	if err != nil {
		return 0, err
	}
	rd, err := parseReg(rdTok)
	if err != nil {
		return 0, err
	}
	csrTok, err := need(ops, 1)
	if err != nil {
		return 0, err
	}
	csr, err := parseCSR(csrTok)
	if err != nil {
		return 0, err
	}
	srcTok, err := need(ops, 2)
	if err != nil {
		return 0, err
	}

	if strings.HasSuffix(mnemonic, "i") {
		v, err := evalExpr(srcTok, ctx.names())
		if err != nil {
			return 0, err
		}
		if v > 31 {
			return 0, ErrImmediateOutRange
		}
		return isa.EncodeSystem(desc.Funct3, rd, v, csr), nil
	}

	rs1, err := parseReg(srcTok)
	if err != nil {
		return 0, err
	}
	return isa.EncodeSystem(desc.Funct3, rd, rs1, csr), nil
}
