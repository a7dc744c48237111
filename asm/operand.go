package asm

import (
	"strings"

	"github.com/rv32sim/rv32sim/isa"
)

func parseReg(tok string) (uint32, error) {
	n, ok := isa.RegNumbers[strings.ToLower(strings.TrimSpace(tok))]
	if !ok {
		return 0, ErrBadRegister
	}
	return n, nil
}

// parseCSR accepts either a CSR name or a raw numeric address.
func parseCSR(tok string) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if v, ok := isa.CsrNames[strings.ToLower(tok)]; ok {
		return v, nil
	}
	if v, ok := parseInt(tok); ok {
		return uint32(v), nil
	}
	return 0, ErrBadOperand
}

// memOperand splits a load/store offset operand of the form
// "imm(reg)" into its immediate expression text and base register.
func memOperand(tok string) (immExpr, reg string, ok bool) {
	tok = strings.TrimSpace(tok)
	open := strings.LastIndexByte(tok, '(')
	if open < 0 || tok[len(tok)-1] != ')' {
		return "", "", false
	}
	return strings.TrimSpace(tok[:open]), strings.TrimSpace(tok[open+1 : len(tok)-1]), true
}

// percentForm recognizes a `%kind(expr)` operand and returns its kind
// and inner expression text.
func percentForm(tok string) (kind, inner string, ok bool) {
	tok = strings.TrimSpace(tok)
	for _, k := range []string{"%hi(", "%lo(", "%pcrel_hi(", "%pcrel_lo("} {
		if strings.HasPrefix(tok, k) && strings.HasSuffix(tok, ")") {
			return k[1 : len(k)-1], tok[len(k) : len(tok)-1], true
		}
	}
	return "", "", false
}

// resolveU resolves a U-type immediate operand (lui/auipc): either a
// plain constant expression (the 20-bit field value) or %hi(expr) /
// %pcrel_hi(label).
func resolveU(tok string, pc uint32, ctx *evalCtx) (uint32, error) {
	if kind, inner, ok := percentForm(tok); ok {
		switch kind {
		case "hi":
			v, err := evalExpr(inner, ctx.names())
			if err != nil {
				return 0, err
			}
			hi, _ := hiLo(v)
			return (hi >> 12) & 0xfffff, nil
		case "pcrel_hi":
			target, err := ctx.resolveSymbol(inner)
			if err != nil {
				return 0, err
			}
			diff := target - pc
			hi, _ := hiLo(diff)
			if ctx.pcrelDiff == nil {
				ctx.pcrelDiff = map[uint32]uint32{}
			}
			ctx.pcrelDiff[pc] = diff
			ctx.lastAuipc = pc
			return (hi >> 12) & 0xfffff, nil
		default:
			return 0, ErrBadOperand
		}
	}
	v, err := evalExpr(tok, ctx.names())
	if err != nil {
		return 0, err
	}
	return v & 0xfffff, nil
}

// resolveI resolves a 12-bit signed I-type immediate operand,
// supporting %lo(expr) / %pcrel_lo(label|.) in addition to plain
// constant expressions.
func resolveI(tok string, ctx *evalCtx) (int32, error) {
	if kind, inner, ok := percentForm(tok); ok {
		switch kind {
		case "lo":
			v, err := evalExpr(inner, ctx.names())
			if err != nil {
				return 0, err
			}
			_, lo := hiLo(v)
			return lo, nil
		case "pcrel_lo":
			var anchor uint32
			if inner == "." {
				anchor = ctx.lastAuipc
			} else {
				a, err := ctx.resolveSymbol(inner)
				if err != nil {
					return 0, err
				}
				anchor = a
			}
			diff, ok := ctx.pcrelDiff[anchor]
			if !ok {
				return 0, ErrBadOperand
			}
			_, lo := hiLo(diff)
			return lo, nil
		default:
			return 0, ErrBadOperand
		}
	}
	v, err := evalExpr(tok, ctx.names())
	if err != nil {
		return 0, err
	}
	if int32(v) < -2048 || int32(v) > 2047 {
		return 0, ErrImmediateOutRange
	}
	return int32(v), nil
}

func (c *evalCtx) resolveSymbol(name string) (uint32, error) {
	if v, ok := c.lookup(name); ok {
		return v, nil
	}
	return 0, ErrUndefinedSymbol
}
