package asm

import "strings"

var directives = map[string]bool{
	".byte": true, ".half": true, ".word": true,
	".ascii": true, ".asciz": true, ".string": true,
	".zero": true, ".align": true, ".equ": true, ".globl": true,
}

// directiveWidth computes the byte width a directive will emit,
// during pass 1, using only the symbols/equates known so far.
func directiveWidth(name, operandsRaw string, loc uint32, ctx *evalCtx) (int, error) {
	ops := splitOperands(operandsRaw)
	switch name {
	case ".byte":
		return len(ops), nil
	case ".half":
		if loc%2 != 0 {
			return 0, ErrMisalignedCounter
		}
		return len(ops) * 2, nil
	case ".word":
		if loc%4 != 0 {
			return 0, ErrMisalignedCounter
		}
		return len(ops) * 4, nil
	case ".ascii", ".asciz", ".string":
		tok, err := need(ops, 0)
		if err != nil {
			return 0, err
		}
		s, err := unquoteString(tok)
		if err != nil {
			return 0, err
		}
		if name == ".ascii" {
			return len(s), nil
		}
		return len(s) + 1, nil
	case ".zero":
		tok, err := need(ops, 0)
		if err != nil {
			return 0, err
		}
		v, err := evalExpr(tok, ctx.names())
		if err != nil {
			return 0, err
		}
		return int(v), nil
	case ".align":
		tok, err := need(ops, 0)
		if err != nil {
			return 0, err
		}
		v, err := evalExpr(tok, ctx.names())
		if err != nil {
			return 0, err
		}
		align := uint32(1) << v
		rem := loc % align
		if rem == 0 {
			return 0, nil
		}
		return int(align - rem), nil
	case ".equ":
		symName, expr, ok := strings.Cut(operandsRaw, ",")
		if !ok {
			return 0, ErrBadOperand
		}
		v, err := evalExpr(strings.TrimSpace(expr), ctx.names())
		if err != nil {
			return 0, err
		}
		ctx.equates[strings.TrimSpace(symName)] = v
		return 0, nil
	case ".globl":
		return 0, nil
	}
	return 0, ErrUnknownDirective
}

// encodeDirective appends a directive's bytes to img for pass 2.
func encodeDirective(name, operandsRaw string, loc uint32, ctx *evalCtx, img *[]byte) error {
	ops := splitOperands(operandsRaw)
	switch name {
	case ".byte":
		for _, tok := range ops {
			v, err := evalByteExpr(tok, ctx)
			if err != nil {
				return err
			}
			*img = append(*img, byte(v))
		}
	case ".half":
		for _, tok := range ops {
			v, err := evalExpr(tok, ctx.names())
			if err != nil {
				return err
			}
			*img = append(*img, byte(v), byte(v>>8))
		}
	case ".word":
		for _, tok := range ops {
			v, err := evalExpr(tok, ctx.names())
			if err != nil {
				return err
			}
			*img = append(*img, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		}
	case ".ascii", ".asciz", ".string":
		tok, err := need(ops, 0)
		if err != nil {
			return err
		}
		s, err := unquoteString(tok)
		if err != nil {
			return err
		}
		*img = append(*img, []byte(s)...)
		if name != ".ascii" {
			*img = append(*img, 0)
		}
	case ".zero":
		tok, err := need(ops, 0)
		if err != nil {
			return err
		}
		v, err := evalExpr(tok, ctx.names())
		if err != nil {
			return err
		}
		*img = append(*img, make([]byte, v)...)
	case ".align":
		tok, err := need(ops, 0)
		if err != nil {
			return err
		}
		v, err := evalExpr(tok, ctx.names())
		if err != nil {
			return err
		}
		align := uint32(1) << v
		rem := loc % align
		if rem != 0 {
			*img = append(*img, make([]byte, align-rem)...)
		}
	case ".equ":
		symName, expr, ok := strings.Cut(operandsRaw, ",")
		if !ok {
			return ErrBadOperand
		}
		v, err := evalExpr(strings.TrimSpace(expr), ctx.names())
		if err != nil {
			return err
		}
		ctx.equates[strings.TrimSpace(symName)] = v
	case ".globl":
		// recorded nowhere; the core has no linker to export symbols to.
	default:
		return ErrUnknownDirective
	}
	return nil
}
