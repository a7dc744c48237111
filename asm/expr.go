package asm

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalExpr evaluates a constant-expression operand (as used by .equ,
// .word, and other directive arguments) using a throwaway starlark
// interpreter as the expression grammar: `+ - * / << >> & | ^` and
// parens, over integer literals and the supplied symbol table.
//
// starlark already has correct operator precedence, parens, and
// arbitrary-precision integers, so it stands in for a hand-rolled
// expression parser: predeclare the known symbols as ints, exec
// "rc = <expr>", and read back the rc binding.
func evalExpr(expr string, symbols map[string]uint32) (uint32, error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, val := range symbols {
		pred[name] = starlark.MakeInt(int(val))
	}

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return 0, errors.Join(ErrParseExpression, err)
	}
	rc, ok := dict["rc"]
	if !ok {
		return 0, ErrParseExpression
	}
	n, ok := rc.(starlark.Int)
	if !ok {
		return 0, ErrParseExpression
	}
	v, ok := n.Int64()
	if !ok {
		return 0, ErrParseExpression
	}
	return uint32(v), nil
}

// hiLo splits a 32-bit value into the %hi/%lo pair such that
// lui(hi)+addi(lo, sign-extended) reconstructs the value.
func hiLo(v uint32) (hi uint32, lo int32) {
	lo12 := v & 0xfff
	if lo12 >= 0x800 {
		// lo's top bit is set: %lo will sign-extend to a negative
		// value, so %hi must absorb the rounding by adding 1.
		lo = int32(lo12) - 0x1000
		hi = (v + 0x1000) & 0xfffff000
	} else {
		lo = int32(lo12)
		hi = v & 0xfffff000
	}
	return hi, lo
}
