package asm

import (
	"errors"
	"fmt"

	"github.com/rv32sim/rv32sim/translate"
)

var f = translate.From

// Error is one assembly-time diagnostic. The assembler never stops at
// the first Error; Assemble returns every one it collects.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

var (
	ErrUnknownMnemonic   = errors.New(f("unknown mnemonic"))
	ErrUnknownDirective  = errors.New(f("unknown directive"))
	ErrBadRegister       = errors.New(f("bad register name"))
	ErrBadOperand        = errors.New(f("bad operand"))
	ErrUndefinedSymbol   = errors.New(f("undefined symbol"))
	ErrDuplicateLabel    = errors.New(f("duplicate label"))
	ErrImmediateOutRange = errors.New(f("immediate out of range"))
	ErrMisalignedCounter = errors.New(f("location counter misaligned for directive"))
	ErrUnterminatedQuote = errors.New(f("unterminated string or character literal"))
	ErrBadEscape         = errors.New(f("bad escape sequence"))
	ErrParseExpression   = errors.New(f("cannot parse expression"))
	ErrMissingOperand    = errors.New(f("missing operand"))
)
