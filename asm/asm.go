// Package asm implements the two-pass RV32I/Zicsr assembler: lexing,
// symbol resolution, directive processing, pseudo-instruction
// expansion, and bit-exact instruction encoding. Assemble never stops
// at the first problem; it returns either a complete Output or the
// full list of diagnostics found across both passes.
package asm

import (
	"iter"
	"log"
	"sort"
	"strings"

	"github.com/rv32sim/rv32sim/internal"
	"github.com/rv32sim/rv32sim/isa"
)

// Output is the product of a successful Assemble call.
type Output struct {
	Image   []byte
	Symbols map[string]uint32
	LineMap map[uint32]int // instruction address -> 1-based source line
	Dump    string
}

// Assembler holds per-run equate state so callers can inspect the
// symbols a source file defined with .equ after assembling it.
type Assembler struct {
	Verbose bool // if set, logs each source line as pass 1 walks it

	equates map[string]uint32
}

// NewAssembler returns an Assembler ready for one or more Assemble calls.
func NewAssembler() *Assembler {
	return &Assembler{equates: map[string]uint32{}}
}

// Defines iterates every .equ-defined symbol from the most recent
// Assemble call, name to value.
//
// It returns an iter.Seq2 rather than a map so a caller that only
// wants to print or search the defines doesn't force an allocation
// and copy of the whole table first.
func (a *Assembler) Defines() iter.Seq2[string, uint32] {
	return internal.IterSeq2Concat(mapSeq(a.equates))
}

func mapSeq(m map[string]uint32) iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Assemble is the package-level convenience entry point: build a
// throwaway Assembler and assemble src once.
func Assemble(src string, origin uint32) (*Output, []Error) {
	return NewAssembler().Assemble(src, origin)
}

type item struct {
	lineNo      int
	addr        uint32
	width       int
	op          string
	operandsRaw string
	isDir       bool
	pass1Err    error
}

// Assemble runs both passes over src and returns either the completed
// image or the full set of diagnostics collected across both passes.
func (a *Assembler) Assemble(src string, origin uint32) (*Output, []Error) {
	lines := splitLines(src)
	symbols := map[string]uint32{}
	equates1 := map[string]uint32{}
	var errs []Error
	var items []item

	loc := origin
	ctx1 := &evalCtx{symbols: symbols, equates: equates1}
	for _, rl := range lines {
		if a.Verbose {
			log.Printf("asm: %d: %s %s", rl.lineNo, rl.op, rl.operands)
		}
		for _, lbl := range rl.labels {
			if _, dup := symbols[lbl]; dup {
				errs = append(errs, Error{rl.lineNo, f("%v: %q", ErrDuplicateLabel, lbl)})
				continue
			}
			symbols[lbl] = loc
		}
		if rl.op == "" {
			continue
		}

		isDir := strings.HasPrefix(rl.op, ".")
		var width int
		var p1err error

		switch {
		case isDir:
			width, p1err = directiveWidth(rl.op, rl.operands, loc, ctx1)
		case rl.op == "li":
			width = liWidth(rl.operands, ctx1)
		case pseudoFixedWidth[rl.op] != 0:
			width = pseudoFixedWidth[rl.op]
		default:
			if _, ok := isa.Table[rl.op]; ok {
				width = 4
			} else {
				p1err = ErrUnknownMnemonic
				width = 4
			}
		}

		if p1err != nil {
			errs = append(errs, Error{rl.lineNo, p1err.Error()})
		}
		items = append(items, item{
			lineNo: rl.lineNo, addr: loc, width: width,
			op: rl.op, operandsRaw: rl.operands, isDir: isDir, pass1Err: p1err,
		})
		loc += uint32(width)
	}

	img := make([]byte, 0, loc-origin)
	lineMap := map[uint32]int{}
	words := map[uint32]uint32{}
	var instrAddrs []uint32
	ctx2 := &evalCtx{symbols: symbols, equates: map[string]uint32{}}

	pad := func(n int) {
		if n > 0 {
			img = append(img, make([]byte, n)...)
		}
	}

	for _, it := range items {
		if it.pass1Err != nil {
			pad(it.width)
			continue
		}

		if it.isDir {
			before := len(img)
			if err := encodeDirective(it.op, it.operandsRaw, it.addr, ctx2, &img); err != nil {
				errs = append(errs, Error{it.lineNo, err.Error()})
				pad(it.width - (len(img) - before))
			}
			continue
		}

		var encWords []uint32
		var err error
		if isPseudo(it.op) {
			encWords, err = expandPseudo(it.op, it.operandsRaw, it.addr, ctx2)
		} else {
			var w uint32
			w, err = encodeReal(it.op, it.operandsRaw, it.addr, ctx2)
			if err == nil {
				encWords = []uint32{w}
			}
		}
		if err != nil {
			errs = append(errs, Error{it.lineNo, err.Error()})
			pad(it.width)
			continue
		}

		addr := it.addr
		for _, w := range encWords {
			img = append(img, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
			lineMap[addr] = it.lineNo
			words[addr] = w
			instrAddrs = append(instrAddrs, addr)
			addr += 4
		}
		pad(it.width - len(encWords)*4)
	}

	if len(errs) > 0 {
		sortErrors(errs)
		return nil, errs
	}

	a.equates = ctx2.equates
	sort.Slice(instrAddrs, func(i, j int) bool { return instrAddrs[i] < instrAddrs[j] })

	return &Output{
		Image:   img,
		Symbols: symbols,
		LineMap: lineMap,
		Dump:    dumpListing(instrAddrs, words),
	}, nil
}

// sortErrors puts diagnostics in source order. Pass 1 and pass 2 each
// append errors as they're found, not in line order, and a caller
// reading a diagnostic list top to bottom expects it to follow the
// source file it describes.
func sortErrors(errs []Error) {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Line < errs[j].Line })
}
