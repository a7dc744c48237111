package asm

// evalCtx carries everything needed to resolve an operand expression
// during pass 2: the final label table, the equates accumulated so
// far, and the running %pcrel_hi/%pcrel_lo pairing state.
type evalCtx struct {
	symbols map[string]uint32
	equates map[string]uint32

	// pcrelDiff maps an auipc instruction's address to the full
	// (unsplit) target-minus-pc difference computed when its
	// %pcrel_hi operand was resolved, so a later %pcrel_lo can
	// recover the matching low half.
	pcrelDiff map[uint32]uint32
	lastAuipc uint32
}

func (c *evalCtx) lookup(name string) (uint32, bool) {
	if v, ok := c.symbols[name]; ok {
		return v, true
	}
	if v, ok := c.equates[name]; ok {
		return v, true
	}
	return 0, false
}

// names returns a merged symbol table for expression evaluation:
// labels take precedence over equates of the same name.
func (c *evalCtx) names() map[string]uint32 {
	out := make(map[string]uint32, len(c.equates)+len(c.symbols))
	for k, v := range c.equates {
		out[k] = v
	}
	for k, v := range c.symbols {
		out[k] = v
	}
	return out
}
