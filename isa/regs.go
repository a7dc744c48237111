package isa

// RegNames gives the disassembler the ABI name for each of the 32
// integer registers.
var RegNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegNumbers maps every accepted spelling (ABI name or x0..x31) to its
// register number, for the assembler's operand parser.
var RegNumbers = buildRegNumbers()

func buildRegNumbers() map[string]uint32 {
	m := make(map[string]uint32, 64)
	for i := range 32 {
		m[RegNames[i]] = uint32(i)
	}
	for i := range 32 {
		m["x"+itoa(i)] = uint32(i)
	}
	// fp is a common alias for s0.
	m["fp"] = 8
	return m
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
