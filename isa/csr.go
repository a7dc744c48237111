package isa

// CSR addresses implemented by the interpreter. Anything outside this
// set faults with IllegalInstruction.
const (
	CsrMstatus  = 0x300
	CsrMscratch = 0x340
	CsrMepc     = 0x341
	CsrMcause   = 0x342
	CsrMtval    = 0x343
	CsrMtvec    = 0x305

	CsrCycle    = 0xc00
	CsrCycleh   = 0xc80
	CsrInstret  = 0xc02
	CsrInstreth = 0xc82
)

// CsrNames maps each CSR's canonical name to its address, used by the
// assembler to accept either the numeric address or the name.
var CsrNames = map[string]uint32{
	"mstatus":  CsrMstatus,
	"mscratch": CsrMscratch,
	"mepc":     CsrMepc,
	"mcause":   CsrMcause,
	"mtval":    CsrMtval,
	"mtvec":    CsrMtvec,
	"cycle":    CsrCycle,
	"cycleh":   CsrCycleh,
	"instret":  CsrInstret,
	"instreth": CsrInstreth,
}

// ReadOnlyCSR reports whether writes to addr are rejected (not
// silently ignored) per the counter CSRs' read-only status.
func ReadOnlyCSR(addr uint32) bool {
	switch addr {
	case CsrCycle, CsrCycleh, CsrInstret, CsrInstreth:
		return true
	}
	return false
}

// MachineOnlyCSR reports whether addr falls in the machine-mode-only
// 0x300-0x3FF window.
func MachineOnlyCSR(addr uint32) bool {
	return addr >= 0x300 && addr <= 0x3ff
}
