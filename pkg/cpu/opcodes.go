package cpu

// Mnemonic identifies an instruction independent of its addressing mode
type Mnemonic uint8

const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	// Unofficial opcodes
	AHX
	ALR
	ANC
	ARR
	AXS
	DCP
	ISB
	KIL
	LAS
	LAX
	LXA
	RLA
	RRA
	SAX
	SHX
	SHY
	SLO
	SRE
	TAS
	XAA
)

var mnemonicNames = [...]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
	"AHX", "ALR", "ANC", "ARR", "AXS", "DCP", "ISB", "KIL", "LAS", "LAX",
	"LXA", "RLA", "RRA", "SAX", "SHX", "SHY", "SLO", "SRE", "TAS", "XAA",
}

// String returns the assembler mnemonic
func (m Mnemonic) String() string {
	if int(m) < len(mnemonicNames) {
		return mnemonicNames[m]
	}
	return "???"
}

// opcode describes one entry of the decode table: what to do, how to
// resolve the operand, the base cycle count, and the extra cycles charged
// when an indexed read crosses a page.
type opcode struct {
	Name       Mnemonic
	Mode       AddressingMode
	Cycles     int
	PageCycles int
}

// opcodes is the full 256-entry decode table, unofficial opcodes included.
// Instruction length follows from the addressing mode (modeSize).
var opcodes = [256]opcode{
	0x00: {BRK, AddrImplied, 7, 0},
	0x01: {ORA, AddrIndexedIndirect, 6, 0},
	0x02: {KIL, AddrImplied, 2, 0},
	0x03: {SLO, AddrIndexedIndirect, 8, 0},
	0x04: {NOP, AddrZeroPage, 3, 0},
	0x05: {ORA, AddrZeroPage, 3, 0},
	0x06: {ASL, AddrZeroPage, 5, 0},
	0x07: {SLO, AddrZeroPage, 5, 0},
	0x08: {PHP, AddrImplied, 3, 0},
	0x09: {ORA, AddrImmediate, 2, 0},
	0x0A: {ASL, AddrAccumulator, 2, 0},
	0x0B: {ANC, AddrImmediate, 2, 0},
	0x0C: {NOP, AddrAbsolute, 4, 0},
	0x0D: {ORA, AddrAbsolute, 4, 0},
	0x0E: {ASL, AddrAbsolute, 6, 0},
	0x0F: {SLO, AddrAbsolute, 6, 0},

	0x10: {BPL, AddrRelative, 2, 0},
	0x11: {ORA, AddrIndirectIndexed, 5, 1},
	0x12: {KIL, AddrImplied, 2, 0},
	0x13: {SLO, AddrIndirectIndexed, 8, 0},
	0x14: {NOP, AddrZeroPageX, 4, 0},
	0x15: {ORA, AddrZeroPageX, 4, 0},
	0x16: {ASL, AddrZeroPageX, 6, 0},
	0x17: {SLO, AddrZeroPageX, 6, 0},
	0x18: {CLC, AddrImplied, 2, 0},
	0x19: {ORA, AddrAbsoluteY, 4, 1},
	0x1A: {NOP, AddrImplied, 2, 0},
	0x1B: {SLO, AddrAbsoluteY, 7, 0},
	0x1C: {NOP, AddrAbsoluteX, 4, 1},
	0x1D: {ORA, AddrAbsoluteX, 4, 1},
	0x1E: {ASL, AddrAbsoluteX, 7, 0},
	0x1F: {SLO, AddrAbsoluteX, 7, 0},

	0x20: {JSR, AddrAbsolute, 6, 0},
	0x21: {AND, AddrIndexedIndirect, 6, 0},
	0x22: {KIL, AddrImplied, 2, 0},
	0x23: {RLA, AddrIndexedIndirect, 8, 0},
	0x24: {BIT, AddrZeroPage, 3, 0},
	0x25: {AND, AddrZeroPage, 3, 0},
	0x26: {ROL, AddrZeroPage, 5, 0},
	0x27: {RLA, AddrZeroPage, 5, 0},
	0x28: {PLP, AddrImplied, 4, 0},
	0x29: {AND, AddrImmediate, 2, 0},
	0x2A: {ROL, AddrAccumulator, 2, 0},
	0x2B: {ANC, AddrImmediate, 2, 0},
	0x2C: {BIT, AddrAbsolute, 4, 0},
	0x2D: {AND, AddrAbsolute, 4, 0},
	0x2E: {ROL, AddrAbsolute, 6, 0},
	0x2F: {RLA, AddrAbsolute, 6, 0},

	0x30: {BMI, AddrRelative, 2, 0},
	0x31: {AND, AddrIndirectIndexed, 5, 1},
	0x32: {KIL, AddrImplied, 2, 0},
	0x33: {RLA, AddrIndirectIndexed, 8, 0},
	0x34: {NOP, AddrZeroPageX, 4, 0},
	0x35: {AND, AddrZeroPageX, 4, 0},
	0x36: {ROL, AddrZeroPageX, 6, 0},
	0x37: {RLA, AddrZeroPageX, 6, 0},
	0x38: {SEC, AddrImplied, 2, 0},
	0x39: {AND, AddrAbsoluteY, 4, 1},
	0x3A: {NOP, AddrImplied, 2, 0},
	0x3B: {RLA, AddrAbsoluteY, 7, 0},
	0x3C: {NOP, AddrAbsoluteX, 4, 1},
	0x3D: {AND, AddrAbsoluteX, 4, 1},
	0x3E: {ROL, AddrAbsoluteX, 7, 0},
	0x3F: {RLA, AddrAbsoluteX, 7, 0},

	0x40: {RTI, AddrImplied, 6, 0},
	0x41: {EOR, AddrIndexedIndirect, 6, 0},
	0x42: {KIL, AddrImplied, 2, 0},
	0x43: {SRE, AddrIndexedIndirect, 8, 0},
	0x44: {NOP, AddrZeroPage, 3, 0},
	0x45: {EOR, AddrZeroPage, 3, 0},
	0x46: {LSR, AddrZeroPage, 5, 0},
	0x47: {SRE, AddrZeroPage, 5, 0},
	0x48: {PHA, AddrImplied, 3, 0},
	0x49: {EOR, AddrImmediate, 2, 0},
	0x4A: {LSR, AddrAccumulator, 2, 0},
	0x4B: {ALR, AddrImmediate, 2, 0},
	0x4C: {JMP, AddrAbsolute, 3, 0},
	0x4D: {EOR, AddrAbsolute, 4, 0},
	0x4E: {LSR, AddrAbsolute, 6, 0},
	0x4F: {SRE, AddrAbsolute, 6, 0},

	0x50: {BVC, AddrRelative, 2, 0},
	0x51: {EOR, AddrIndirectIndexed, 5, 1},
	0x52: {KIL, AddrImplied, 2, 0},
	0x53: {SRE, AddrIndirectIndexed, 8, 0},
	0x54: {NOP, AddrZeroPageX, 4, 0},
	0x55: {EOR, AddrZeroPageX, 4, 0},
	0x56: {LSR, AddrZeroPageX, 6, 0},
	0x57: {SRE, AddrZeroPageX, 6, 0},
	0x58: {CLI, AddrImplied, 2, 0},
	0x59: {EOR, AddrAbsoluteY, 4, 1},
	0x5A: {NOP, AddrImplied, 2, 0},
	0x5B: {SRE, AddrAbsoluteY, 7, 0},
	0x5C: {NOP, AddrAbsoluteX, 4, 1},
	0x5D: {EOR, AddrAbsoluteX, 4, 1},
	0x5E: {LSR, AddrAbsoluteX, 7, 0},
	0x5F: {SRE, AddrAbsoluteX, 7, 0},

	0x60: {RTS, AddrImplied, 6, 0},
	0x61: {ADC, AddrIndexedIndirect, 6, 0},
	0x62: {KIL, AddrImplied, 2, 0},
	0x63: {RRA, AddrIndexedIndirect, 8, 0},
	0x64: {NOP, AddrZeroPage, 3, 0},
	0x65: {ADC, AddrZeroPage, 3, 0},
	0x66: {ROR, AddrZeroPage, 5, 0},
	0x67: {RRA, AddrZeroPage, 5, 0},
	0x68: {PLA, AddrImplied, 4, 0},
	0x69: {ADC, AddrImmediate, 2, 0},
	0x6A: {ROR, AddrAccumulator, 2, 0},
	0x6B: {ARR, AddrImmediate, 2, 0},
	0x6C: {JMP, AddrIndirect, 5, 0},
	0x6D: {ADC, AddrAbsolute, 4, 0},
	0x6E: {ROR, AddrAbsolute, 6, 0},
	0x6F: {RRA, AddrAbsolute, 6, 0},

	0x70: {BVS, AddrRelative, 2, 0},
	0x71: {ADC, AddrIndirectIndexed, 5, 1},
	0x72: {KIL, AddrImplied, 2, 0},
	0x73: {RRA, AddrIndirectIndexed, 8, 0},
	0x74: {NOP, AddrZeroPageX, 4, 0},
	0x75: {ADC, AddrZeroPageX, 4, 0},
	0x76: {ROR, AddrZeroPageX, 6, 0},
	0x77: {RRA, AddrZeroPageX, 6, 0},
	0x78: {SEI, AddrImplied, 2, 0},
	0x79: {ADC, AddrAbsoluteY, 4, 1},
	0x7A: {NOP, AddrImplied, 2, 0},
	0x7B: {RRA, AddrAbsoluteY, 7, 0},
	0x7C: {NOP, AddrAbsoluteX, 4, 1},
	0x7D: {ADC, AddrAbsoluteX, 4, 1},
	0x7E: {ROR, AddrAbsoluteX, 7, 0},
	0x7F: {RRA, AddrAbsoluteX, 7, 0},

	0x80: {NOP, AddrImmediate, 2, 0},
	0x81: {STA, AddrIndexedIndirect, 6, 0},
	0x82: {NOP, AddrImmediate, 2, 0},
	0x83: {SAX, AddrIndexedIndirect, 6, 0},
	0x84: {STY, AddrZeroPage, 3, 0},
	0x85: {STA, AddrZeroPage, 3, 0},
	0x86: {STX, AddrZeroPage, 3, 0},
	0x87: {SAX, AddrZeroPage, 3, 0},
	0x88: {DEY, AddrImplied, 2, 0},
	0x89: {NOP, AddrImmediate, 2, 0},
	0x8A: {TXA, AddrImplied, 2, 0},
	0x8B: {XAA, AddrImmediate, 2, 0},
	0x8C: {STY, AddrAbsolute, 4, 0},
	0x8D: {STA, AddrAbsolute, 4, 0},
	0x8E: {STX, AddrAbsolute, 4, 0},
	0x8F: {SAX, AddrAbsolute, 4, 0},

	0x90: {BCC, AddrRelative, 2, 0},
	0x91: {STA, AddrIndirectIndexed, 6, 0},
	0x92: {KIL, AddrImplied, 2, 0},
	0x93: {AHX, AddrIndirectIndexed, 6, 0},
	0x94: {STY, AddrZeroPageX, 4, 0},
	0x95: {STA, AddrZeroPageX, 4, 0},
	0x96: {STX, AddrZeroPageY, 4, 0},
	0x97: {SAX, AddrZeroPageY, 4, 0},
	0x98: {TYA, AddrImplied, 2, 0},
	0x99: {STA, AddrAbsoluteY, 5, 0},
	0x9A: {TXS, AddrImplied, 2, 0},
	0x9B: {TAS, AddrAbsoluteY, 5, 0},
	0x9C: {SHY, AddrAbsoluteX, 5, 0},
	0x9D: {STA, AddrAbsoluteX, 5, 0},
	0x9E: {SHX, AddrAbsoluteY, 5, 0},
	0x9F: {AHX, AddrAbsoluteY, 5, 0},

	0xA0: {LDY, AddrImmediate, 2, 0},
	0xA1: {LDA, AddrIndexedIndirect, 6, 0},
	0xA2: {LDX, AddrImmediate, 2, 0},
	0xA3: {LAX, AddrIndexedIndirect, 6, 0},
	0xA4: {LDY, AddrZeroPage, 3, 0},
	0xA5: {LDA, AddrZeroPage, 3, 0},
	0xA6: {LDX, AddrZeroPage, 3, 0},
	0xA7: {LAX, AddrZeroPage, 3, 0},
	0xA8: {TAY, AddrImplied, 2, 0},
	0xA9: {LDA, AddrImmediate, 2, 0},
	0xAA: {TAX, AddrImplied, 2, 0},
	0xAB: {LXA, AddrImmediate, 2, 0},
	0xAC: {LDY, AddrAbsolute, 4, 0},
	0xAD: {LDA, AddrAbsolute, 4, 0},
	0xAE: {LDX, AddrAbsolute, 4, 0},
	0xAF: {LAX, AddrAbsolute, 4, 0},

	0xB0: {BCS, AddrRelative, 2, 0},
	0xB1: {LDA, AddrIndirectIndexed, 5, 1},
	0xB2: {KIL, AddrImplied, 2, 0},
	0xB3: {LAX, AddrIndirectIndexed, 5, 1},
	0xB4: {LDY, AddrZeroPageX, 4, 0},
	0xB5: {LDA, AddrZeroPageX, 4, 0},
	0xB6: {LDX, AddrZeroPageY, 4, 0},
	0xB7: {LAX, AddrZeroPageY, 4, 0},
	0xB8: {CLV, AddrImplied, 2, 0},
	0xB9: {LDA, AddrAbsoluteY, 4, 1},
	0xBA: {TSX, AddrImplied, 2, 0},
	0xBB: {LAS, AddrAbsoluteY, 4, 1},
	0xBC: {LDY, AddrAbsoluteX, 4, 1},
	0xBD: {LDA, AddrAbsoluteX, 4, 1},
	0xBE: {LDX, AddrAbsoluteY, 4, 1},
	0xBF: {LAX, AddrAbsoluteY, 4, 1},

	0xC0: {CPY, AddrImmediate, 2, 0},
	0xC1: {CMP, AddrIndexedIndirect, 6, 0},
	0xC2: {NOP, AddrImmediate, 2, 0},
	0xC3: {DCP, AddrIndexedIndirect, 8, 0},
	0xC4: {CPY, AddrZeroPage, 3, 0},
	0xC5: {CMP, AddrZeroPage, 3, 0},
	0xC6: {DEC, AddrZeroPage, 5, 0},
	0xC7: {DCP, AddrZeroPage, 5, 0},
	0xC8: {INY, AddrImplied, 2, 0},
	0xC9: {CMP, AddrImmediate, 2, 0},
	0xCA: {DEX, AddrImplied, 2, 0},
	0xCB: {AXS, AddrImmediate, 2, 0},
	0xCC: {CPY, AddrAbsolute, 4, 0},
	0xCD: {CMP, AddrAbsolute, 4, 0},
	0xCE: {DEC, AddrAbsolute, 6, 0},
	0xCF: {DCP, AddrAbsolute, 6, 0},

	0xD0: {BNE, AddrRelative, 2, 0},
	0xD1: {CMP, AddrIndirectIndexed, 5, 1},
	0xD2: {KIL, AddrImplied, 2, 0},
	0xD3: {DCP, AddrIndirectIndexed, 8, 0},
	0xD4: {NOP, AddrZeroPageX, 4, 0},
	0xD5: {CMP, AddrZeroPageX, 4, 0},
	0xD6: {DEC, AddrZeroPageX, 6, 0},
	0xD7: {DCP, AddrZeroPageX, 6, 0},
	0xD8: {CLD, AddrImplied, 2, 0},
	0xD9: {CMP, AddrAbsoluteY, 4, 1},
	0xDA: {NOP, AddrImplied, 2, 0},
	0xDB: {DCP, AddrAbsoluteY, 7, 0},
	0xDC: {NOP, AddrAbsoluteX, 4, 1},
	0xDD: {CMP, AddrAbsoluteX, 4, 1},
	0xDE: {DEC, AddrAbsoluteX, 7, 0},
	0xDF: {DCP, AddrAbsoluteX, 7, 0},

	0xE0: {CPX, AddrImmediate, 2, 0},
	0xE1: {SBC, AddrIndexedIndirect, 6, 0},
	0xE2: {NOP, AddrImmediate, 2, 0},
	0xE3: {ISB, AddrIndexedIndirect, 8, 0},
	0xE4: {CPX, AddrZeroPage, 3, 0},
	0xE5: {SBC, AddrZeroPage, 3, 0},
	0xE6: {INC, AddrZeroPage, 5, 0},
	0xE7: {ISB, AddrZeroPage, 5, 0},
	0xE8: {INX, AddrImplied, 2, 0},
	0xE9: {SBC, AddrImmediate, 2, 0},
	0xEA: {NOP, AddrImplied, 2, 0},
	0xEB: {SBC, AddrImmediate, 2, 0},
	0xEC: {CPX, AddrAbsolute, 4, 0},
	0xED: {SBC, AddrAbsolute, 4, 0},
	0xEE: {INC, AddrAbsolute, 6, 0},
	0xEF: {ISB, AddrAbsolute, 6, 0},

	0xF0: {BEQ, AddrRelative, 2, 0},
	0xF1: {SBC, AddrIndirectIndexed, 5, 1},
	0xF2: {KIL, AddrImplied, 2, 0},
	0xF3: {ISB, AddrIndirectIndexed, 8, 0},
	0xF4: {NOP, AddrZeroPageX, 4, 0},
	0xF5: {SBC, AddrZeroPageX, 4, 0},
	0xF6: {INC, AddrZeroPageX, 6, 0},
	0xF7: {ISB, AddrZeroPageX, 6, 0},
	0xF8: {SED, AddrImplied, 2, 0},
	0xF9: {SBC, AddrAbsoluteY, 4, 1},
	0xFA: {NOP, AddrImplied, 2, 0},
	0xFB: {ISB, AddrAbsoluteY, 7, 0},
	0xFC: {NOP, AddrAbsoluteX, 4, 1},
	0xFD: {SBC, AddrAbsoluteX, 4, 1},
	0xFE: {INC, AddrAbsoluteX, 7, 0},
	0xFF: {ISB, AddrAbsoluteX, 7, 0},
}
