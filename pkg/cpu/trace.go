package cpu

import (
	"fmt"
	"strings"
)

// writeTrace emits one nestest-format line for the instruction about to
// execute: PC, raw bytes, disassembly, and register state before the
// instruction runs.
func (c *CPU) writeTrace() {
	op := opcodes[c.read(c.PC)]
	size := modeSize(op.Mode)

	raw := make([]uint8, size)
	for i := 0; i < size; i++ {
		raw[i] = c.read(c.PC + uint16(i))
	}

	var bytes strings.Builder
	for _, b := range raw {
		fmt.Fprintf(&bytes, "%02X ", b)
	}

	asm := op.Name.String() + " " + c.formatOperand(op.Mode, raw)

	fmt.Fprintf(c.trace, "%04X  %-9s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		c.PC, bytes.String(), asm, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
}

// formatOperand renders the operand field the way the canonical nestest
// log does, minus the memory-value annotations
func (c *CPU) formatOperand(mode AddressingMode, raw []uint8) string {
	var op8 uint8
	var op16 uint16
	if len(raw) > 1 {
		op8 = raw[1]
		op16 = uint16(raw[1])
	}
	if len(raw) > 2 {
		op16 |= uint16(raw[2]) << 8
	}

	switch mode {
	case AddrImmediate:
		return fmt.Sprintf("#$%02X", op8)
	case AddrZeroPage:
		return fmt.Sprintf("$%02X", op8)
	case AddrZeroPageX:
		return fmt.Sprintf("$%02X,X", op8)
	case AddrZeroPageY:
		return fmt.Sprintf("$%02X,Y", op8)
	case AddrRelative:
		target := c.PC + 2 + uint16(int16(int8(op8)))
		return fmt.Sprintf("$%04X", target)
	case AddrAbsolute:
		return fmt.Sprintf("$%04X", op16)
	case AddrAbsoluteX:
		return fmt.Sprintf("$%04X,X", op16)
	case AddrAbsoluteY:
		return fmt.Sprintf("$%04X,Y", op16)
	case AddrIndirect:
		return fmt.Sprintf("($%04X)", op16)
	case AddrIndexedIndirect:
		return fmt.Sprintf("($%02X,X)", op8)
	case AddrIndirectIndexed:
		return fmt.Sprintf("($%02X),Y", op8)
	case AddrAccumulator:
		return "A"
	default:
		return ""
	}
}
