package cpu

import (
	"io"

	"github.com/mizuho-t/famicore/pkg/logger"
	"github.com/mizuho-t/famicore/pkg/memory"
)

// Interrupt vectors
const (
	VectorNMI   = uint16(0xFFFA)
	VectorReset = uint16(0xFFFC)
	VectorIRQ   = uint16(0xFFFE)
)

// CPU represents the 6502 processor
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter
	P  uint8  // Status register

	// Memory interface
	Memory *memory.Memory

	// Cycle counting
	Cycles uint64

	// Interrupt lines
	NMI bool
	IRQ bool

	// Optional execution trace sink
	trace io.Writer
}

// Status flag bits
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // -
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// New creates a new CPU instance
func New(mem *memory.Memory) *CPU {
	return &CPU{
		Memory: mem,
		SP:     0xFD,
		P:      FlagUnused | FlagInterrupt,
	}
}

// Reset resets the CPU to its power-up state and loads PC from the
// reset vector
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt

	c.PC = c.read16(VectorReset)
	c.Cycles = 0
	c.NMI = false
	c.IRQ = false
}

// SetTrace directs a nestest-format execution trace to w. Pass nil to
// disable tracing.
func (c *CPU) SetTrace(w io.Writer) {
	c.trace = w
}

// Step services pending interrupts, then executes one instruction and
// returns the number of cycles it consumed. The NMI edge takes priority
// over IRQ; IRQ is inhibited while the I flag is set.
func (c *CPU) Step() int {
	if c.NMI {
		c.NMI = false
		c.interrupt(VectorNMI)
		c.Cycles += 7
		return 7
	}

	// The IRQ line stays asserted while the I flag masks it
	if c.IRQ && !c.getFlag(FlagInterrupt) {
		c.IRQ = false
		c.interrupt(VectorIRQ)
		c.Cycles += 7
		return 7
	}

	if c.trace != nil {
		c.writeTrace()
	}

	opcode := c.read(c.PC)
	c.PC++

	op := opcodes[opcode]
	addr, pageCrossed := c.resolveAddress(op.Mode)

	cycles := op.Cycles
	if pageCrossed && op.PageCycles > 0 {
		cycles += op.PageCycles
	}
	cycles += c.execute(op.Name, op.Mode, addr, opcode)

	c.Cycles += uint64(cycles)
	return cycles
}

// interrupt pushes PC and P (bit 5 set, Break clear) and vectors through
// the given address
func (c *CPU) interrupt(vector uint16) {
	c.push16(c.PC)
	c.push((c.P | FlagUnused) &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
}

// TriggerNMI latches a Non-Maskable Interrupt edge
func (c *CPU) TriggerNMI() {
	c.NMI = true
}

// TriggerIRQ asserts the IRQ line
func (c *CPU) TriggerIRQ() {
	c.IRQ = true
}

// Flag operations
func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// GetFlag returns the state of a flag (public method for testing)
func (c *CPU) GetFlag(flag uint8) bool {
	return c.getFlag(flag)
}

// setZN sets the Zero and Negative flags from a result
func (c *CPU) setZN(value uint8) {
	c.setFlag(FlagZero, value == 0)
	c.setFlag(FlagNegative, value&0x80 != 0)
}

// Memory operations
func (c *CPU) read(addr uint16) uint8 {
	return c.Memory.Read(addr)
}

func (c *CPU) write(addr uint16, value uint8) {
	c.Memory.Write(addr, value)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// Stack operations. The stack lives in page $0100 and the pointer wraps
// within it.
func (c *CPU) push(value uint8) {
	c.write(0x100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// unknownOpcode implements the robustness policy for opcodes outside the
// implemented set: log, skip the operand bytes, keep running.
func (c *CPU) unknownOpcode(opcode uint8, mode AddressingMode) {
	logger.LogError("unknown opcode $%02X at PC=$%04X, skipping", opcode, c.PC-uint16(modeSize(mode)))
}
