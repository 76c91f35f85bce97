package cpu

// AddressingMode represents the addressing modes of the 6502
type AddressingMode int

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect
	AddrIndirectIndexed
)

// modeSize returns the instruction length in bytes for a mode
func modeSize(mode AddressingMode) int {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 1
	case AddrAbsolute, AddrAbsoluteX, AddrAbsoluteY, AddrIndirect:
		return 3
	default:
		return 2
	}
}

// resolveAddress consumes the operand bytes at PC and returns the
// effective address together with a page-crossed flag for the indexed
// modes. Index arithmetic follows the documented wrap rules: zero-page
// indexing wraps within $00-$FF, absolute indexing adds the index to the
// full 16-bit base modulo $10000, and the indirect JMP pointer reproduces
// the page-wrap bug when its low byte is $FF.
func (c *CPU) resolveAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 0, false

	case AddrImmediate:
		addr := c.PC
		c.PC++
		return addr, false

	case AddrZeroPage:
		addr := uint16(c.read(c.PC))
		c.PC++
		return addr, false

	case AddrZeroPageX:
		addr := uint16(c.read(c.PC) + c.X)
		c.PC++
		return addr, false

	case AddrZeroPageY:
		addr := uint16(c.read(c.PC) + c.Y)
		c.PC++
		return addr, false

	case AddrRelative:
		offset := int8(c.read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset)), false

	case AddrAbsolute:
		addr := c.read16pc()
		return addr, false

	case AddrAbsoluteX:
		base := c.read16pc()
		addr := base + uint16(c.X)
		return addr, pagesDiffer(base, addr)

	case AddrAbsoluteY:
		base := c.read16pc()
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)

	case AddrIndirect:
		ptr := c.read16pc()
		lo := c.read(ptr)
		hi := c.read(ptr&0xFF00 | uint16(uint8(ptr)+1))
		return uint16(hi)<<8 | uint16(lo), false

	case AddrIndexedIndirect: // ($nn,X)
		ptr := c.read(c.PC) + c.X
		c.PC++
		lo := c.read(uint16(ptr))
		hi := c.read(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case AddrIndirectIndexed: // ($nn),Y
		ptr := c.read(c.PC)
		c.PC++
		lo := c.read(uint16(ptr))
		hi := c.read(uint16(ptr + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	}

	return 0, false
}

// read16pc reads a 16-bit little-endian operand at PC, advancing PC
func (c *CPU) read16pc() uint16 {
	lo := uint16(c.read(c.PC))
	c.PC++
	hi := uint16(c.read(c.PC))
	c.PC++
	return hi<<8 | lo
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
