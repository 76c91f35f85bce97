package memory

import (
	"github.com/mizuho-t/famicore/pkg/logger"
)

// Memory implements the CPU-visible address map: work RAM and its mirrors,
// PPU register mirrors, APU and I/O registers, controller ports, OAM DMA,
// and cartridge space.
type Memory struct {
	// CPU work RAM (2KB, mirrored through $1FFF)
	RAM [2048]uint8

	// Test memory standing in for cartridge space when none is inserted
	HighMem [0xA000]uint8 // $6000-$FFFF

	// PPU interface
	PPU interface {
		ReadRegister(addr uint16) uint8
		WriteRegister(addr uint16, value uint8)
	}

	// APU interface
	APU interface {
		ReadRegister(addr uint16) uint8
		WriteRegister(addr uint16, value uint8)
	}

	// Cartridge interface
	Cartridge interface {
		ReadPRG(addr uint16) uint8
		WritePRG(addr uint16, value uint8)
	}

	// Controller ports at $4016/$4017
	Input interface {
		Read(port int) uint8
		Write(value uint8)
	}

	// Pending CPU stall from an OAM DMA, collected by the console loop
	dmaStall int
}

// New creates a new Memory instance
func New() *Memory {
	return &Memory{}
}

// SetCartridge sets the cartridge reference
func (m *Memory) SetCartridge(cart interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}) {
	m.Cartridge = cart
}

// SetPPU sets the PPU reference
func (m *Memory) SetPPU(ppu interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}) {
	m.PPU = ppu
}

// SetAPU sets the APU reference
func (m *Memory) SetAPU(apu interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}) {
	m.APU = apu
}

// SetInput sets the controller reference
func (m *Memory) SetInput(input interface {
	Read(port int) uint8
	Write(value uint8)
}) {
	m.Input = input
}

// Reset initializes work RAM to the power-up pattern
func (m *Memory) Reset() {
	for i := range m.RAM {
		m.RAM[i] = 0xFF
	}
	m.dmaStall = 0
}

// Read reads a byte from the given address
func (m *Memory) Read(addr uint16) uint8 {
	if addr < 0x2000 {
		// Work RAM, mirrored every $800 bytes
		return m.RAM[addr&0x7FF]
	}

	if addr >= 0x6000 {
		// Cartridge space
		if m.Cartridge != nil {
			return m.Cartridge.ReadPRG(addr)
		}
		return m.HighMem[addr-0x6000]
	}

	if addr < 0x4000 {
		// PPU registers, mirrored every 8 bytes
		if m.PPU != nil {
			return m.PPU.ReadRegister(0x2000 + (addr & 0x7))
		}
		return 0
	}

	switch {
	case addr == 0x4016:
		if m.Input != nil {
			return m.Input.Read(0)
		}
		return 0
	case addr == 0x4017:
		if m.Input != nil {
			return m.Input.Read(1)
		}
		return 0
	case addr < 0x4020:
		// APU and I/O registers
		if m.APU != nil {
			return m.APU.ReadRegister(addr)
		}
		return 0
	}

	// $4020-$5FFF: cartridge expansion area; open without a cartridge
	if m.Cartridge != nil {
		return m.Cartridge.ReadPRG(addr)
	}
	return 0
}

// Write writes a byte to the given address
func (m *Memory) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.RAM[addr&0x7FF] = value

	case addr < 0x4000:
		if m.PPU != nil {
			m.PPU.WriteRegister(0x2000+(addr&0x7), value)
		}

	case addr == 0x4014:
		m.performOAMDMA(value)

	case addr == 0x4016:
		if m.Input != nil {
			m.Input.Write(value)
		}

	case addr < 0x4020:
		if m.APU != nil {
			m.APU.WriteRegister(addr, value)
		}

	case addr >= 0x6000:
		if m.Cartridge != nil {
			m.Cartridge.WritePRG(addr, value)
		} else {
			m.HighMem[addr-0x6000] = value
		}

	default:
		// $4020-$5FFF: cartridge expansion area; ignored without a cartridge
		if m.Cartridge != nil {
			m.Cartridge.WritePRG(addr, value)
		} else {
			logger.LogDebug("write to unmapped address $%04X ignored", addr)
		}
	}
}

// Read16 reads a 16-bit little-endian word
func (m *Memory) Read16(addr uint16) uint16 {
	lo := uint16(m.Read(addr))
	hi := uint16(m.Read(addr + 1))
	return hi<<8 | lo
}

// performOAMDMA copies a 256-byte page into PPU OAM through $2004,
// resetting OAMADDR first. The CPU stall is surfaced via TakeDMAStall.
func (m *Memory) performOAMDMA(page uint8) {
	baseAddr := uint16(page) << 8

	if m.PPU != nil {
		m.PPU.WriteRegister(0x2003, 0)
		for i := 0; i < 256; i++ {
			m.PPU.WriteRegister(0x2004, m.Read(baseAddr+uint16(i)))
		}
	}

	m.dmaStall += 513
}

// TakeDMAStall returns and clears the CPU cycles consumed by a pending
// OAM DMA. The caller adds one extra cycle when the DMA started on an
// odd CPU cycle.
func (m *Memory) TakeDMAStall() int {
	stall := m.dmaStall
	m.dmaStall = 0
	return stall
}
