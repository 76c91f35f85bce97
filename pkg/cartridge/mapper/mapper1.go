package mapper

import "github.com/mizuho-t/famicore/pkg/logger"

// Mapper1 (MMC1) - serial-port mapper. CPU writes to $8000-$FFFF feed a
// 5-bit shift register; the fifth bit commits to one of four internal
// registers selected by address bits 13-14.
type Mapper1 struct {
	cartridge *CartridgeData

	// Serial port state
	shiftRegister uint8 // 5-bit shift register
	shiftCount    uint8 // Number of bits written

	// Internal registers
	control  uint8 // Control register ($8000-$9FFF)
	chrBank0 uint8 // CHR bank 0 register ($A000-$BFFF)
	chrBank1 uint8 // CHR bank 1 register ($C000-$DFFF)
	prgBank  uint8 // PRG bank register ($E000-$FFFF)

	// Decoded from control
	prgMode   uint8 // 0,1: 32KB; 2: fix first; 3: fix last
	chrMode   uint8 // 0: 8KB; 1: 4KB
	mirroring uint8 // 0: one-screen lower, 1: upper, 2: vertical, 3: horizontal
}

// NewMapper1 creates a new Mapper1 instance
func NewMapper1(data *CartridgeData) *Mapper1 {
	return &Mapper1{
		cartridge: data,
		control:   0x0C, // PRG mode 3 at power-up, last bank fixed
		prgMode:   3,
		chrMode:   0,
		mirroring: 0,
	}
}

// ReadPRG reads from PRG ROM/RAM through the current bank selection
func (m *Mapper1) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		addr -= 0x8000
		prgSize := len(m.cartridge.PRGROM)
		var offset int

		switch m.prgMode {
		case 0, 1: // 32KB mode, low bit of the bank number ignored
			bank := int(m.prgBank&0x0E) >> 1
			offset = bank*0x8000 + int(addr)
		case 2: // first bank fixed at $8000, switchable at $C000
			if addr < 0x4000 {
				offset = int(addr)
			} else {
				bank := int(m.prgBank & 0x0F)
				offset = bank*0x4000 + int(addr-0x4000)
			}
		case 3: // switchable at $8000, last bank fixed at $C000
			if addr < 0x4000 {
				bank := int(m.prgBank & 0x0F)
				offset = bank*0x4000 + int(addr)
			} else {
				lastBank := prgSize/0x4000 - 1
				offset = lastBank*0x4000 + int(addr-0x4000)
			}
		}

		if offset < prgSize {
			return m.cartridge.PRGROM[offset]
		}
		return 0
	}

	if addr >= 0x6000 && len(m.cartridge.PRGRAM) > 0 {
		// PRG RAM is enabled while bit 4 of the PRG bank register is clear
		if m.prgBank&0x10 == 0 {
			return m.cartridge.PRGRAM[int(addr-0x6000)%len(m.cartridge.PRGRAM)]
		}
	}
	return 0
}

// WritePRG handles mapper register writes via the serial port and PRG RAM
func (m *Mapper1) WritePRG(addr uint16, value uint8) {
	if addr >= 0x8000 {
		if value&0x80 != 0 {
			// Reset: clear the shift register and force PRG mode 3
			m.shiftRegister = 0
			m.shiftCount = 0
			m.writeRegister(0x8000, m.control|0x0C)
			return
		}

		// Bits arrive LSB first
		m.shiftRegister = (m.shiftRegister >> 1) | ((value & 1) << 4)
		m.shiftCount++

		if m.shiftCount == 5 {
			m.writeRegister(addr, m.shiftRegister)
			m.shiftRegister = 0
			m.shiftCount = 0
		}
		return
	}

	if addr >= 0x6000 && len(m.cartridge.PRGRAM) > 0 {
		if m.prgBank&0x10 == 0 {
			m.cartridge.PRGRAM[int(addr-0x6000)%len(m.cartridge.PRGRAM)] = value
		}
	}
}

// writeRegister commits a 5-bit value to the register selected by
// bits 13-14 of the target address
func (m *Mapper1) writeRegister(addr uint16, value uint8) {
	switch {
	case addr <= 0x9FFF: // Control
		m.control = value
		m.mirroring = value & 3
		m.prgMode = (value >> 2) & 3
		m.chrMode = (value >> 4) & 1
		logger.LogMapper("MMC1 control=$%02X (mirroring=%d prgMode=%d chrMode=%d)",
			value, m.mirroring, m.prgMode, m.chrMode)

	case addr <= 0xBFFF: // CHR bank 0
		m.chrBank0 = value

	case addr <= 0xDFFF: // CHR bank 1
		m.chrBank1 = value

	default: // PRG bank
		m.prgBank = value
	}
}

// ReadCHR reads from CHR ROM/RAM through the current bank selection
func (m *Mapper1) ReadCHR(addr uint16) uint8 {
	data := m.cartridge.CHRROM
	if len(data) == 0 {
		data = m.cartridge.CHRRAM
	}
	if len(data) == 0 {
		return 0
	}

	offset := m.chrOffset(addr)
	if offset < len(data) {
		return data[offset]
	}
	return 0
}

// WriteCHR writes to CHR RAM; CHR ROM writes are ignored
func (m *Mapper1) WriteCHR(addr uint16, value uint8) {
	if len(m.cartridge.CHRRAM) == 0 {
		return
	}
	offset := m.chrOffset(addr)
	if offset < len(m.cartridge.CHRRAM) {
		m.cartridge.CHRRAM[offset] = value
	}
}

func (m *Mapper1) chrOffset(addr uint16) int {
	if m.chrMode == 0 {
		// 8KB mode, low bit of the bank number ignored
		bank := int(m.chrBank0&0x1E) >> 1
		return bank*0x2000 + int(addr)
	}
	// 4KB mode
	if addr < 0x1000 {
		return int(m.chrBank0)*0x1000 + int(addr)
	}
	return int(m.chrBank1)*0x1000 + int(addr-0x1000)
}

// GetMirroringMode returns the mirroring bits of the control register
func (m *Mapper1) GetMirroringMode() uint8 {
	return m.mirroring
}
