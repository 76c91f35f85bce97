package mapper

import "github.com/mizuho-t/famicore/pkg/logger"

// Mapper0 (NROM) - fixed PRG and CHR, no bank switching
type Mapper0 struct {
	cartridge *CartridgeData
}

// NewMapper0 creates a new Mapper0 instance
func NewMapper0(data *CartridgeData) *Mapper0 {
	return &Mapper0{cartridge: data}
}

// ReadPRG reads from PRG ROM or PRG RAM
func (m *Mapper0) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		offset := int(addr - 0x8000)
		if len(m.cartridge.PRGROM) == 16384 {
			// 16KB ROM, $C000-$FFFF mirrors $8000-$BFFF
			offset %= 16384
		}
		if offset < len(m.cartridge.PRGROM) {
			return m.cartridge.PRGROM[offset]
		}
	} else if addr >= 0x6000 && len(m.cartridge.PRGRAM) > 0 {
		return m.cartridge.PRGRAM[int(addr-0x6000)%len(m.cartridge.PRGRAM)]
	}
	logger.LogMapper("NROM: unmapped PRG read $%04X", addr)
	return 0
}

// WritePRG writes to PRG RAM; ROM writes are ignored
func (m *Mapper0) WritePRG(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 && len(m.cartridge.PRGRAM) > 0 {
		m.cartridge.PRGRAM[int(addr-0x6000)%len(m.cartridge.PRGRAM)] = value
	}
}

// ReadCHR reads from CHR ROM/RAM
func (m *Mapper0) ReadCHR(addr uint16) uint8 {
	if len(m.cartridge.CHRROM) > 0 {
		if int(addr) < len(m.cartridge.CHRROM) {
			return m.cartridge.CHRROM[addr]
		}
		return 0
	}
	if len(m.cartridge.CHRRAM) > 0 && int(addr) < len(m.cartridge.CHRRAM) {
		return m.cartridge.CHRRAM[addr]
	}
	return 0
}

// WriteCHR writes to CHR RAM; CHR ROM writes are ignored
func (m *Mapper0) WriteCHR(addr uint16, value uint8) {
	if len(m.cartridge.CHRRAM) > 0 && int(addr) < len(m.cartridge.CHRRAM) {
		m.cartridge.CHRRAM[addr] = value
	}
}
