package cartridge

import (
	"fmt"
	"io"
	"os"

	"github.com/mizuho-t/famicore/pkg/cartridge/mapper"
	"github.com/mizuho-t/famicore/pkg/logger"
)

// Cartridge represents a NES cartridge
type Cartridge struct {
	// ROM data
	PRGROM []uint8 // Program ROM
	CHRROM []uint8 // Character ROM

	// RAM data
	PRGRAM []uint8 // Program RAM (SRAM)
	CHRRAM []uint8 // Character RAM

	// Header information
	Header iNESHeader

	// Mapper
	Mapper mapper.Mapper

	// Header mirroring; mappers may override dynamically
	Mirroring MirroringMode
}

// iNESHeader represents the iNES file header
type iNESHeader struct {
	Magic      [4]uint8 // "NES\x1A"
	PRGROMSize uint8    // Size of PRG ROM in 16KB units
	CHRROMSize uint8    // Size of CHR ROM in 8KB units
	Flags6     uint8    // Mapper low nibble, mirroring, battery, trainer
	Flags7     uint8    // Mapper high nibble
	PRGRAMSize uint8    // Size of PRG RAM in 8KB units (0 infers 1)
	Flags9     uint8    // TV system (rarely used)
	Flags10    uint8    // TV system, PRG-RAM presence (unofficial)
	Padding    [5]uint8 // Unused padding
}

// MapperNumber assembles the mapper number from the header flag nibbles
func (h *iNESHeader) MapperNumber() uint8 {
	return (h.Flags6 >> 4) | (h.Flags7 & 0xF0)
}

// MirroringMode represents the nametable mirroring mode
type MirroringMode int

const (
	MirroringHorizontal MirroringMode = iota
	MirroringVertical
	MirroringFourScreen
	MirroringSingleScreenA
	MirroringSingleScreenB
)

const chrRAMSize = 8192

// LoadFromFile loads a cartridge from an iNES file on disk
func LoadFromFile(path string) (*Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads a cartridge from an iNES stream
func LoadFromReader(reader io.Reader) (*Cartridge, error) {
	cart := &Cartridge{}

	if err := cart.readHeader(reader); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(cart.Header.Magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("invalid iNES magic number")
	}

	// Skip trainer if present
	if cart.Header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(reader, trainer); err != nil {
			return nil, fmt.Errorf("failed to read trainer: %w", err)
		}
	}

	// Read PRG ROM
	prgSize := int(cart.Header.PRGROMSize) * 16384
	cart.PRGROM = make([]uint8, prgSize)
	if _, err := io.ReadFull(reader, cart.PRGROM); err != nil {
		return nil, fmt.Errorf("failed to read PRG ROM: %w", err)
	}

	// Read CHR ROM; a count of zero means the board carries CHR RAM
	chrSize := int(cart.Header.CHRROMSize) * 8192
	if chrSize > 0 {
		cart.CHRROM = make([]uint8, chrSize)
		if _, err := io.ReadFull(reader, cart.CHRROM); err != nil {
			return nil, fmt.Errorf("failed to read CHR ROM: %w", err)
		}
	} else {
		cart.CHRRAM = make([]uint8, chrRAMSize)
	}

	// PRG RAM, byte 8; zero infers one 8KB bank
	prgRAMBanks := int(cart.Header.PRGRAMSize)
	if prgRAMBanks == 0 {
		prgRAMBanks = 1
	}
	cart.PRGRAM = make([]uint8, prgRAMBanks*8192)

	// Determine mirroring
	if cart.Header.Flags6&0x08 != 0 {
		cart.Mirroring = MirroringFourScreen
	} else if cart.Header.Flags6&0x01 != 0 {
		cart.Mirroring = MirroringVertical
	} else {
		cart.Mirroring = MirroringHorizontal
	}

	mapperData := &mapper.CartridgeData{
		PRGROM: cart.PRGROM,
		CHRROM: cart.CHRROM,
		PRGRAM: cart.PRGRAM,
		CHRRAM: cart.CHRRAM,
	}

	var err error
	cart.Mapper, err = mapper.NewMapper(cart.Header.MapperNumber(), mapperData)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapper: %w", err)
	}

	logger.LogInfo("Cartridge: mapper %d, PRG %dKB, CHR %dKB, mirroring %d",
		cart.Header.MapperNumber(), prgSize/1024, chrSize/1024, cart.Mirroring)

	return cart, nil
}

// readHeader reads the 16-byte iNES header
func (c *Cartridge) readHeader(reader io.Reader) error {
	headerBytes := make([]uint8, 16)
	if _, err := io.ReadFull(reader, headerBytes); err != nil {
		return err
	}

	copy(c.Header.Magic[:], headerBytes[0:4])
	c.Header.PRGROMSize = headerBytes[4]
	c.Header.CHRROMSize = headerBytes[5]
	c.Header.Flags6 = headerBytes[6]
	c.Header.Flags7 = headerBytes[7]
	c.Header.PRGRAMSize = headerBytes[8]
	c.Header.Flags9 = headerBytes[9]
	c.Header.Flags10 = headerBytes[10]
	copy(c.Header.Padding[:], headerBytes[11:16])

	return nil
}

// ReadPRG reads from CPU-visible cartridge space
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadPRG(addr)
	}
	return 0
}

// WritePRG writes to CPU-visible cartridge space
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WritePRG(addr, value)
	}
}

// ReadCHR reads from the pattern-table space
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadCHR(addr)
	}
	return 0
}

// WriteCHR writes to the pattern-table space
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WriteCHR(addr, value)
	}
}

// GetMirroring returns the current mirroring mode. Mappers with dynamic
// mirroring (MMC1) take precedence over the header bits.
func (c *Cartridge) GetMirroring() MirroringMode {
	if c.Mirroring == MirroringFourScreen {
		return MirroringFourScreen
	}

	if m, ok := c.Mapper.(interface{ GetMirroringMode() uint8 }); ok {
		switch m.GetMirroringMode() {
		case 0:
			return MirroringSingleScreenA
		case 1:
			return MirroringSingleScreenB
		case 2:
			return MirroringVertical
		case 3:
			return MirroringHorizontal
		}
	}

	return c.Mirroring
}
