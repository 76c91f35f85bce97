package ppu

import (
	"github.com/mizuho-t/famicore/pkg/cartridge"
	"github.com/mizuho-t/famicore/pkg/logger"
)

// PPU represents the Picture Processing Unit
type PPU struct {
	// Registers
	PPUCTRL   uint8 // $2000
	PPUMASK   uint8 // $2001
	PPUSTATUS uint8 // $2002
	OAMADDR   uint8 // $2003

	// Internal registers (loopy v/t/x/w)
	v uint16 // Current VRAM address (15 bits)
	t uint16 // Temporary VRAM address (15 bits)
	x uint8  // Fine X scroll (3 bits)
	w uint8  // Write toggle

	// Open bus: the last value written to any PPU register, returned by
	// reads of the write-only registers
	openBus uint8

	// PPU read buffer for $2007 reads below the palette
	readBuffer uint8

	// Nametable RAM. Four 1KB tables; mirroring folds the address space
	// onto two of them (one for single-screen) unless the cartridge
	// provides four-screen VRAM.
	nameTable [4096]uint8

	// OAM (Object Attribute Memory)
	OAM [256]uint8

	// Palette
	PaletteManager *PaletteManager

	// Background pipeline latches and shifters
	ntByte         uint8
	atByte         uint8
	tileLo, tileHi uint8
	bgPatternLo    uint16
	bgPatternHi    uint16
	bgAttrLo       uint16
	bgAttrHi       uint16

	// Sprites selected for the scanline in progress
	scanSprites [8]scanSprite
	spriteCount int

	// Timing
	Cycle         int // 0-340
	Scanline      int // 0-261; 261 is the pre-render line
	Frame         uint64
	FrameComplete bool

	// NMI latch, sampled by the console between PPU ticks
	NMIRequested bool

	// Frame buffer (256x240, ARGB)
	FrameBuffer [256 * 240]uint32

	// Cartridge interface for pattern tables and mirroring
	Cartridge interface {
		ReadCHR(addr uint16) uint8
		WriteCHR(addr uint16, value uint8)
		GetMirroring() cartridge.MirroringMode
	}
}

// scanSprite is one OAM entry prepared for the current scanline
type scanSprite struct {
	index      int
	x          uint8
	attributes uint8
	patternLo  uint8
	patternHi  uint8
}

// PPUCTRL flags
const (
	PPUCTRLNameTable   = 0x03 // Base nametable address
	PPUCTRLIncrement   = 0x04 // VRAM address increment: 1 or 32
	PPUCTRLSpriteTable = 0x08 // Sprite pattern table address (8x8)
	PPUCTRLBGTable     = 0x10 // Background pattern table address
	PPUCTRLSpriteSize  = 0x20 // Sprite size: 8x8 or 8x16
	PPUCTRLMasterSlave = 0x40 // PPU master/slave select
	PPUCTRLNMIEnable   = 0x80 // Generate NMI at VBlank
)

// PPUMASK flags
const (
	PPUMASKGreyscale      = 0x01
	PPUMASKBGLeft         = 0x02 // Show background in leftmost 8 pixels
	PPUMASKSpriteLeft     = 0x04 // Show sprites in leftmost 8 pixels
	PPUMASKBGShow         = 0x08
	PPUMASKSpriteShow     = 0x10
	PPUMASKRedEmphasize   = 0x20
	PPUMASKGreenEmphasize = 0x40
	PPUMASKBlueEmphasize  = 0x80
)

// PPUSTATUS flags
const (
	PPUSTATUSOverflow   = 0x20 // Sprite overflow
	PPUSTATUSSprite0Hit = 0x40
	PPUSTATUSVBlank     = 0x80
)

// New creates a new PPU instance
func New() *PPU {
	return &PPU{
		PaletteManager: NewPaletteManager(),
	}
}

// Reset resets the PPU to initial state
func (p *PPU) Reset() {
	p.PPUCTRL = 0
	p.PPUMASK = 0
	p.PPUSTATUS = 0
	p.OAMADDR = 0
	p.v = 0
	p.t = 0
	p.x = 0
	p.w = 0
	p.openBus = 0
	p.readBuffer = 0
	p.Cycle = 0
	p.Scanline = 0
	p.Frame = 0
	p.FrameComplete = false
	p.NMIRequested = false
	p.spriteCount = 0

	for i := range p.FrameBuffer {
		p.FrameBuffer[i] = 0xFF000000
	}
}

// SetCartridge sets the cartridge reference
func (p *PPU) SetCartridge(cart interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	GetMirroring() cartridge.MirroringMode
}) {
	p.Cartridge = cart
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK&(PPUMASKBGShow|PPUMASKSpriteShow) != 0
}

// Step advances the PPU by one dot. The per-dot state machine is the
// source of truth for all timing-visible behavior.
func (p *PPU) Step() {
	visible := p.Scanline < 240
	prerender := p.Scanline == 261
	rendering := p.renderingEnabled()

	if (visible || prerender) && rendering {
		p.renderDot(visible, prerender)
	}

	if visible && p.Cycle >= 1 && p.Cycle <= 256 {
		p.renderPixel()
	}

	if prerender && p.Cycle == 1 {
		p.PPUSTATUS &^= PPUSTATUSVBlank | PPUSTATUSSprite0Hit | PPUSTATUSOverflow
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.PPUSTATUS |= PPUSTATUSVBlank
		if p.PPUCTRL&PPUCTRLNMIEnable != 0 {
			p.NMIRequested = true
		}
	}

	// The pre-render line is one dot shorter on odd frames while
	// background rendering is enabled
	if prerender && p.Cycle == 339 && p.Frame&1 == 1 && p.PPUMASK&PPUMASKBGShow != 0 {
		p.Cycle++
	}

	p.Cycle++
	if p.Cycle > 340 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
			p.Frame++
			p.FrameComplete = true
		}
	}
}

// ReadRegister reads from a PPU register (CPU $2000-$2007)
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002: // PPUSTATUS
		value := p.PPUSTATUS&0xE0 | p.openBus&0x1F
		p.PPUSTATUS &^= PPUSTATUSVBlank
		p.w = 0
		return value
	case 0x2004: // OAMDATA
		return p.OAM[p.OAMADDR]
	case 0x2007: // PPUDATA
		var value uint8
		if p.v&0x3FFF >= 0x3F00 {
			// Palette reads bypass the buffer; the buffer picks up the
			// nametable byte underneath
			value = p.readVRAM(p.v)
			p.readBuffer = p.readVRAM(p.v - 0x1000)
		} else {
			value = p.readBuffer
			p.readBuffer = p.readVRAM(p.v)
		}
		p.v += p.addressIncrement()
		return value
	}

	// Write-only registers read back the open bus
	return p.openBus
}

// WriteRegister writes to a PPU register (CPU $2000-$2007)
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	p.openBus = value

	switch addr {
	case 0x2000: // PPUCTRL
		wasEnabled := p.PPUCTRL&PPUCTRLNMIEnable != 0
		p.PPUCTRL = value
		p.t = (p.t & 0xF3FF) | (uint16(value)&0x03)<<10
		// Turning NMI on during VBlank raises the edge immediately
		if !wasEnabled && value&PPUCTRLNMIEnable != 0 && p.PPUSTATUS&PPUSTATUSVBlank != 0 {
			p.NMIRequested = true
		}
	case 0x2001: // PPUMASK
		p.PPUMASK = value
		p.PaletteManager.SetMask(value)
	case 0x2003: // OAMADDR
		p.OAMADDR = value
	case 0x2004: // OAMDATA
		p.OAM[p.OAMADDR] = value
		p.OAMADDR++
	case 0x2005: // PPUSCROLL
		if p.w == 0 {
			p.t = (p.t & 0xFFE0) | uint16(value)>>3
			p.x = value & 0x07
			p.w = 1
		} else {
			p.t = (p.t & 0x8FFF) | (uint16(value)&0x07)<<12
			p.t = (p.t & 0xFC1F) | (uint16(value)&0xF8)<<2
			p.w = 0
		}
	case 0x2006: // PPUADDR
		if p.w == 0 {
			p.t = (p.t & 0x80FF) | (uint16(value)&0x3F)<<8
			p.w = 1
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
			p.w = 0
		}
	case 0x2007: // PPUDATA
		p.writeVRAM(p.v, value)
		p.v += p.addressIncrement()
	}
}

func (p *PPU) addressIncrement() uint16 {
	if p.PPUCTRL&PPUCTRLIncrement != 0 {
		return 32
	}
	return 1
}

// readVRAM reads from PPU memory: pattern tables through the cartridge,
// nametables with mirroring, palette RAM
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF

	switch {
	case addr < 0x2000:
		if p.Cartridge != nil {
			return p.Cartridge.ReadCHR(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.nameTable[p.mirrorNameTableAddress(addr)]
	default:
		return p.PaletteManager.ReadPalette(uint8(addr & 0x1F))
	}
}

// writeVRAM writes to PPU memory
func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF

	switch {
	case addr < 0x2000:
		if p.Cartridge != nil {
			p.Cartridge.WriteCHR(addr, value)
		}
	case addr < 0x3F00:
		p.nameTable[p.mirrorNameTableAddress(addr)] = value
	default:
		p.PaletteManager.WritePalette(uint8(addr&0x1F), value)
	}
}

// nameTableLayouts maps each logical nametable to a physical one per
// mirroring mode
var nameTableLayouts = map[cartridge.MirroringMode][4]uint16{
	cartridge.MirroringHorizontal:    {0, 0, 1, 1},
	cartridge.MirroringVertical:      {0, 1, 0, 1},
	cartridge.MirroringFourScreen:    {0, 1, 2, 3},
	cartridge.MirroringSingleScreenA: {0, 0, 0, 0},
	cartridge.MirroringSingleScreenB: {1, 1, 1, 1},
}

// mirrorNameTableAddress folds a $2000-$3EFF address into the physical
// nametable RAM according to the cartridge's mirroring
func (p *PPU) mirrorNameTableAddress(addr uint16) uint16 {
	offset := (addr - 0x2000) & 0x0FFF
	table := offset / 0x400
	inner := offset & 0x3FF

	mode := cartridge.MirroringHorizontal
	if p.Cartridge != nil {
		mode = p.Cartridge.GetMirroring()
	}

	layout, ok := nameTableLayouts[mode]
	if !ok {
		logger.LogPPU("unknown mirroring mode %d, using horizontal", mode)
		layout = nameTableLayouts[cartridge.MirroringHorizontal]
	}

	return layout[table]*0x400 + inner
}

// Screen returns the current framebuffer as ARGB pixels
func (p *PPU) Screen() []uint32 {
	return p.FrameBuffer[:]
}

// GetFramebuffer returns the current framebuffer as RGBA bytes
func (p *PPU) GetFramebuffer() []uint8 {
	rgba := make([]uint8, 256*240*4)

	for i, pixel := range p.FrameBuffer {
		rgba[i*4+0] = uint8(pixel >> 16)
		rgba[i*4+1] = uint8(pixel >> 8)
		rgba[i*4+2] = uint8(pixel)
		rgba[i*4+3] = uint8(pixel >> 24)
	}

	return rgba
}
