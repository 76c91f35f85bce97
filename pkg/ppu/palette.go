package ppu

import (
	"fmt"
	"os"

	"github.com/mizuho-t/famicore/pkg/logger"
)

// NES master palette - 64 colors total
var builtinPalette = [64][3]uint8{
	// 0x00-0x0F
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96},
	{0xA1, 0x00, 0x5E}, {0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00},
	{0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00}, {0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E},
	{0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},

	// 0x10-0x1F
	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA},
	{0xEB, 0x2F, 0xB5}, {0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00},
	{0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00}, {0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55},
	{0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},

	// 0x20-0x2F
	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF},
	{0xFF, 0x45, 0xF3}, {0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12},
	{0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E}, {0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4},
	{0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},

	// 0x30-0x3F
	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB},
	{0xFF, 0xA8, 0xF9}, {0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6},
	{0xFF, 0xF7, 0x9C}, {0xD7, 0xFF, 0xB3}, {0xC6, 0xFF, 0xDE}, {0xC4, 0xFF, 0xF6},
	{0xC4, 0xF0, 0xFF}, {0xCC, 0xCC, 0xCC}, {0x3C, 0x3C, 0x3C}, {0x3C, 0x3C, 0x3C},
}

// PaletteManager holds the 32 bytes of palette RAM and the 64-entry
// master palette used to turn 6-bit color numbers into ARGB
type PaletteManager struct {
	// Palette RAM (32 bytes)
	// $00-$0F: background palettes, $10-$1F: sprite palettes
	// $10/$14/$18/$1C mirror $00/$04/$08/$0C
	PaletteRAM [32]uint8

	// Master palette, built-in or loaded from a 192-byte file
	master [64][3]uint8

	// Emphasis bits from PPUMASK (bits 5-7)
	Emphasis uint8

	// Greyscale bit from PPUMASK
	Greyscale bool
}

// NewPaletteManager creates a palette manager with the built-in master
// palette
func NewPaletteManager() *PaletteManager {
	pm := &PaletteManager{master: builtinPalette}
	pm.PaletteRAM[0] = 0x0F
	return pm
}

// LoadPaletteFile replaces the master palette with a 64x3-byte RGB file.
// On any error the built-in palette remains in effect.
func (pm *PaletteManager) LoadPaletteFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read palette file: %w", err)
	}
	if len(data) != 192 {
		return fmt.Errorf("palette file must be 192 bytes, got %d", len(data))
	}

	for i := 0; i < 64; i++ {
		pm.master[i] = [3]uint8{data[i*3], data[i*3+1], data[i*3+2]}
	}
	logger.LogInfo("loaded palette from %s", path)
	return nil
}

// mirrorPaletteAddress applies the backdrop mirror pairs
func mirrorPaletteAddress(addr uint8) uint8 {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr -= 0x10
	}
	return addr
}

// ReadPalette reads a palette RAM entry with mirroring
func (pm *PaletteManager) ReadPalette(addr uint8) uint8 {
	return pm.PaletteRAM[mirrorPaletteAddress(addr)]
}

// WritePalette writes a palette RAM entry with mirroring; entries hold
// six bits
func (pm *PaletteManager) WritePalette(addr uint8, value uint8) {
	pm.PaletteRAM[mirrorPaletteAddress(addr)] = value & 0x3F
}

// GetBackdropColor returns the universal background color at $3F00
func (pm *PaletteManager) GetBackdropColor() uint32 {
	return pm.colorARGB(pm.ReadPalette(0))
}

// GetBackgroundColor returns the color of a background palette entry
func (pm *PaletteManager) GetBackgroundColor(palette uint8, colorIndex uint8) uint32 {
	if colorIndex == 0 {
		return pm.GetBackdropColor()
	}
	return pm.colorARGB(pm.ReadPalette(palette*4 + colorIndex))
}

// GetSpriteColor returns the color of a sprite palette entry
func (pm *PaletteManager) GetSpriteColor(palette uint8, colorIndex uint8) uint32 {
	if colorIndex == 0 {
		return pm.GetBackdropColor()
	}
	return pm.colorARGB(pm.ReadPalette(0x10 + palette*4 + colorIndex))
}

// colorARGB converts a 6-bit color number to 32-bit ARGB, applying the
// greyscale and emphasis bits of PPUMASK
func (pm *PaletteManager) colorARGB(colorIndex uint8) uint32 {
	colorIndex &= 0x3F
	if pm.Greyscale {
		colorIndex &= 0x30
	}

	rgb := pm.master[colorIndex]
	r, g, b := rgb[0], rgb[1], rgb[2]

	if pm.Emphasis != 0 {
		r, g, b = pm.applyEmphasis(r, g, b)
	}

	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// applyEmphasis attenuates the channels that are not emphasized
func (pm *PaletteManager) applyEmphasis(r, g, b uint8) (uint8, uint8, uint8) {
	if pm.Emphasis&0x20 == 0 {
		r = uint8(float32(r) * 0.75)
	}
	if pm.Emphasis&0x40 == 0 {
		g = uint8(float32(g) * 0.75)
	}
	if pm.Emphasis&0x80 == 0 {
		b = uint8(float32(b) * 0.75)
	}
	return r, g, b
}

// SetMask updates the greyscale and emphasis state from PPUMASK
func (pm *PaletteManager) SetMask(mask uint8) {
	pm.Greyscale = mask&PPUMASKGreyscale != 0
	pm.Emphasis = mask & 0xE0
}
