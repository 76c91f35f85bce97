package ppu

// renderDot runs the background fetch cadence and the scroll-register
// events for one dot of a visible or pre-render scanline. Rendering must
// be enabled.
func (p *PPU) renderDot(visible, prerender bool) {
	fetchDot := (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336)

	if fetchDot {
		p.shiftBackground()

		switch p.Cycle % 8 {
		case 1:
			p.reloadShifters()
			p.ntByte = p.readVRAM(0x2000 | p.v&0x0FFF)
		case 3:
			attrAddr := 0x23C0 | p.v&0x0C00 | p.v>>4&0x38 | p.v>>2&0x07
			shift := (p.v >> 4 & 4) | (p.v & 2)
			p.atByte = p.readVRAM(attrAddr) >> shift & 0x03
		case 5:
			p.tileLo = p.readVRAM(p.patternAddress())
		case 7:
			p.tileHi = p.readVRAM(p.patternAddress() + 8)
		case 0:
			p.incrementX()
		}
	}

	if p.Cycle == 256 {
		p.incrementY()
	}

	if p.Cycle == 257 {
		p.reloadShifters()
		p.copyX()

		// Evaluate sprites for the next scanline
		if visible || prerender {
			next := p.Scanline + 1
			if prerender {
				next = 0
			}
			if next < 240 {
				p.evaluateSprites(next)
			}
		}
	}

	if prerender && p.Cycle >= 280 && p.Cycle <= 304 {
		p.copyY()
	}
}

// patternAddress is the background pattern fetch address for the current
// nametable byte and fine Y
func (p *PPU) patternAddress() uint16 {
	table := uint16(0)
	if p.PPUCTRL&PPUCTRLBGTable != 0 {
		table = 0x1000
	}
	fineY := p.v >> 12 & 0x07
	return table + uint16(p.ntByte)*16 + fineY
}

// shiftBackground advances the background shifters by one pixel
func (p *PPU) shiftBackground() {
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
}

// reloadShifters loads the latched tile into the low byte of the shifters
func (p *PPU) reloadShifters() {
	p.bgPatternLo = p.bgPatternLo&0xFF00 | uint16(p.tileLo)
	p.bgPatternHi = p.bgPatternHi&0xFF00 | uint16(p.tileHi)

	attrLo := uint16(0)
	if p.atByte&1 != 0 {
		attrLo = 0x00FF
	}
	attrHi := uint16(0)
	if p.atByte&2 != 0 {
		attrHi = 0x00FF
	}
	p.bgAttrLo = p.bgAttrLo&0xFF00 | attrLo
	p.bgAttrHi = p.bgAttrHi&0xFF00 | attrHi
}

// incrementX advances coarse X, toggling the horizontal nametable on wrap
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY advances fine Y, carrying into coarse Y modulo 30 and
// toggling the vertical nametable
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}

	p.v &^= 0x7000
	coarseY := p.v >> 5 & 0x1F
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		// Attribute-area rows wrap without a nametable switch
		coarseY = 0
	default:
		coarseY++
	}
	p.v = p.v&^0x03E0 | coarseY<<5
}

// copyX copies the horizontal bits of t into v
func (p *PPU) copyX() {
	p.v = p.v&0x7BE0 | p.t&0x041F
}

// copyY copies the vertical bits of t into v
func (p *PPU) copyY() {
	p.v = p.v&0x041F | p.t&0x7BE0
}

// backgroundPixel returns the 2-bit pattern and 2-bit palette of the
// background at the current dot, honoring fine X and the left-edge mask
func (p *PPU) backgroundPixel() (uint8, uint8) {
	if p.PPUMASK&PPUMASKBGShow == 0 {
		return 0, 0
	}
	if p.Cycle <= 8 && p.PPUMASK&PPUMASKBGLeft == 0 {
		return 0, 0
	}

	bit := uint16(0x8000) >> p.x
	pattern := uint8(0)
	if p.bgPatternLo&bit != 0 {
		pattern |= 1
	}
	if p.bgPatternHi&bit != 0 {
		pattern |= 2
	}

	palette := uint8(0)
	if p.bgAttrLo&bit != 0 {
		palette |= 1
	}
	if p.bgAttrHi&bit != 0 {
		palette |= 2
	}

	return pattern, palette
}

// spriteHeight returns 8 or 16 per PPUCTRL bit 5
func (p *PPU) spriteHeight() int {
	if p.PPUCTRL&PPUCTRLSpriteSize != 0 {
		return 16
	}
	return 8
}

// evaluateSprites scans OAM in order and selects up to eight sprites
// covering the given scanline; the ninth hit sets the overflow flag. The
// row's pattern bytes are fetched here, with vertical flip applied.
func (p *PPU) evaluateSprites(line int) {
	p.spriteCount = 0
	height := p.spriteHeight()

	for i := 0; i < 64; i++ {
		y := int(p.OAM[i*4])
		row := line - (y + 1)
		if row < 0 || row >= height {
			continue
		}

		if p.spriteCount == 8 {
			p.PPUSTATUS |= PPUSTATUSOverflow
			break
		}

		tile := p.OAM[i*4+1]
		attributes := p.OAM[i*4+2]

		if attributes&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			table := uint16(tile&1) * 0x1000
			tile &= 0xFE
			if row > 7 {
				tile++
				row -= 8
			}
			patternAddr = table + uint16(tile)*16 + uint16(row)
		} else {
			table := uint16(0)
			if p.PPUCTRL&PPUCTRLSpriteTable != 0 {
				table = 0x1000
			}
			patternAddr = table + uint16(tile)*16 + uint16(row)
		}

		p.scanSprites[p.spriteCount] = scanSprite{
			index:      i,
			x:          p.OAM[i*4+3],
			attributes: attributes,
			patternLo:  p.readVRAM(patternAddr),
			patternHi:  p.readVRAM(patternAddr + 8),
		}
		p.spriteCount++
	}
}

// spritePixel returns the front-most opaque sprite pixel at the current
// dot: 2-bit pattern, palette, priority-behind flag, and whether the
// contributing sprite is sprite 0
func (p *PPU) spritePixel() (uint8, uint8, bool, bool) {
	if p.PPUMASK&PPUMASKSpriteShow == 0 {
		return 0, 0, false, false
	}
	if p.Cycle <= 8 && p.PPUMASK&PPUMASKSpriteLeft == 0 {
		return 0, 0, false, false
	}

	x := p.Cycle - 1
	for i := 0; i < p.spriteCount; i++ {
		s := &p.scanSprites[i]
		col := x - int(s.x)
		if col < 0 || col > 7 {
			continue
		}

		if s.attributes&0x40 == 0 { // not flipped: bit 7 is the left edge
			col = 7 - col
		}

		pattern := s.patternLo >> col & 1
		pattern |= (s.patternHi >> col & 1) << 1
		if pattern == 0 {
			continue
		}

		return pattern, s.attributes & 0x03, s.attributes&0x20 != 0, s.index == 0
	}

	return 0, 0, false, false
}

// renderPixel composites the background and sprite pixels for the current
// dot and writes the result into the framebuffer
func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	bgPattern, bgPalette := p.backgroundPixel()
	sprPattern, sprPalette, behind, isSprite0 := p.spritePixel()

	var color uint32
	switch {
	case bgPattern == 0 && sprPattern == 0:
		color = p.PaletteManager.GetBackdropColor()
	case bgPattern == 0:
		color = p.PaletteManager.GetSpriteColor(sprPalette, sprPattern)
	case sprPattern == 0:
		color = p.PaletteManager.GetBackgroundColor(bgPalette, bgPattern)
	default:
		if isSprite0 && x < 255 {
			p.PPUSTATUS |= PPUSTATUSSprite0Hit
		}
		if behind {
			color = p.PaletteManager.GetBackgroundColor(bgPalette, bgPattern)
		} else {
			color = p.PaletteManager.GetSpriteColor(sprPalette, sprPattern)
		}
	}

	p.FrameBuffer[y*256+x] = color
}
