package ppu

const maxSpritesPerLine = 10

// drawSprites implements §4.4.1: walks OAM in index order, stopping
// once 10 sprites have been drawn on this line.
func (p *PPU) drawSprites(ly int, lcdc LCDC) {
	oam := p.host.OAM()
	tall := lcdc.TallSprites()
	height := 8
	if tall {
		height = 16
	}

	for i := 0; i < 40 && p.spritesDrawn[ly] < maxSpritesPerLine; i++ {
		base := i * 4
		y := int(oam[base+0])
		x := int(oam[base+1])
		tile := oam[base+2]
		attr := oam[base+3]

		top := y - 16
		if ly < top || ly >= top+height {
			continue
		}

		flipX := attr&0x20 != 0
		flipY := attr&0x40 != 0
		bgOverOBJ := attr&0x80 != 0

		bank := 0
		var palette Palette
		if p.isCGB() {
			bank = int(attr>>3) & 0x01
			palette = p.palettes.OBJ(int(attr & 0x07))
		} else {
			palette = p.palettes.OBJ(int((attr >> 4) & 0x01))
		}

		priority := P5
		if bgOverOBJ {
			priority = P2
		}

		if !tall {
			p.drawSpriteRow(ly, x, top, int(tile), bank, flipX, flipY, palette, priority)
			p.spritesDrawn[ly]++
			continue
		}

		topTile := tile &^ 0x01
		bottomTile := tile | 0x01
		if flipY {
			topTile, bottomTile = bottomTile, topTile
		}

		if ly < top+8 {
			p.drawSpriteHalf(ly, x, top, int(topTile), bank, flipX, flipY, palette, priority, false)
		} else {
			p.drawSpriteHalf(ly, x, top, int(bottomTile), bank, flipX, flipY, palette, priority, true)
		}
		p.spritesDrawn[ly]++
	}
}

// drawSpriteRow draws one row of an 8x8 sprite.
func (p *PPU) drawSpriteRow(ly, x, top, tileIndex, bank int, flipX, flipY bool, palette Palette, priority uint32) {
	row := uint8(ly - top)
	p.drawSpriteTileRow(ly, x, tileIndex, bank, row, flipX, flipY, palette, priority)
}

// drawSpriteHalf draws one row of an 8x16 sprite's top or bottom
// half tile. bottomHalf selects which half's local row range (0-7)
// ly falls into.
func (p *PPU) drawSpriteHalf(ly, x, top, tileIndex, bank int, flipX, flipY bool, palette Palette, priority uint32, bottomHalf bool) {
	local := ly - top
	if bottomHalf {
		local -= 8
	}
	p.drawSpriteTileRow(ly, x, tileIndex, bank, uint8(local), flipX, flipY, palette, priority)
}

// drawSpriteTileRow fetches and composites one 8-pixel sprite row.
// Color index 0 is transparent and never drawn (§4.4.1, §4.3).
func (p *PPU) drawSpriteTileRow(ly, x, tileIndex, bank int, row uint8, flipX, flipY bool, palette Palette, priority uint32) {
	vram := p.host.VRAM()
	pixels := FetchTileRow(vram, bank, tileIndex, row, flipX, flipY)

	screenX := x - 8
	for px := 0; px < 8; px++ {
		idx := pixels[px]
		if idx == 0 {
			continue
		}
		sx := screenX + px
		if sx < 0 || sx >= ScreenWidth {
			continue
		}
		p.fb.Draw(sx, ly, priority, palette[idx])
	}
}
