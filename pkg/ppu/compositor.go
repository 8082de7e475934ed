package ppu

import "github.com/kestrelsys/gbppu/pkg/cartridge"

// tileAttributes decodes a CGB background/window map attribute byte
// (§4.4): bits 0-2 palette index, bit 3 VRAM bank, bit 5 H-flip, bit
// 6 V-flip. On DMG the attribute byte is effectively zero.
type tileAttributes struct {
	palette int
	bank    int
	flipX   bool
	flipY   bool
}

func decodeTileAttributes(raw uint8) tileAttributes {
	return tileAttributes{
		palette: int(raw & 0x07),
		bank:    int((raw >> 3) & 0x01),
		flipX:   raw&0x20 != 0,
		flipY:   raw&0x40 != 0,
	}
}

// draw renders one scanline into the framebuffer (§4.4). Callers
// must already have checked LCDC bit 7 and 0 <= LY <= 143.
func (p *PPU) draw(ly int) {
	if ly == 0 {
		p.fb.Clear()
	}

	p.spritesDrawn[ly] = 0

	lcdc := NewLCDC(p.host.ReadRegister(RegLCDC))

	if lcdc.BGEnabled() {
		p.drawBackground(ly, lcdc)
	}
	if lcdc.SpritesEnabled() {
		p.drawSprites(ly, lcdc)
	}
	if lcdc.WindowEnabled() {
		p.drawWindow(ly, lcdc)
	}
}

// bgAttribBank is the VRAM bank the CGB background/window attribute
// bytes live in: always bank 1, since bank 0 holds the tile indices
// themselves.
const bgAttribBank = 1

func (p *PPU) isCGB() bool {
	return p.host.CartridgeMode() == cartridge.ModeCGB
}

// drawBackground implements §4.4 step 2.
func (p *PPU) drawBackground(ly int, lcdc LCDC) {
	vram := p.host.VRAM()
	tileDataOffset := lcdc.TileDataOffset()
	mapOffset := lcdc.BGTileMapOffset()

	scy := p.host.ReadRegister(RegSCY)
	scx := p.host.ReadRegister(RegSCX)

	tileY := ((uint16(ly) + uint16(scy)) / 8) % 32

	for x := 0; x <= 20; x++ {
		tileX := (uint16(x) + uint16(scx)/8) % 32
		mapAddr := mapOffset + tileY*32 + tileX

		raw := vram[mapAddr]
		attr := tileAttributes{}
		if p.isCGB() {
			attr = decodeTileAttributes(vram[bgAttribBank*vramBankSize+int(mapAddr)])
		}

		patternIndex := tilePatternIndex(tileDataOffset, raw)
		row := uint8((uint16(ly) + uint16(scy)) % 8)
		pixels := FetchTileRow(vram, attr.bank, patternIndex, row, attr.flipX, attr.flipY)

		screenX := x*8 - int(scx)%8

		palette := p.palettes.BG(attr.palette)

		for px := 0; px < 8; px++ {
			sx := screenX + px
			if sx < 0 || sx >= ScreenWidth {
				continue
			}
			idx := pixels[px]
			priority := P3
			if idx == 0 {
				priority = P1
			}
			p.fb.Draw(sx, ly, priority, palette[idx])
		}
	}
}

// drawWindow implements §4.4 step 4.
func (p *PPU) drawWindow(ly int, lcdc LCDC) {
	wy := int(p.host.ReadRegister(RegWY))
	wx := int(p.host.ReadRegister(RegWX)) - 7

	if wy > ly || wx >= ScreenWidth || wy < 0 {
		return
	}

	vram := p.host.VRAM()
	tileDataOffset := lcdc.TileDataOffset()
	mapOffset := lcdc.WindowTileMapOffset()

	y := (ly - wy) / 8
	row := uint8((ly - wy) % 8)

	for x := 0; x <= 20; x++ {
		mapAddr := mapOffset + uint16(y)*32 + uint16(x)
		raw := vram[mapAddr]

		attr := tileAttributes{}
		if p.isCGB() {
			attr = decodeTileAttributes(vram[bgAttribBank*vramBankSize+int(mapAddr)])
		}

		patternIndex := tilePatternIndex(tileDataOffset, raw)
		pixels := FetchTileRow(vram, attr.bank, patternIndex, row, attr.flipX, attr.flipY)

		palette := p.palettes.BG(attr.palette)
		screenX := wx + x*8

		for px := 0; px < 8; px++ {
			sx := screenX + px
			if sx < 0 || sx >= ScreenWidth {
				continue
			}
			p.fb.Draw(sx, ly, P6, palette[pixels[px]])
		}
	}
}
