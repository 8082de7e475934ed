package ppu

// vramBankSize is the size in bytes of one VRAM bank (§6).
const vramBankSize = 0x2000

// FetchTileRow decodes one 8-pixel row of a tile straight out of VRAM
// (§4.2). tileIndex is in [0,383]: [0,255] addresses 0x0000..0x0FFF
// within the bank, [256,383] addresses 0x1000..0x17FF (the signed
// second pattern table). row is in [0,7]. The returned array holds
// one 2-bit palette index per pixel, left to right on screen.
func FetchTileRow(vram []uint8, bank int, tileIndex int, row uint8, flipX, flipY bool) [8]uint8 {
	base := bank*vramBankSize + tileIndex*16

	r := row
	if flipY {
		r = 7 - row
	}

	lo := vram[base+int(r)*2]
	hi := vram[base+int(r)*2+1]

	var out [8]uint8
	for px := 0; px < 8; px++ {
		lx := px
		if flipX {
			lx = 7 - px
		}
		bit := uint(7 - lx)
		out[px] = ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
	}
	return out
}

// tilePatternIndex resolves a raw tile-map byte into the [0,383]
// index FetchTileRow expects, honoring LCDC's addressing mode
// (§4.2, §4.4): unsigned when tileDataOffset is 0, signed (the
// second pattern table, biased by 256) otherwise.
func tilePatternIndex(tileDataOffset uint16, raw uint8) int {
	if tileDataOffset == 0 {
		return int(raw)
	}
	return 256 + int(int8(raw))
}
