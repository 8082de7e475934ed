package ppu

import "github.com/kestrelsys/gbppu/pkg/cartridge"

// Color is a resolved 24-bit RGB color, stored as 0x00RRGGBB — the
// top byte is always zero (§3).
type Color uint32

// RGB packs 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R, G, B extract the individual channels.
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Palette is four colors; for sprite palettes, index 0 is logically
// transparent (never drawn, §3).
type Palette [4]Color

// PaletteStore holds 8 background and 8 sprite palettes of 4 colors
// each, plus the CGB's raw palette RAM backing them (§4.1).
type PaletteStore struct {
	bg  [8]Palette
	obj [8]Palette

	bgRAM  [64]uint8
	objRAM [64]uint8

	mode   cartridge.Mode
	compat cartridge.CompatEntry
}

// NewPaletteStore builds a Palette Store for the given hardware mode.
// On CGB, every palette RAM byte is filled with 0x1F and every
// palette recomputed from it (each color word is then 0x1F1F:
// RGB555 red 31, green 24, blue 7). On DMG, bg[0], obj[0], and obj[1] are seeded
// from the cartridge-checksum-indexed compatibility table.
func NewPaletteStore(mode cartridge.Mode, checksum uint8) *PaletteStore {
	ps := &PaletteStore{mode: mode, compat: cartridge.Compatibility(checksum)}

	if mode == cartridge.ModeCGB {
		for i := range ps.bgRAM {
			ps.bgRAM[i] = 0x1F
		}
		for i := range ps.objRAM {
			ps.objRAM[i] = 0x1F
		}
		for i := 0; i < 8; i++ {
			ps.recomputeCGBPalette(ps.bg[:], ps.bgRAM[:], i)
			ps.recomputeCGBPalette(ps.obj[:], ps.objRAM[:], i)
		}
		return ps
	}

	ps.bg[0] = shadesToPalette(ps.compat.BG)
	ps.obj[0] = shadesToPalette(ps.compat.OBJ0)
	ps.obj[1] = shadesToPalette(ps.compat.OBJ1)
	return ps
}

// dmgShadeTable maps a 2-bit compatibility shade index (0=lightest,
// 3=darkest) to the classic four-tone DMG greens. Color variants live
// entirely in the cartridge compatibility table; the PPU only ever
// materializes a shade index to RGB through this one table.
var dmgShadeTable = [4]Color{
	RGB(0xE0, 0xF8, 0xD0),
	RGB(0x88, 0xC0, 0x70),
	RGB(0x34, 0x68, 0x56),
	RGB(0x08, 0x18, 0x20),
}

// shadesToPalette maps each of a register's four 2-bit color-index
// slots through dmgShadeTable.
func shadesToPalette(shades [4]uint8) Palette {
	var p Palette
	for i, s := range shades {
		p[i] = dmgShadeTable[s&0x03]
	}
	return p
}

// decodeDMGRegister maps the byte's four 2-bit groups (index 0 in
// bits 0-1, index 3 in bits 6-7), the way BGP/OBP0/OBP1 are
// documented to work, then resolves those through dmgShadeTable.
// The cartridge compatibility entry is not consulted here: it only
// seeds bg[0], obj[0], and obj[1] in NewPaletteStore, and a later
// BGP/OBP0/OBP1 write replaces that seeded palette.
func decodeDMGRegister(value uint8) Palette {
	var shades [4]uint8
	for i := range shades {
		shades[i] = (value >> uint(i*2)) & 0x03
	}
	return shadesToPalette(shades)
}

// SetDMGBG recomputes bg[0] from a BGP register write.
func (ps *PaletteStore) SetDMGBG(value uint8) {
	ps.bg[0] = decodeDMGRegister(value)
}

// SetDMGOBJ0 recomputes obj[0] from an OBP0 register write.
func (ps *PaletteStore) SetDMGOBJ0(value uint8) {
	ps.obj[0] = decodeDMGRegister(value)
}

// SetDMGOBJ1 recomputes obj[1] from an OBP1 register write.
func (ps *PaletteStore) SetDMGOBJ1(value uint8) {
	ps.obj[1] = decodeDMGRegister(value)
}

// expand5to8 expands a 5-bit RGB555 channel to 8 bits by
// round(c * 255 / 31) (§4.1, §8 P6).
func expand5to8(c uint8) uint8 {
	return uint8((uint16(c)*255 + 15) / 31)
}

// recomputeCGBPalette rebuilds palette i of the given palette/RAM pair
// from its 8-byte (4 colors x 2 bytes, RGB555) region.
func (ps *PaletteStore) recomputeCGBPalette(palettes []Palette, ram []uint8, i int) {
	base := i * 8
	for j := 0; j < 4; j++ {
		lo := uint16(ram[base+j*2])
		hi := uint16(ram[base+j*2+1])
		word := lo | hi<<8

		r := uint8(word & 0x1F)
		g := uint8((word >> 5) & 0x1F)
		b := uint8((word >> 10) & 0x1F)

		palettes[i][j] = RGB(expand5to8(r), expand5to8(g), expand5to8(b))
	}
}

// WriteCGBBG stores a byte into CGB background palette RAM at offset
// and recomputes the palette it belongs to. offset must be in 0..63;
// an out-of-range offset is a caller programming error and panics
// (the MMU's BCPS-index write is what actually clamps into range).
func (ps *PaletteStore) WriteCGBBG(offset uint8, value uint8) {
	ps.bgRAM[offset] = value
	ps.recomputeCGBPalette(ps.bg[:], ps.bgRAM[:], int(offset)/8)
}

// WriteCGBOBJ stores a byte into CGB sprite palette RAM at offset and
// recomputes the palette it belongs to. offset must be in 0..63; see
// WriteCGBBG.
func (ps *PaletteStore) WriteCGBOBJ(offset uint8, value uint8) {
	ps.objRAM[offset] = value
	ps.recomputeCGBPalette(ps.obj[:], ps.objRAM[:], int(offset)/8)
}

// BG returns background palette i (0..7).
func (ps *PaletteStore) BG(i int) Palette {
	return ps.bg[i&0x07]
}

// OBJ returns sprite palette i (0..7 on CGB, 0..1 meaningfully on DMG).
func (ps *PaletteStore) OBJ(i int) Palette {
	return ps.obj[i&0x07]
}

// ReadCGBBGByte and ReadCGBOBJByte return a raw byte out of CGB
// palette RAM, for a host answering a BCPD/OCPD register read
// without needing to re-derive the byte from resolved colors. offset
// must be in 0..63; see WriteCGBBG.
func (ps *PaletteStore) ReadCGBBGByte(offset uint8) uint8 {
	return ps.bgRAM[offset]
}

func (ps *PaletteStore) ReadCGBOBJByte(offset uint8) uint8 {
	return ps.objRAM[offset]
}
