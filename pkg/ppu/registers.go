package ppu

// Register addresses the PPU reads from and writes to on its host
// (§6). BGP/OBP0/OBP1 and the CGB palette-RAM ports are not in this
// list: those writes are routed directly to the Palette Store by the
// host's own register dispatch, the way a real MMU forwards a BGP
// write to the PPU instead of just latching a byte (§4.1).
const (
	RegLCDC uint16 = 0xFF40
	RegSTAT uint16 = 0xFF41
	RegSCY  uint16 = 0xFF42
	RegSCX  uint16 = 0xFF43
	RegLY   uint16 = 0xFF44
	RegLYC  uint16 = 0xFF45
	RegWY   uint16 = 0xFF4A
	RegWX   uint16 = 0xFF4B
)

// LCDC represents the LCD Control register ($FF40).
//
// Bit layout:
//
//	7: LCD enable
//	6: Window tile map select (0=0x1800, 1=0x1C00)
//	5: Window display enable
//	4: BG/Window tile data select (0=0x800 signed, 1=0x0000 unsigned)
//	3: BG tile map select (0=0x1800, 1=0x1C00)
//	2: Sprite size (0=8x8, 1=8x16)
//	1: Sprite display enable
//	0: BG/Window display enable
type LCDC struct {
	register uint8
}

// NewLCDC wraps a raw LCDC register byte.
func NewLCDC(value uint8) LCDC {
	return LCDC{register: value}
}

// Get returns the raw register byte.
func (c LCDC) Get() uint8 {
	return c.register
}

// Enabled reports whether the LCD is switched on (bit 7).
func (c LCDC) Enabled() bool {
	return c.register&0x80 != 0
}

// WindowTileMapOffset returns the VRAM offset of the window tile map.
func (c LCDC) WindowTileMapOffset() uint16 {
	if c.register&0x40 != 0 {
		return 0x1C00
	}
	return 0x1800
}

// WindowEnabled reports whether the window layer is displayed (bit 5).
func (c LCDC) WindowEnabled() bool {
	return c.register&0x20 != 0
}

// TileDataOffset returns the BG/window tile pattern table offset: 0
// when tile IDs address it unsigned, 0x800 when they address it with
// the signed second-table scheme (§4.2, §4.4).
func (c LCDC) TileDataOffset() uint16 {
	if c.register&0x10 != 0 {
		return 0
	}
	return 0x800
}

// SignedTileAddressing reports whether BG/window tile indices use the
// signed addressing mode (LCDC bit 4 clear).
func (c LCDC) SignedTileAddressing() bool {
	return c.register&0x10 == 0
}

// BGTileMapOffset returns the VRAM offset of the background tile map.
func (c LCDC) BGTileMapOffset() uint16 {
	if c.register&0x08 != 0 {
		return 0x1C00
	}
	return 0x1800
}

// TallSprites reports whether sprites are 8x16 (bit 2 set).
func (c LCDC) TallSprites() bool {
	return c.register&0x04 != 0
}

// SpritesEnabled reports whether sprites are displayed (bit 1).
func (c LCDC) SpritesEnabled() bool {
	return c.register&0x02 != 0
}

// BGEnabled reports whether the background/window layer is displayed
// (bit 0).
func (c LCDC) BGEnabled() bool {
	return c.register&0x01 != 0
}

// STAT represents the LCD Status register ($FF41).
//
// Mode 2 (OAM scan) and mode 3 (pixel transfer) are not modeled: the
// compositor samples registers once per scanline rather than
// replicating sub-scanline timing (§1 Non-goals), so STAT only ever
// reports mode 0 (HBlank) or mode 1 (VBlank).
type STAT struct {
	register uint8
}

// NewSTAT wraps a raw STAT register byte.
func NewSTAT(value uint8) STAT {
	return STAT{register: value}
}

// Get returns the raw register byte.
func (s STAT) Get() uint8 {
	return s.register
}

// LYCInterruptEnabled reports whether LY=LYC should raise LCDC-STAT
// (bit 6).
func (s STAT) LYCInterruptEnabled() bool {
	return s.register&0x40 != 0
}

// VBlankInterruptEnabled reports whether entering VBlank should raise
// LCDC-STAT (bit 4).
func (s STAT) VBlankInterruptEnabled() bool {
	return s.register&0x10 != 0
}

// HBlankInterruptEnabled reports whether HBlank should raise
// LCDC-STAT (bit 3).
func (s STAT) HBlankInterruptEnabled() bool {
	return s.register&0x08 != 0
}

// Mode values for the low two bits of STAT, per §1/§4.5: only HBlank
// and VBlank are modeled.
const (
	ModeHBlank uint8 = 0
	ModeVBlank uint8 = 1
)

// WithMode returns a copy of the register with the mode bits replaced.
func (s STAT) WithMode(mode uint8) STAT {
	s.register = (s.register &^ 0x03) | (mode & 0x03)
	return s
}

// WithCoincidence returns a copy of the register with the LY=LYC
// coincidence flag (bit 2) set or cleared.
func (s STAT) WithCoincidence(set bool) STAT {
	if set {
		s.register |= 0x04
	} else {
		s.register &^= 0x04
	}
	return s
}
