// Package mmu is a reference host for pkg/ppu: a minimal memory
// management unit wiring together flat memory, VRAM, OAM, the
// cartridge header, and the HDMA engine behind the ppu.Host
// capability interface (§6, §9).
//
// It is deliberately small. A real Game Boy MMU also drives the CPU,
// timers, and I/O beyond the LCD; none of that is this package's
// concern. What it does own is the register-dispatch switch shape a
// real MMU uses to route LCDC/STAT/SCX/SCY/WX/WY/LY/LYC and
// BGP/OBP0/OBP1/HDMA writes to their owning component.
package mmu

import (
	"github.com/kestrelsys/gbppu/pkg/cartridge"
	"github.com/kestrelsys/gbppu/pkg/hdma"
	"github.com/kestrelsys/gbppu/pkg/ppu"
)

// Register addresses outside the LCD block that this MMU also
// dispatches.
const (
	regBGP  uint16 = 0xFF47
	regOBP0 uint16 = 0xFF48
	regOBP1 uint16 = 0xFF49
	regVBK  uint16 = 0xFF4F // CGB VRAM bank select
	regBCPS uint16 = 0xFF68 // CGB BG palette index/auto-increment
	regBCPD uint16 = 0xFF69 // CGB BG palette data
	regOCPS uint16 = 0xFF6A // CGB OBJ palette index/auto-increment
	regOCPD uint16 = 0xFF6B // CGB OBJ palette data

	regHDMA1 uint16 = 0xFF51
	regHDMA2 uint16 = 0xFF52
	regHDMA3 uint16 = 0xFF53
	regHDMA4 uint16 = 0xFF54
	regHDMA5 uint16 = 0xFF55

	regIF uint16 = 0xFF0F
	regIE uint16 = 0xFFFF
)

const (
	interruptFlagVBlank uint8 = 1 << 0
	interruptFlagLCDC   uint8 = 1 << 1
)

// MMU implements ppu.Host over flat general memory, a 2-bank VRAM,
// and a 40-entry OAM.
type MMU struct {
	mem  [0x10000]uint8
	vram [2 * 0x2000]uint8
	oam  [160]uint8

	regs map[uint16]uint8

	cart *cartridge.Cartridge
	ppu  *ppu.PPU
	hdma *hdma.Engine

	vramBank int
	bcpIndex uint8
	bcpAuto  bool
	ocpIndex uint8
	ocpAuto  bool

	display ppu.Display
}

// New constructs an MMU for the given cartridge. Call SetPPU once
// the PPU has been constructed with this MMU as its Host — the two
// are mutually referential the way a real PPU/MMU pair is (§9), and
// neither can be fully built before the other exists.
func New(cart *cartridge.Cartridge) *MMU {
	m := &MMU{
		cart: cart,
		regs: make(map[uint16]uint8),
	}
	m.hdma = hdma.New(m, m)
	return m
}

// SetPPU completes the circular PPU/MMU wiring (§9): BGP/OBP/CGB
// palette-RAM writes are routed here rather than just latched.
func (m *MMU) SetPPU(p *ppu.PPU) {
	m.ppu = p
}

// SetDisplay attaches an optional presentation surface.
func (m *MMU) SetDisplay(d ppu.Display) {
	m.display = d
}

// LoadROM copies data into the flat memory image starting at 0x0000,
// the way a non-bank-switched (32KB or smaller) cartridge would be
// mapped.
func (m *MMU) LoadROM(data []uint8) {
	copy(m.mem[:], data)
}

// ReadByte implements hdma.MemoryReader.
func (m *MMU) ReadByte(addr uint16) uint8 {
	return m.mem[addr]
}

// WriteVRAM implements hdma.VRAMWriter: writes into whichever VRAM
// bank is currently selected via FF4F.
func (m *MMU) WriteVRAM(offset uint16, value uint8) {
	m.vram[m.vramBank*0x2000+int(offset&0x1FFF)] = value
}

// ReadRegister implements ppu.Host.
func (m *MMU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case regHDMA5:
		return m.hdma.ReadControl()
	case regBCPD:
		return m.ppu.ReadCGBBGPalette(m.bcpIndex)
	case regOCPD:
		return m.ppu.ReadCGBOBJPalette(m.ocpIndex)
	default:
		return m.regs[addr]
	}
}

// WriteRegister implements ppu.Host, with BGP/OBP/HDMA/CGB-palette
// writes forwarded to their owning component (§4.1 note).
func (m *MMU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case regBGP:
		m.regs[addr] = value
		m.ppu.WriteBGP(value)
	case regOBP0:
		m.regs[addr] = value
		m.ppu.WriteOBP0(value)
	case regOBP1:
		m.regs[addr] = value
		m.ppu.WriteOBP1(value)

	case regVBK:
		m.vramBank = int(value & 0x01)

	case regBCPS:
		m.bcpIndex = value & 0x3F
		m.bcpAuto = value&0x80 != 0
	case regBCPD:
		m.ppu.WriteCGBBGPalette(m.bcpIndex, value)
		if m.bcpAuto {
			m.bcpIndex = (m.bcpIndex + 1) & 0x3F
		}
	case regOCPS:
		m.ocpIndex = value & 0x3F
		m.ocpAuto = value&0x80 != 0
	case regOCPD:
		m.ppu.WriteCGBOBJPalette(m.ocpIndex, value)
		if m.ocpAuto {
			m.ocpIndex = (m.ocpIndex + 1) & 0x3F
		}

	case regHDMA1:
		m.hdma.WriteSourceHigh(value)
	case regHDMA2:
		m.hdma.WriteSourceLow(value)
	case regHDMA3:
		m.hdma.WriteDestHigh(value)
	case regHDMA4:
		m.hdma.WriteDestLow(value)
	case regHDMA5:
		m.hdma.WriteControl(value)

	default:
		m.regs[addr] = value
	}
}

// VRAM implements ppu.Host.
func (m *MMU) VRAM() []uint8 {
	return m.vram[:]
}

// OAM implements ppu.Host.
func (m *MMU) OAM() []uint8 {
	return m.oam[:]
}

// CartridgeMode implements ppu.Host.
func (m *MMU) CartridgeMode() cartridge.Mode {
	return m.cart.Mode()
}

// CartridgeChecksum implements ppu.Host.
func (m *MMU) CartridgeChecksum() uint8 {
	return m.cart.Checksum()
}

// TickHDMA implements ppu.Host.
func (m *MMU) TickHDMA() {
	m.hdma.Tick()
}

// RaiseInterrupt implements ppu.Host by setting the corresponding
// bit in the FF0F interrupt-flag register.
func (m *MMU) RaiseInterrupt(kind ppu.InterruptKind) {
	flag := interruptFlagVBlank
	if kind == ppu.InterruptLCDC {
		flag = interruptFlagLCDC
	}
	m.regs[regIF] |= flag
}

// Display implements ppu.Host.
func (m *MMU) Display() ppu.Display {
	return m.display
}

var _ ppu.Host = (*MMU)(nil)
