// Package cartridge implements Game Boy / Game Boy Color ROM header
// parsing: the handful of header fields the PPU's host needs in order
// to pick a hardware mode and seed the DMG compatibility palette.
//
// Bank-switching of the cartridge's own ROM/RAM is a cartridge
// controller (MBC) concern and is out of scope here, the same way the
// PPU itself is out of scope for CPU and MMU behavior.
package cartridge

import (
	"fmt"
	"os"
)

const (
	headerSize = 0x0150 // smallest ROM size this package reads through

	// Header field offsets, relative to the start of the ROM image.
	offsetCGBFlag  = 0x0143
	offsetChecksum = 0x014D
)

// Mode is the hardware personality the cartridge requests.
type Mode uint8

const (
	ModeDMG Mode = iota
	ModeCGB
)

func (m Mode) String() string {
	if m == ModeCGB {
		return "CGB"
	}
	return "DMG"
}

// Cartridge holds the header fields the PPU host cares about.
type Cartridge struct {
	mode     Mode
	checksum uint8
}

// LoadFromFile reads a ROM image from disk and parses its header.
func LoadFromFile(filename string) (*Cartridge, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a Game Boy ROM header from a byte slice.
func LoadFromBytes(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("file too small to contain a Game Boy header (%d bytes)", len(data))
	}

	mode := ModeDMG
	if data[offsetCGBFlag]&0x80 != 0 {
		mode = ModeCGB
	}

	return &Cartridge{
		mode:     mode,
		checksum: data[offsetChecksum],
	}, nil
}

// Mode returns the hardware mode the header requests.
func (c *Cartridge) Mode() Mode {
	return c.mode
}

// Checksum returns the header checksum byte used to select the DMG
// compatibility palette (§4.1).
func (c *Cartridge) Checksum() uint8 {
	return c.checksum
}
