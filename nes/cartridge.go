package nes

import (
	"fmt"
	"os"

	"github.com/golang/glog"
)

const (
	chrROMSizeUnit      int  = 0x2000 // 8KB
	prgROMSizeUnit      int  = 0x4000 // 16KB
	prgRAMSizeUnit      int  = 0x2000 // 8KB
	trainerSizeBytes    int  = 512
	inesHeaderSizeBytes int  = 16 // The valid INES header has 16 bytes
	msDOSEOF            byte = 0x1A
)

type tableMirrorMode int

const (
	horizontal tableMirrorMode = iota
	vertical
	fourScreen
)

func (m tableMirrorMode) String() string {
	switch m {
	case horizontal:
		return "horizontal"
	case vertical:
		return "vertical"
	case fourScreen:
		return "four-screen"
	}
	return fmt.Sprintf("tableMirrorMode(%d)", int(m))
}

// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM []byte
	chrROM []byte
	mapper byte
	flags6 byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7 byte // https://www.nesdev.org/wiki/INES#Flags_7
	flags8 byte // https://www.nesdev.org/wiki/INES#Flags_8
}

// parseHeader validates the 16 bytes header.
func parseHeader(header []byte) error {
	if len(header) != inesHeaderSizeBytes {
		return fmt.Errorf("%w: header has %d bytes, want %d", ErrInvalidHeader, len(header), inesHeaderSizeBytes)
	}
	if header[0] != byte('N') ||
		header[1] != byte('E') ||
		header[2] != byte('S') ||
		header[3] != msDOSEOF {
		return fmt.Errorf("%w: bad magic % x", ErrInvalidHeader, header[0:4])
	}
	// NES 2.0 uses the lower nibble of flags 7.
	if header[7]&0x0F != 0 {
		return fmt.Errorf("%w: NES 2.0 header", ErrUnsupportedFormat)
	}
	return nil
}

// NewCartridge creates a cartridge.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSizeBytes {
		return nil, fmt.Errorf("%w: header has %d bytes, want %d", ErrInvalidHeader, len(data), inesHeaderSizeBytes)
	}
	if err := parseHeader(data[:inesHeaderSizeBytes]); err != nil {
		return nil, err
	}
	c := &Cartridge{
		flags6: data[6],
		flags7: data[7],
		flags8: data[8],
	}
	// Lower nibble from flags 6, upper nibble from flags 7.
	c.mapper = c.flags6>>4 | c.flags7&0xF0
	l := inesHeaderSizeBytes
	if c.hasTrainer() {
		l += trainerSizeBytes
	}
	m := l + int(data[4])*prgROMSizeUnit
	r := m + int(data[5])*chrROMSizeUnit
	if len(data) < r {
		return nil, fmt.Errorf("%w: %d bytes, header declares %d", ErrTruncatedImage, len(data), r)
	}
	c.prgROM = data[l:m]
	c.chrROM = data[m:r]
	return c, nil
}

// ReadCartridge reads a cartridge from a file.
func ReadCartridge(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", path, err)
	}
	c, err := NewCartridge(data)
	if err != nil {
		return nil, fmt.Errorf("Failed to load %s: %w", path, err)
	}
	glog.Infof("Loaded %s: PRG=%dKB, CHR=%dKB, mapper=%d, mirroring=%v",
		path, len(c.prgROM)/1024, len(c.chrROM)/1024, c.mapper, c.getTableMirrorMode())
	if c.hasPRGRAM() {
		glog.Warningf("%s declares %dKB PRG RAM, it is not mapped", path, c.prgRAMSize()/1024)
	}
	return c, nil
}

func (c *Cartridge) hasTrainer() bool {
	return c.flags6&0x04 != 0
}

func (c *Cartridge) hasPRGRAM() bool {
	return c.flags6&0x02 != 0
}

// prgRAMSize returns the PRG RAM size, 0 in the header means 8KB for compatibility.
func (c *Cartridge) prgRAMSize() int {
	if c.flags8 == 0 {
		return prgRAMSizeUnit
	}
	return int(c.flags8) * prgRAMSizeUnit
}

func (c *Cartridge) getTableMirrorMode() tableMirrorMode {
	if c.flags6&0x08 != 0 {
		return fourScreen
	}
	if c.flags6&1 == 1 {
		return vertical
	} else {
		return horizontal
	}
}

// PRG returns the program ROM.
func (c *Cartridge) PRG() []byte {
	return c.prgROM
}

// CHR returns the character ROM, nothing in this package consumes it.
func (c *Cartridge) CHR() []byte {
	return c.chrROM
}

// MapperNumber returns the iNES mapper number.
func (c *Cartridge) MapperNumber() byte {
	return c.mapper
}

// Mirroring returns the name table mirroring mode.
func (c *Cartridge) Mirroring() string {
	return c.getTableMirrorMode().String()
}
