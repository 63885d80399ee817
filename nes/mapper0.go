package nes

import "fmt"

type mapper0 struct {
	prgROM []byte
}

// Mapper0: https://www.nesdev.org/wiki/NROM

func newMapper0(prgROM []byte) (*mapper0, error) {
	if len(prgROM) == 0 || len(prgROM) > 2*prgROMSizeUnit || len(prgROM)%prgROMSizeUnit != 0 {
		return nil, fmt.Errorf("%w: NROM needs 1 or 2 PRG banks, got %d bytes", ErrUnsupportedFormat, len(prgROM))
	}
	return &mapper0{prgROM}, nil
}

func (m *mapper0) ReadFromCPU(address uint16) (byte, error) {
	if 0x8000 <= address {
		// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
		mod := uint16(len(m.prgROM))
		return m.prgROM[(address-0x8000)%mod], nil
	}
	return 0, fmt.Errorf("NROM has no PRG RAM: address=0x%04x", address)
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) error {
	return fmt.Errorf("%w: PRG ROM address=0x%04x, data=0x%02x", ErrReadOnly, address, data)
}
