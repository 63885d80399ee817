package nes

import "fmt"

// Mapper serves the program window $8000-$FFFF from a cartridge.
type Mapper interface {
	ReadFromCPU(uint16) (byte, error)
	WriteFromCPU(uint16, byte) error
}

// NewMapper creates a mapper for the given iNES mapper number.
// Only the fixed bank layout (NROM) is available.
func NewMapper(number byte, prgROM []byte) (Mapper, error) {
	switch number {
	case 0:
		return newMapper0(prgROM)
	}
	return nil, fmt.Errorf("%w: mapper=%d", ErrUnsupportedMapper, number)
}
