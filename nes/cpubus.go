package nes

import (
	"fmt"
)

const (
	prgROMBase    uint16 = 0x8000
	resetVector   uint16 = 0xFFFC
	breakVector   uint16 = 0xFFFE
	stackPageBase uint16 = 0x0100
)

type CPUBus struct {
	ram    *RAM
	mapper Mapper
}

// NewCPUBus creates a new Bus for CPU.
// mapper can be nil, then the program window is served from RAM which can only be filled by writeSlice.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	I/O Registers
// 0x2008 - 0x3FFF	I/O Registers Mirror
// 0x4000 - 0x7FFF	Plain RAM
// 0x8000 - 0xBFFF	ProgramROM Low
// 0xC000 - 0xFFFF	ProgramROM High (mirror of Low for a 16KB image)
func NewCPUBus(ram *RAM, mapper Mapper) *CPUBus {
	return &CPUBus{ram, mapper}
}

// mirror maps an address below the program window to the RAM index.
func mirror(address uint16) uint16 {
	switch {
	case address < 0x2000:
		return address & 0x07FF
	case address < 0x4000:
		return address & 0x2007
	}
	return address
}

// read reads a byte.
func (b *CPUBus) read(address uint16) (byte, error) {
	if prgROMBase <= address {
		if b.mapper == nil {
			return b.ram.read(address), nil
		}
		return b.mapper.ReadFromCPU(address)
	}
	return b.ram.read(mirror(address)), nil
}

// read16 reads 2 bytes.
func (b *CPUBus) read16(address uint16) (uint16, error) {
	l, err := b.read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// read16Wrap reads 2 bytes but the high byte is read from the same page,
// $10FF reads $10FF and $1000.
func (b *CPUBus) read16Wrap(address uint16) (uint16, error) {
	l, err := b.read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.read(address&0xFF00 | uint16(byte(address)+1))
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// write writes a byte.
func (b *CPUBus) write(address uint16, data byte) error {
	if prgROMBase <= address {
		if b.mapper != nil {
			return b.mapper.WriteFromCPU(address, data)
		}
		return fmt.Errorf("%w: PRG ROM address=0x%04x, data=0x%02x", ErrReadOnly, address, data)
	}
	b.ram.write(mirror(address), data)
	return nil
}

// write16 writes 2 bytes in little endian.
func (b *CPUBus) write16(address uint16, data uint16) error {
	if err := b.write(address, byte(data)); err != nil {
		return err
	}
	return b.write(address+1, byte(data>>8))
}

// readSlice reads raw bytes without mirroring, it never touches the mapper.
func (b *CPUBus) readSlice(address uint16, n int) []byte {
	end := int(address) + n
	if end > len(b.ram.data) {
		end = len(b.ram.data)
	}
	res := make([]byte, end-int(address))
	copy(res, b.ram.data[address:end])
	return res
}

// writeSlice writes raw bytes without mirroring, only loaders should use this.
func (b *CPUBus) writeSlice(address uint16, data []byte) error {
	end := int(address) + len(data)
	if end > len(b.ram.data) {
		return fmt.Errorf("Slice does not fit in the address space: address=0x%04x, size=%d", address, len(data))
	}
	if b.mapper != nil && end > int(prgROMBase) {
		return fmt.Errorf("%w: the program window is served by a cartridge, address=0x%04x, size=%d", ErrReadOnly, address, len(data))
	}
	copy(b.ram.data[address:end], data)
	return nil
}
