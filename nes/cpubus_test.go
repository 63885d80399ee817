package nes

import (
	"bytes"
	"errors"
	"testing"
)

func TestMirror(t *testing.T) {
	tests := []struct {
		address uint16
		want    uint16
	}{
		{0x0000, 0x0000},
		{0x07FF, 0x07FF},
		{0x0800, 0x0000},
		{0x1800, 0x0000},
		{0x1FFF, 0x07FF},
		{0x2000, 0x2000},
		{0x2008, 0x2000},
		{0x3FFF, 0x2007},
		{0x4000, 0x4000},
		{0x7FFF, 0x7FFF},
	}
	for _, test := range tests {
		if got := mirror(test.address); got != test.want {
			t.Errorf("mirror(0x%04x): got=0x%04x, want=0x%04x", test.address, got, test.want)
		}
	}
}

func TestBusMirroredAccess(t *testing.T) {
	b := NewCPUBus(NewRAM(), nil)
	if err := b.write(0x0800, 0x11); err != nil {
		t.Fatal(err)
	}
	for _, address := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got, _ := b.read(address); got != 0x11 {
			t.Errorf("read(0x%04x): got=0x%02x, want=0x11", address, got)
		}
	}
	if err := b.write(0x2008, 0x22); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.read(0x2000); got != 0x22 {
		t.Errorf("read(0x2000): got=0x%02x, want=0x22", got)
	}
}

func TestBusReadOnlyWindow(t *testing.T) {
	mapper, err := NewMapper(0, make([]byte, prgROMSizeUnit))
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []*CPUBus{NewCPUBus(NewRAM(), nil), NewCPUBus(NewRAM(), mapper)} {
		for _, address := range []uint16{0x8000, 0xC000, 0xFFFF} {
			if err := b.write(address, 0x01); !errors.Is(err, ErrReadOnly) {
				t.Errorf("write(0x%04x): got=%v, want=%v", address, err, ErrReadOnly)
			}
		}
		if err := b.write16(0x7FFF, 0x0102); !errors.Is(err, ErrReadOnly) {
			t.Errorf("write16(0x7fff): got=%v, want=%v", err, ErrReadOnly)
		}
	}
}

func TestBusMapperMirror(t *testing.T) {
	prg := make([]byte, prgROMSizeUnit)
	prg[0x0000] = 0xAA
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	mapper, err := NewMapper(0, prg)
	if err != nil {
		t.Fatal(err)
	}
	b := NewCPUBus(NewRAM(), mapper)
	for _, address := range []uint16{0x8000, 0xC000} {
		if got, _ := b.read(address); got != 0xAA {
			t.Errorf("read(0x%04x): got=0x%02x, want=0xaa", address, got)
		}
	}
	if got, _ := b.read16(resetVector); got != 0x8000 {
		t.Errorf("reset vector: got=0x%04x, want=0x8000", got)
	}

	prg = make([]byte, 2*prgROMSizeUnit)
	prg[0x4000] = 0xBB
	mapper, err = NewMapper(0, prg)
	if err != nil {
		t.Fatal(err)
	}
	b = NewCPUBus(NewRAM(), mapper)
	if got, _ := b.read(0xC000); got != 0xBB {
		t.Errorf("read(0xc000) with 32KB: got=0x%02x, want=0xbb", got)
	}
	if got, _ := b.read(0x8000); got != 0x00 {
		t.Errorf("read(0x8000) with 32KB: got=0x%02x, want=0x00", got)
	}
}

func TestBus16(t *testing.T) {
	b := NewCPUBus(NewRAM(), nil)
	if err := b.write16(0x0010, 0xBEEF); err != nil {
		t.Fatal(err)
	}
	if l, _ := b.read(0x0010); l != 0xEF {
		t.Errorf("low byte: got=0x%02x, want=0xef", l)
	}
	if got, _ := b.read16(0x0010); got != 0xBEEF {
		t.Errorf("read16: got=0x%04x, want=0xbeef", got)
	}
	b.write(0x02FF, 0x34)
	b.write(0x0300, 0x12)
	b.write(0x0200, 0x56)
	if got, _ := b.read16(0x02FF); got != 0x1234 {
		t.Errorf("read16(0x02ff): got=0x%04x, want=0x1234", got)
	}
	if got, _ := b.read16Wrap(0x02FF); got != 0x5634 {
		t.Errorf("read16Wrap(0x02ff): got=0x%04x, want=0x5634", got)
	}
}

func TestBusSlices(t *testing.T) {
	b := NewCPUBus(NewRAM(), nil)
	program := []byte{0xA9, 0x01, 0x00}
	if err := b.writeSlice(0x8000, program); err != nil {
		t.Fatal(err)
	}
	if got := b.readSlice(0x8000, 3); !bytes.Equal(got, program) {
		t.Errorf("readSlice: got=%v, want=%v", got, program)
	}
	if got := b.readSlice(0xFFFE, 8); len(got) != 2 {
		t.Errorf("readSlice at the end: got %d bytes, want 2", len(got))
	}
	if err := b.writeSlice(0xFFFF, []byte{1, 2}); err == nil {
		t.Errorf("writeSlice past 0xffff: got nil error")
	}

	mapper, err := NewMapper(0, make([]byte, prgROMSizeUnit))
	if err != nil {
		t.Fatal(err)
	}
	b = NewCPUBus(NewRAM(), mapper)
	if err := b.writeSlice(0x7FFF, []byte{1, 2}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("writeSlice into a cartridge: got=%v, want=%v", err, ErrReadOnly)
	}
	if err := b.writeSlice(0x0600, []byte{1, 2}); err != nil {
		t.Errorf("writeSlice into RAM: %v", err)
	}
}
