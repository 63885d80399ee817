package nes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTestImage builds an iNES image, PRG bytes are filled with 0x11 and CHR bytes with 0x22.
func newTestImage(prgBanks, chrBanks, flags6, flags7 byte) []byte {
	data := []byte{'N', 'E', 'S', msDOSEOF, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	if flags6&0x04 != 0 {
		for i := 0; i < trainerSizeBytes; i++ {
			data = append(data, 0xEE)
		}
	}
	for i := 0; i < int(prgBanks)*prgROMSizeUnit; i++ {
		data = append(data, 0x11)
	}
	for i := 0; i < int(chrBanks)*chrROMSizeUnit; i++ {
		data = append(data, 0x22)
	}
	return data
}

func TestNewCartridge(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		prg, chr  int
		mapper    byte
		mirroring string
	}{
		{"NROM-128", newTestImage(1, 1, 0x00, 0x00), prgROMSizeUnit, chrROMSizeUnit, 0, "horizontal"},
		{"NROM-256", newTestImage(2, 1, 0x01, 0x00), 2 * prgROMSizeUnit, chrROMSizeUnit, 0, "vertical"},
		{"no CHR", newTestImage(1, 0, 0x08, 0x00), prgROMSizeUnit, 0, 0, "four-screen"},
		{"mapper 66", newTestImage(1, 1, 0x20, 0x40), prgROMSizeUnit, chrROMSizeUnit, 0x42, "horizontal"},
		{"trainer", newTestImage(1, 1, 0x04, 0x00), prgROMSizeUnit, chrROMSizeUnit, 0, "horizontal"},
	}
	for _, test := range tests {
		c, err := NewCartridge(test.data)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if len(c.PRG()) != test.prg || len(c.CHR()) != test.chr {
			t.Errorf("%s: PRG=%d CHR=%d, want PRG=%d CHR=%d", test.name, len(c.PRG()), len(c.CHR()), test.prg, test.chr)
		}
		if c.MapperNumber() != test.mapper {
			t.Errorf("%s: mapper got=%d, want=%d", test.name, c.MapperNumber(), test.mapper)
		}
		if c.Mirroring() != test.mirroring {
			t.Errorf("%s: mirroring got=%s, want=%s", test.name, c.Mirroring(), test.mirroring)
		}
		// The trainer is skipped, PRG starts right after it.
		if c.PRG()[0] != 0x11 || c.PRG()[len(c.PRG())-1] != 0x11 {
			t.Errorf("%s: PRG is misaligned", test.name)
		}
		if test.chr > 0 && c.CHR()[0] != 0x22 {
			t.Errorf("%s: CHR is misaligned", test.name)
		}
	}
}

func TestNewCartridgeErrors(t *testing.T) {
	truncated := newTestImage(2, 1, 0x00, 0x00)
	truncated = truncated[:len(truncated)-1]
	badMagic := newTestImage(1, 1, 0x00, 0x00)
	badMagic[3] = 0x00
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrInvalidHeader},
		{"short header", []byte{'N', 'E', 'S', msDOSEOF, 1}, ErrInvalidHeader},
		{"bad magic", badMagic, ErrInvalidHeader},
		{"NES 2.0", newTestImage(1, 1, 0x00, 0x08), ErrUnsupportedFormat},
		{"truncated", truncated, ErrTruncatedImage},
		{"short PRG", newTestImage(1, 0, 0x00, 0x00)[:inesHeaderSizeBytes+prgROMSizeUnit-1], ErrTruncatedImage},
	}
	for _, test := range tests {
		if _, err := NewCartridge(test.data); !errors.Is(err, test.want) {
			t.Errorf("%s: got=%v, want=%v", test.name, err, test.want)
		}
	}
}

func TestReadCartridge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, newTestImage(1, 1, 0x02, 0x00), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := ReadCartridge(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.hasPRGRAM() || c.prgRAMSize() != prgRAMSizeUnit {
		t.Errorf("PRG RAM: has=%v size=%d", c.hasPRGRAM(), c.prgRAMSize())
	}
	if _, err := ReadCartridge(filepath.Join(t.TempDir(), "missing.nes")); err == nil {
		t.Errorf("missing file: got nil error")
	}
}

func TestNewMapper(t *testing.T) {
	for _, test := range []struct {
		name   string
		number byte
		prg    []byte
		want   error
	}{
		{"NROM-128", 0, make([]byte, prgROMSizeUnit), nil},
		{"NROM-256", 0, make([]byte, 2*prgROMSizeUnit), nil},
		{"NROM without PRG", 0, nil, ErrUnsupportedFormat},
		{"NROM with 3 banks", 0, make([]byte, 3*prgROMSizeUnit), ErrUnsupportedFormat},
		{"NROM with a partial bank", 0, make([]byte, prgROMSizeUnit+1), ErrUnsupportedFormat},
		{"UxROM", 2, make([]byte, 8*prgROMSizeUnit), ErrUnsupportedMapper},
	} {
		if _, err := NewMapper(test.number, test.prg); !errors.Is(err, test.want) {
			t.Errorf("%s: got=%v, want=%v", test.name, err, test.want)
		}
	}
}

func TestNewConsoleRejectsMapper(t *testing.T) {
	c, err := NewCartridge(newTestImage(1, 1, 0x10, 0x00))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewConsole(c, false); !errors.Is(err, ErrUnsupportedMapper) {
		t.Errorf("got=%v, want=%v", err, ErrUnsupportedMapper)
	}
}
