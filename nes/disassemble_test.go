package nes

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	c := newTestCPU(t,
		0xA9, 0x10, //       8000
		0x8D, 0x10, 0x00, // 8002
		0xD0, 0xFC, //       8005
		0x0A,             // 8007
		0x6C, 0xFF, 0x10, // 8008
		0xB1, 0x20, //       800B
		0xEA, //             800D
		0x02, //             800E
		0x00, //             800F
	)
	want := []string{
		"8000  A9 10     LDA #$10",
		"8002  8D 10 00  STA $0010",
		"8005  D0 FC     BNE $8003",
		"8007  0A        ASL A",
		"8008  6C FF 10  JMP ($10FF)",
		"800B  B1 20     LDA ($20),Y",
		"800D  EA        NOP",
		"800E  02        ???",
		"800F  00        BRK",
	}
	address := uint16(0x8000)
	for _, w := range want {
		got, size := c.Disassemble(address)
		if got != w {
			t.Errorf("Disassemble(0x%04x): got=%q, want=%q", address, got, w)
		}
		address += size
	}
	if address != 0x8010 {
		t.Errorf("end address: got=0x%04x, want=0x8010", address)
	}
}

func TestTraceKeepsState(t *testing.T) {
	c := newTestCPU(t, 0xA2, 0x05)
	before := c.Registers()
	got := c.Trace()
	if !strings.HasPrefix(got, "8000  A2 05     LDX #$05") {
		t.Errorf("Trace: got=%q", got)
	}
	if !strings.HasSuffix(got, "A:00 X:00 Y:00 P:00 SP:FF PC:8000") {
		t.Errorf("Trace: got=%q", got)
	}
	if after := c.Registers(); after != before {
		t.Errorf("Trace changed registers: got=%v, want=%v", after, before)
	}
}
