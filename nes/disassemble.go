package nes

import (
	"fmt"
	"strings"
)

// Disassemble formats the instruction at address like nestest.log, e.g. "8000  A9 10     LDA #$10".
// It only reads memory, the CPU state never changes.
func (c *CPU) Disassemble(address uint16) (string, uint16) {
	opcode, err := c.bus.read(address)
	if err != nil {
		return fmt.Sprintf("%04X  ??        %v", address, err), 1
	}
	instruction := c.instructions[opcode]
	if instruction.execute == nil {
		return fmt.Sprintf("%04X  %02X        ???", address, opcode), 1
	}
	raw := make([]byte, instruction.size)
	raw[0] = opcode
	for i := uint16(1); i < instruction.size; i++ {
		raw[i], _ = c.bus.read(address + i)
	}
	hex := make([]string, len(raw))
	for i, b := range raw {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	line := fmt.Sprintf("%04X  %-8s  %s %s", address, strings.Join(hex, " "), instruction.mnemonic,
		formatOperand(instruction.mode, address, raw))
	return strings.TrimRight(line, " "), instruction.size
}

func formatOperand(mode addressingMode, address uint16, raw []byte) string {
	var word uint16
	if len(raw) == 3 {
		word = uint16(raw[2])<<8 | uint16(raw[1])
	}
	switch mode {
	case accumulator:
		return "A"
	case immediate:
		return fmt.Sprintf("#$%02X", raw[1])
	case zeropage:
		return fmt.Sprintf("$%02X", raw[1])
	case zeropageX:
		return fmt.Sprintf("$%02X,X", raw[1])
	case zeropageY:
		return fmt.Sprintf("$%02X,Y", raw[1])
	case relative:
		return fmt.Sprintf("$%04X", address+2+uint16(int8(raw[1])))
	case absolute:
		return fmt.Sprintf("$%04X", word)
	case absoluteX:
		return fmt.Sprintf("$%04X,X", word)
	case absoluteY:
		return fmt.Sprintf("$%04X,Y", word)
	case indirect:
		return fmt.Sprintf("($%04X)", word)
	case indirectX:
		return fmt.Sprintf("($%02X,X)", raw[1])
	case indirectY:
		return fmt.Sprintf("($%02X),Y", raw[1])
	}
	return ""
}

func (c *CPU) trace(address uint16) string {
	line, _ := c.Disassemble(address)
	r := c.Registers()
	r.PC = address
	return fmt.Sprintf("%-40s %v", line, r)
}

// Trace disassembles the next instruction with the current registers.
func (c *CPU) Trace() string {
	return c.trace(c.pc)
}
