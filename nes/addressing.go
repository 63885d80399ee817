package nes

import "fmt"

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

var addressingModeNames = [...]string{
	implied:     "implied",
	accumulator: "accumulator",
	immediate:   "immediate",
	zeropage:    "zeropage",
	zeropageX:   "zeropage,X",
	zeropageY:   "zeropage,Y",
	relative:    "relative",
	absolute:    "absolute",
	absoluteX:   "absolute,X",
	absoluteY:   "absolute,Y",
	indirect:    "indirect",
	indirectX:   "(indirect,X)",
	indirectY:   "(indirect),Y",
}

func (m addressingMode) String() string {
	if 0 <= int(m) && int(m) < len(addressingModeNames) {
		return addressingModeNames[m]
	}
	return fmt.Sprintf("addressingMode(%d)", int(m))
}

// operandAddress resolves the effective address of the operand.
// The PC must point the byte right after the opcode.
// Asking an address for implied or accumulator is a bug in the instruction table, so it panics.
func (c *CPU) operandAddress(mode addressingMode) (uint16, error) {
	switch mode {
	case immediate:
		return c.pc, nil
	case zeropage:
		data, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		return uint16(data), nil
	case zeropageX:
		data, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		// If the address exceeds 0xFF (page crossed), back to 0x00
		return uint16(data + c.x), nil
	case zeropageY:
		data, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		return uint16(data + c.y), nil
	case relative:
		data, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		// Relative will look up a signed value, 1 is the size of the operand.
		return c.pc + 1 + uint16(int8(data)), nil
	case absolute:
		return c.bus.read16(c.pc)
	case absoluteX:
		data, err := c.bus.read16(c.pc)
		if err != nil {
			return 0, err
		}
		return data + uint16(c.x), nil
	case absoluteY:
		data, err := c.bus.read16(c.pc)
		if err != nil {
			return 0, err
		}
		return data + uint16(c.y), nil
	case indirect:
		p, err := c.bus.read16(c.pc)
		if err != nil {
			return 0, err
		}
		return c.bus.read16(p)
	case indirectX:
		p, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		// The pointer never leaves the zero page.
		return c.bus.read16Wrap(uint16(p + c.x))
	case indirectY:
		p, err := c.bus.read(c.pc)
		if err != nil {
			return 0, err
		}
		data, err := c.bus.read16Wrap(uint16(p))
		if err != nil {
			return 0, err
		}
		return data + uint16(c.y), nil
	}
	panic(fmt.Sprintf("no operand address for %v addressing mode", mode))
}

// operand reads the operand value, accumulator mode reads A.
func (c *CPU) operand(mode addressingMode) (byte, error) {
	if mode == accumulator {
		return c.a, nil
	}
	address, err := c.operandAddress(mode)
	if err != nil {
		return 0, err
	}
	return c.bus.read(address)
}
