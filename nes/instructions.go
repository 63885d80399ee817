package nes

// Instructions of the 6502, each resolves its own operand from the addressing mode.
// http://obelisk.me.uk/6502/reference.html

// modify applies f to A (accumulator mode) or to the memory operand and stores it back.
func (c *CPU) modify(mode addressingMode, f func(byte) byte) error {
	if mode == accumulator {
		c.a = f(c.a)
		c.setN(c.a)
		c.setZ(c.a)
		return nil
	}
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	x, err := c.bus.read(address)
	if err != nil {
		return err
	}
	x = f(x)
	if err := c.bus.write(address, x); err != nil {
		return err
	}
	c.setN(x)
	c.setZ(x)
	return nil
}

// add adds data and the carry to A, SBC reuses this with the inverted data.
func (c *CPU) add(data byte) {
	var carry uint16 = 0
	if c.p.c {
		carry = 1
	}
	sum := uint16(c.a) + uint16(data) + carry
	res := byte(sum)
	c.p.c = sum > 0xFF
	// http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
	c.p.v = (c.a^res)&(data^res)&0x80 != 0
	c.a = res
	c.setN(c.a)
	c.setZ(c.a)
}

// compare sets flags for register - data.
func (c *CPU) compare(register byte, mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.p.c = register >= data
	c.setN(register - data)
	c.setZ(register - data)
	return nil
}

// branch jumps to the relative address when cond holds.
func (c *CPU) branch(mode addressingMode, cond bool) error {
	if !cond {
		return nil
	}
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.pc = address
	return nil
}

// store writes x to the operand address.
func (c *CPU) store(mode addressingMode, x byte) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	return c.bus.write(address, x)
}

// ADC - Add with Carry.
func (c *CPU) adc(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.add(data)
	return nil
}

// AND - And.
func (c *CPU) and(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.a = c.a & data
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// ASL - Arithmetic Shift Left.
func (c *CPU) asl(mode addressingMode) error {
	return c.modify(mode, func(x byte) byte {
		c.p.c = (x>>7)&1 == 1
		return x << 1
	})
}

// BCC - Branch on Carry Clear.
func (c *CPU) bcc(mode addressingMode) error {
	return c.branch(mode, !c.p.c)
}

// BCS - Branch on Carry Set.
func (c *CPU) bcs(mode addressingMode) error {
	return c.branch(mode, c.p.c)
}

// BEQ - Branch on Equal.
func (c *CPU) beq(mode addressingMode) error {
	return c.branch(mode, c.p.z)
}

// BIT - test BITS.
// N and V come from the memory, not from the result.
func (c *CPU) bit(mode addressingMode) error {
	x, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.setN(x)
	c.setZ(c.a & x)
	c.p.v = (x>>6)&1 == 1
	return nil
}

// BMI - Branch on Minus.
func (c *CPU) bmi(mode addressingMode) error {
	return c.branch(mode, c.p.n)
}

// BNE - Branch on Not Equal.
func (c *CPU) bne(mode addressingMode) error {
	return c.branch(mode, !c.p.z)
}

// BPL - Branch on Plus.
func (c *CPU) bpl(mode addressingMode) error {
	return c.branch(mode, !c.p.n)
}

// BRK - Break Interrupt.
// Pushes the address right after the opcode, the engine halts once the vector is loaded.
func (c *CPU) brk(mode addressingMode) error {
	if err := c.push16(c.pc); err != nil {
		return err
	}
	if err := c.push(c.p.encode() | reservedFlags); err != nil {
		return err
	}
	c.p.i = true
	data, err := c.bus.read16(breakVector)
	if err != nil {
		return err
	}
	c.pc = data
	c.p.b = true
	return nil
}

// BVC - Branch on Overflow Clear.
func (c *CPU) bvc(mode addressingMode) error {
	return c.branch(mode, !c.p.v)
}

// BVS - Branch on Overflow Set.
func (c *CPU) bvs(mode addressingMode) error {
	return c.branch(mode, c.p.v)
}

// CLC - Clear Carry.
func (c *CPU) clc(mode addressingMode) error {
	c.p.c = false
	return nil
}

// CLD - Clear Decimal.
func (c *CPU) cld(mode addressingMode) error {
	c.p.d = false
	return nil
}

// CLI - Clear Interrupt.
func (c *CPU) cli(mode addressingMode) error {
	c.p.i = false
	return nil
}

// CLV - Clear Overflow.
func (c *CPU) clv(mode addressingMode) error {
	c.p.v = false
	return nil
}

// CMP - Compare Accumulator.
func (c *CPU) cmp(mode addressingMode) error {
	return c.compare(c.a, mode)
}

// CPX - Compare X register.
func (c *CPU) cpx(mode addressingMode) error {
	return c.compare(c.x, mode)
}

// CPY - Compare Y register.
func (c *CPU) cpy(mode addressingMode) error {
	return c.compare(c.y, mode)
}

// DEC - Decrement Memory.
func (c *CPU) dec(mode addressingMode) error {
	return c.modify(mode, func(x byte) byte {
		return x - 1
	})
}

// DEX - Decrement X Register.
func (c *CPU) dex(mode addressingMode) error {
	c.x--
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

// DEY - Decrement Y Register.
func (c *CPU) dey(mode addressingMode) error {
	c.y--
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

// EOR - Bitwise Exclusive OR.
func (c *CPU) eor(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.a = c.a ^ data
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// INC - Increment Memory.
func (c *CPU) inc(mode addressingMode) error {
	return c.modify(mode, func(x byte) byte {
		return x + 1
	})
}

// INX - Increment X Register.
func (c *CPU) inx(mode addressingMode) error {
	c.x++
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

// INY - Increment Y Register.
func (c *CPU) iny(mode addressingMode) error {
	c.y++
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

// JMP - Jump.
// JMP ($xxFF) reads the high byte from $xx00, the 6502 never carries into the pointer's high byte.
func (c *CPU) jmp(mode addressingMode) error {
	if mode == indirect {
		p, err := c.bus.read16(c.pc)
		if err != nil {
			return err
		}
		data, err := c.bus.read16Wrap(p)
		if err != nil {
			return err
		}
		c.pc = data
		return nil
	}
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	c.pc = address
	return nil
}

// JSR - Jump to Subroutine.
// Pushes the address of the last byte of JSR, RTS adds 1.
func (c *CPU) jsr(mode addressingMode) error {
	address, err := c.operandAddress(mode)
	if err != nil {
		return err
	}
	if err := c.push16(c.pc + 1); err != nil {
		return err
	}
	c.pc = address
	return nil
}

// LDA - Load Accumulator.
func (c *CPU) lda(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.a = data
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// LDX - Load X Register.
func (c *CPU) ldx(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.x = data
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

// LDY - Load Y Register.
func (c *CPU) ldy(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.y = data
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

// LSR - Logical Shift Right.
func (c *CPU) lsr(mode addressingMode) error {
	return c.modify(mode, func(x byte) byte {
		c.p.c = x&1 == 1
		return x >> 1
	})
}

// NOP - No Operation.
func (c *CPU) nop(mode addressingMode) error {
	return nil
}

// ORA - Bitwise OR with Accumulator.
func (c *CPU) ora(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.a = c.a | data
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// PHA - Push Accumulator.
func (c *CPU) pha(mode addressingMode) error {
	return c.push(c.a)
}

// PHP - Push Processor Status.
func (c *CPU) php(mode addressingMode) error {
	return c.push(c.p.encode() | reservedFlags)
}

// PLA - Pull Accumulator.
func (c *CPU) pla(mode addressingMode) error {
	data, err := c.pop()
	if err != nil {
		return err
	}
	c.a = data
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// PLP - Pull Processor Status.
func (c *CPU) plp(mode addressingMode) error {
	data, err := c.pop()
	if err != nil {
		return err
	}
	c.p.decodeFrom(data)
	return nil
}

// ROL - Rotate Left.
func (c *CPU) rol(mode addressingMode) error {
	var carry byte = 0
	if c.p.c {
		carry = 1
	}
	return c.modify(mode, func(x byte) byte {
		c.p.c = (x>>7)&1 == 1
		return (x << 1) | carry
	})
}

// ROR - Rotate Right.
func (c *CPU) ror(mode addressingMode) error {
	var carry byte = 0
	if c.p.c {
		carry = 1
	}
	return c.modify(mode, func(x byte) byte {
		c.p.c = x&1 == 1
		return (x >> 1) | (carry << 7)
	})
}

// RTI - Return from Interrupt.
func (c *CPU) rti(mode addressingMode) error {
	p, err := c.pop()
	if err != nil {
		return err
	}
	c.p.decodeFrom(p)
	address, err := c.pop16()
	if err != nil {
		return err
	}
	c.pc = address
	return nil
}

// RTS - Return from Subroutine.
func (c *CPU) rts(mode addressingMode) error {
	address, err := c.pop16()
	if err != nil {
		return err
	}
	c.pc = address + 1
	return nil
}

// SBC - Subtract with carry.
// A - M - (1 - C) equals A + ^M + C.
func (c *CPU) sbc(mode addressingMode) error {
	data, err := c.operand(mode)
	if err != nil {
		return err
	}
	c.add(^data)
	return nil
}

// SEC - Set Carry.
func (c *CPU) sec(mode addressingMode) error {
	c.p.c = true
	return nil
}

// SED - Set Decimal.
// The flag is kept but ADC and SBC are always binary.
func (c *CPU) sed(mode addressingMode) error {
	c.p.d = true
	return nil
}

// SEI - Set Interrupt.
func (c *CPU) sei(mode addressingMode) error {
	c.p.i = true
	return nil
}

// STA - Store A Register.
func (c *CPU) sta(mode addressingMode) error {
	return c.store(mode, c.a)
}

// STX - Store X Register.
func (c *CPU) stx(mode addressingMode) error {
	return c.store(mode, c.x)
}

// STY - Store Y Register.
func (c *CPU) sty(mode addressingMode) error {
	return c.store(mode, c.y)
}

// TAX - Transfer A to X.
func (c *CPU) tax(mode addressingMode) error {
	c.x = c.a
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

// TAY - Transfer A to Y.
func (c *CPU) tay(mode addressingMode) error {
	c.y = c.a
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

// TSX - Transfer S to X.
// Only TXS leaves the flags alone, TSX loads a normal register.
func (c *CPU) tsx(mode addressingMode) error {
	c.x = c.s
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

// TXA - Transfer X to A.
func (c *CPU) txa(mode addressingMode) error {
	c.a = c.x
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// TXS - Transfer X to S.
func (c *CPU) txs(mode addressingMode) error {
	c.s = c.x
	return nil
}

// TYA - Transfer Y to A.
func (c *CPU) tya(mode addressingMode) error {
	c.a = c.y
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}
