package nes

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// CPU emulates the 6502 - the NES uses a custom one made by RICOH, without decimal mode.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)

const CPUFrequency = 1789773

const stackPointerStart byte = 0xFF

// The two unused bits of the status byte, they are pushed as 1s by PHP and BRK.
const reservedFlags byte = 0x30

type status struct {
	c bool // carry
	z bool // zero
	i bool // IRQ disable
	d bool // decimal - stored but unused on NES
	v bool // overflow
	n bool // negative
	b bool // break - set by BRK, it halts the CPU and is never part of the status byte
}

// encode encodes the status to a byte, the reserved bits are 0.
func (s *status) encode() byte {
	var res byte
	if s.c {
		res |= (1 << 0)
	}
	if s.z {
		res |= (1 << 1)
	}
	if s.i {
		res |= (1 << 2)
	}
	if s.d {
		res |= (1 << 3)
	}
	if s.v {
		res |= (1 << 6)
	}
	if s.n {
		res |= (1 << 7)
	}
	return res
}

// decodeFrom decodes a byte to the status, the reserved bits are ignored.
func (s *status) decodeFrom(data byte) {
	s.c = (data>>0)&1 == 1
	s.z = (data>>1)&1 == 1
	s.i = (data>>2)&1 == 1
	s.d = (data>>3)&1 == 1
	s.v = (data>>6)&1 == 1
	s.n = (data>>7)&1 == 1
}

// Flags is a read-only view of the processor status.
type Flags struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Overflow         bool
	Negative         bool
}

// Registers is a read-only snapshot of the CPU registers.
type Registers struct {
	A  byte
	X  byte
	Y  byte
	S  byte
	PC uint16
	P  byte
}

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X", r.A, r.X, r.Y, r.P, r.S, r.PC)
}

// StepHook is called before every instruction fetch by CPU.Run.
// It may read and write memory through the CPU, returning an error stops the run.
type StepHook func(c *CPU) error

type CPU struct {
	p             *status // Processor status flag bits
	a             byte    // Accumulator register
	x             byte    // Index register
	y             byte    // Index register
	pc            uint16  // Program counter
	s             byte    // Stack pointer
	lastExecution string  // For debug
	bus           *CPUBus
	instructions  []instruction
	halted        bool
}

// NewCPU creates a new CPU and resets it.
func NewCPU(bus *CPUBus) (*CPU, error) {
	c := &CPU{
		p:   &status{},
		bus: bus,
	}
	c.instructions = c.createInstructions()
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset clears registers and flags and loads the PC from the reset vector.
func (c *CPU) Reset() error {
	data, err := c.bus.read16(resetVector)
	if err != nil {
		return err
	}
	c.a = 0
	c.x = 0
	c.y = 0
	c.s = stackPointerStart
	*c.p = status{}
	c.pc = data
	c.halted = false
	c.lastExecution = ""
	glog.Infof("CPU reset, PC=0x%04x", c.pc)
	return nil
}

// LoadProgram copies the program to base and points the reset vector at it, then resets.
func (c *CPU) LoadProgram(base uint16, program []byte) error {
	if err := c.bus.writeSlice(base, program); err != nil {
		return err
	}
	if err := c.bus.writeSlice(resetVector, []byte{byte(base), byte(base >> 8)}); err != nil {
		return err
	}
	glog.Infof("Loaded %d bytes at 0x%04x", len(program), base)
	return c.Reset()
}

// setN sets whether the x is negative or positive.
func (c *CPU) setN(x byte) {
	c.p.n = x&0x80 != 0
}

// setZ sets whether the x is 0 or not.
func (c *CPU) setZ(x byte) {
	c.p.z = x == 0
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) error {
	if err := c.bus.write(stackPageBase|uint16(c.s), x); err != nil {
		return err
	}
	c.s--
	return nil
}

// push16 pushes the high byte first.
func (c *CPU) push16(x uint16) error {
	if err := c.push(byte(x >> 8)); err != nil {
		return err
	}
	return c.push(byte(x & 0xFF))
}

// pop pops data from stack.
func (c *CPU) pop() (byte, error) {
	c.s++
	return c.bus.read(stackPageBase | uint16(c.s))
}

func (c *CPU) pop16() (uint16, error) {
	l, err := c.pop()
	if err != nil {
		return 0, err
	}
	h, err := c.pop()
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// peek reads the top of the stack without popping.
func (c *CPU) peek() (byte, error) {
	return c.bus.read(stackPageBase | uint16(c.s+1))
}

// Step performs the instruction cycle - fetch, decode, execute.
// Any error halts the CPU for good.
func (c *CPU) Step() (int, error) {
	if c.halted {
		return 0, ErrHalted
	}
	cycles, err := c.step()
	if err != nil {
		c.halted = true
		return 0, err
	}
	if c.p.b {
		c.halted = true
		glog.Infof("CPU halted by BRK, PC=0x%04x", c.pc)
	}
	return cycles, nil
}

func (c *CPU) step() (int, error) {
	address := c.pc
	opcode, err := c.bus.read(c.pc)
	if err != nil {
		return 0, err
	}
	c.pc++
	instruction := c.instructions[opcode]
	if instruction.execute == nil {
		return 0, fmt.Errorf("%w: opcode=0x%02x, address=0x%04x", ErrUnknownOpcode, opcode, address)
	}
	if glog.V(2) {
		glog.Infof("%s", c.trace(address))
	}
	c.lastExecution = fmt.Sprintf("PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, opcode=0x%02x, mnemonic=%s, mode=%v",
		address, c.a, c.x, c.y, c.s, opcode, instruction.mnemonic, instruction.mode)
	before := c.pc
	if err := instruction.execute(instruction.mode); err != nil {
		return 0, fmt.Errorf("%s at 0x%04x: %w", instruction.mnemonic, address, err)
	}
	// Jumps, branches and returns set the PC by themselves.
	if c.pc == before {
		c.pc += instruction.size - 1
	}
	return instruction.cycles, nil
}

// Run steps until the CPU halts. hook is called before every step, it can be nil.
func (c *CPU) Run(hook StepHook) error {
	for !c.halted {
		if hook != nil {
			if err := hook(c); err != nil {
				if errors.Is(err, ErrStopRequested) {
					return nil
				}
				return err
			}
		}
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Halted reports whether the CPU stopped, by BRK or by an error.
func (c *CPU) Halted() bool {
	return c.halted
}

// Registers returns a snapshot of the registers.
func (c *CPU) Registers() Registers {
	return Registers{A: c.a, X: c.x, Y: c.y, S: c.s, PC: c.pc, P: c.p.encode()}
}

// Flags returns a snapshot of the status flags.
func (c *CPU) Flags() Flags {
	return Flags{
		Carry:            c.p.c,
		Zero:             c.p.z,
		InterruptDisable: c.p.i,
		Decimal:          c.p.d,
		Overflow:         c.p.v,
		Negative:         c.p.n,
	}
}

// Read reads memory through the bus, for hosts.
func (c *CPU) Read(address uint16) (byte, error) {
	return c.bus.read(address)
}

// Write writes memory through the bus, for hosts.
func (c *CPU) Write(address uint16, data byte) error {
	return c.bus.write(address, data)
}
