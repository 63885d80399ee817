package nes

import (
	"image"
	"math/rand"
	"time"

	"github.com/golang/glog"
)

// A byte in 1..15 is written here before every step, programs use it as a random source.
const randomAddress uint16 = 0x00FE

// Console is a machine a host can drive.
type Console interface {
	Reset() error
	Step() (int, error)
	Run() error
	Halted() bool
	Registers() Registers
	Flags() Flags
	Frame() (*image.RGBA, bool)
	SetButtons(buttons [8]bool)
}

// NesConsole wires the CPU with its host side devices: the controller cell, the random cell and the display.
type NesConsole struct {
	cpu          *CPU
	display      *Display
	controller   *Controller
	rng          *rand.Rand
	buffer       *image.RGBA
	lastFrame    int
	currentFrame int
}

func newNesConsole(bus *CPUBus) (*NesConsole, error) {
	cpu, err := NewCPU(bus)
	if err != nil {
		return nil, err
	}
	display := NewDisplay(bus)
	_, buffer := display.refresh()
	return &NesConsole{
		cpu:        cpu,
		display:    display,
		controller: NewController(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		buffer:     buffer,
	}, nil
}

// NewConsole creates a console from a cartridge, debug gives an interactive DebugConsole.
func NewConsole(cartridge *Cartridge, debug bool) (Console, error) {
	mapper, err := NewMapper(cartridge.MapperNumber(), cartridge.PRG())
	if err != nil {
		return nil, err
	}
	c, err := newNesConsole(NewCPUBus(NewRAM(), mapper))
	if err != nil {
		return nil, err
	}
	return wrap(c, debug), nil
}

// NewConsoleFromProgram creates a console without cartridge, program is loaded at base and run from there.
func NewConsoleFromProgram(base uint16, program []byte, debug bool) (Console, error) {
	c, err := newNesConsole(NewCPUBus(NewRAM(), nil))
	if err != nil {
		return nil, err
	}
	if err := c.cpu.LoadProgram(base, program); err != nil {
		return nil, err
	}
	return wrap(c, debug), nil
}

func wrap(c *NesConsole, debug bool) Console {
	if debug {
		glog.Infoln("Starting debug console")
		return newDebugConsole(c)
	}
	return c
}

func (c *NesConsole) Reset() error {
	c.lastFrame = 0
	c.currentFrame = 0
	c.display.Reset()
	return c.cpu.Reset()
}

// hook feeds the input cells and samples the display, this runs before every instruction.
func (c *NesConsole) hook(cpu *CPU) error {
	if err := c.controller.write(cpu.bus); err != nil {
		return err
	}
	if err := cpu.bus.write(randomAddress, byte(c.rng.Intn(15)+1)); err != nil {
		return err
	}
	c.refresh()
	return nil
}

func (c *NesConsole) refresh() {
	if ok, f := c.display.refresh(); ok {
		c.currentFrame++
		c.buffer = f
	}
}

// Step executes an instruction, the input cells are left alone once the CPU halted.
func (c *NesConsole) Step() (int, error) {
	if c.cpu.Halted() {
		return 0, ErrHalted
	}
	if err := c.hook(c.cpu); err != nil {
		return 0, err
	}
	return c.cpu.Step()
}

// Run executes until the CPU halts.
func (c *NesConsole) Run() error {
	if err := c.cpu.Run(c.hook); err != nil {
		return err
	}
	// Pick up what the last instruction drew.
	c.refresh()
	return nil
}

func (c *NesConsole) Halted() bool {
	return c.cpu.Halted()
}

func (c *NesConsole) Registers() Registers {
	return c.cpu.Registers()
}

func (c *NesConsole) Flags() Flags {
	return c.cpu.Flags()
}

// Frame returns the display and whether it changed since the last call.
func (c *NesConsole) Frame() (*image.RGBA, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.buffer, true
	} else {
		return c.buffer, false
	}
}

func (c *NesConsole) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}
