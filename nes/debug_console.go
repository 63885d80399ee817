package nes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DebugConsole a console for debugging, you can execute some commands through stdio.
// commands:
//
//	s [N|Ns|Nd]:
//	  execute step(s), Ns runs N seconds worth of cycles, Nd prints after every step.
//	p [c|s|m 0xADDR [N]]:
//	  print registers, cpu, stack or memory.
//	br 0xADDR:
//	  set a break point.
//	d [N]:
//	  disassemble N instructions from PC.
//	q:
//	  quit.
//	r:
//	  reset.
type DebugConsole struct {
	*NesConsole
	cycles      uint64
	breakpoints []uint16
	in          *bufio.Reader
	out         io.Writer
	prompt      bool
	quit        bool
}

func newDebugConsole(c *NesConsole) *DebugConsole {
	return &DebugConsole{
		NesConsole: c,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		prompt:     term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (c *DebugConsole) Reset() error {
	c.cycles = 0
	return c.NesConsole.Reset()
}

// Halted is true only after quit, a halted CPU can still be inspected and reset.
func (c *DebugConsole) Halted() bool {
	return c.quit
}

func (c *DebugConsole) step() (int, error) {
	cycles, err := c.NesConsole.Step()
	c.cycles += uint64(cycles)
	return cycles, err
}

func (c *DebugConsole) printstack() {
	for i := 0; i < 256; i++ {
		idx := stackPageBase | uint16(i)
		data, _ := c.cpu.Read(idx)
		fmt.Fprintf(c.out, "0x%04x: 0x%02x, ", idx, data)
		if i%8 == 7 {
			fmt.Fprintln(c.out)
		}
	}
	top, _ := c.cpu.peek()
	fmt.Fprintf(c.out, "S=0x%02x, top=0x%02x\n", c.cpu.s, top)
}

func (c *DebugConsole) printmemory(args []string) {
	var address, n int
	n = 16
	if len(args) < 3 {
		fmt.Fprintln(c.out, "usage: p m 0xADDR [N]")
		return
	}
	fmt.Sscanf(args[2], "0x%x", &address)
	if len(args) > 3 {
		n, _ = strconv.Atoi(args[3])
	}
	for i := 0; i < n; i++ {
		a := uint16(address + i)
		if i%16 == 0 {
			if i > 0 {
				fmt.Fprintln(c.out)
			}
			fmt.Fprintf(c.out, "%04X:", a)
		}
		data, _ := c.cpu.Read(a)
		fmt.Fprintf(c.out, " %02X", data)
	}
	fmt.Fprintln(c.out)
}

func (c *DebugConsole) basePrint() {
	fmt.Fprintln(c.out, "--------------------------------------------------")
	fmt.Fprintf(c.out, "Executed cycles: %d\n", c.cycles)
	fmt.Fprintf(c.out, "Rendered frame: %d\n", c.currentFrame)
	fmt.Fprintln(c.out, "Last: "+c.cpu.lastExecution)
	fmt.Fprintf(c.out, "CPU:  %v, halted=%v\n", c.cpu.Registers(), c.cpu.Halted())
	fmt.Fprintln(c.out, "Next: "+c.cpu.Trace())
}

func (c *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		c.basePrint()
	} else {
		switch args[1] {
		case "c", "cpu":
			fmt.Fprintf(c.out, "%+v\n%+v\n", c.cpu.Registers(), c.cpu.Flags())
		case "s", "stack":
			c.printstack()
		case "m", "mem":
			c.printmemory(args)
		}
	}
}

func (c *DebugConsole) checkBreak() bool {
	for i := 0; i < len(c.breakpoints); i++ {
		if c.breakpoints[i] == c.cpu.pc {
			fmt.Fprintf(c.out, "Break at: 0x%04x\n", c.breakpoints[i])
			return true
		}
	}
	return false
}

// stepN steps n times, it stops at a break point or when the CPU halts.
func (c *DebugConsole) stepN(n int, verbose bool) (int, error) {
	cycles := 0
	for i := 0; i < n; i++ {
		v, err := c.step()
		if verbose {
			c.basePrint()
		}
		if err != nil {
			return cycles, err
		}
		cycles += v
		if c.cpu.Halted() || c.checkBreak() {
			return cycles, nil
		}
	}
	return cycles, nil
}

func (c *DebugConsole) stepCommand(args []string) (int, error) {
	if len(args) < 2 {
		return c.step()
	} else {
		re := regexp.MustCompile("^([0-9]+)")
		if re.MatchString(args[1]) {
			num, _ := strconv.Atoi(re.FindString(args[1]))
			unit := args[1][len(args[1])-1]
			switch unit {
			case 's':
				// s means seconds but this doesn't execute 1 sec, this executes CPUFrequency * num cycles.
				steps := CPUFrequency * num
				cycles := 0
				for cycles < steps {
					v, err := c.step()
					if err != nil {
						return cycles, err
					}
					cycles += v
					if c.cpu.Halted() || c.checkBreak() {
						return cycles, nil
					}
				}
				return cycles, nil
			case 'd':
				// debug -> steps with debug messages.
				return c.stepN(num, true)
			default: // no unit -> step
				return c.stepN(num, false)
			}
		}
	}
	return 0, nil
}

func (c *DebugConsole) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: br 0xADDR")
	}
	var i int
	if _, err := fmt.Sscanf(args[1], "0x%x", &i); err != nil {
		return fmt.Errorf("Invalid break point %q: %w", args[1], err)
	}
	c.breakpoints = append(c.breakpoints, uint16(i))
	return nil
}

func (c *DebugConsole) disassembleCommand(args []string) {
	n := 8
	if len(args) > 1 {
		n, _ = strconv.Atoi(args[1])
	}
	address := c.cpu.pc
	for i := 0; i < n; i++ {
		line, size := c.cpu.Disassemble(address)
		fmt.Fprintln(c.out, line)
		address += size
	}
}

func (c *DebugConsole) quitCommand() {
	fmt.Fprintln(c.out, "Quitting.")
	c.quit = true
}

// Step reads a command and executes it, only step commands return cycles.
func (c *DebugConsole) Step() (int, error) {
	if c.prompt {
		fmt.Fprintf(c.out, "Debugger mode, 'q' to quit \n>> ")
	}
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line == "" {
		c.quitCommand()
		return 0, nil
	}
	if err != nil && err != io.EOF {
		return 0, err
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return 0, nil
	}
	command := args[0]
	switch command {
	case "p", "print":
		c.printCommand(args)
	case "s", "step":
		cycles, err := c.stepCommand(args)
		c.basePrint() // Print data before it die.
		if errors.Is(err, ErrHalted) {
			fmt.Fprintln(c.out, "CPU is halted, 'r' to reset.")
			return 0, nil
		}
		if err != nil {
			// The CPU halted itself, keep the debugger alive to inspect it.
			fmt.Fprintf(c.out, "CPU halted: %v\n", err)
			return cycles, nil
		}
		fmt.Fprintf(c.out, "Executed %d CPU cycles.\n", cycles)
		return cycles, nil
	case "br", "breakpoint":
		if err := c.breakPointCommand(args); err != nil {
			fmt.Fprintln(c.out, err)
		}
	case "d", "disasm":
		c.disassembleCommand(args)
	case "r", "reset":
		if err := c.Reset(); err != nil {
			return 0, err
		}
	case "q", "quit":
		c.quitCommand()
	default:
		fmt.Fprintf(c.out, "Unknown command %s\n", command)
	}
	// step command was not executed.
	return 0, nil
}

// Run reads commands until quit.
func (c *DebugConsole) Run() error {
	for !c.Halted() {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
