package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"

	"github.com/golang/glog"

	"github.com/jyane/j6502/nes"
	"github.com/jyane/j6502/ui"
)

var (
	path       = flag.String("path", "./rom/snake.nes", "path to an iNES ROM file, or a raw program with -raw")
	raw        = flag.Bool("raw", false, "treat -path as a raw program loaded at -base")
	base       = flag.String("base", "0x0600", "load address of a raw program")
	width      = flag.Int("width", 32*10, "widow width")
	height     = flag.Int("height", 32*10, "widow height")
	frequency  = flag.Int("frequency", nes.CPUFrequency, "CPU cycles per second in the window")
	headless   = flag.Bool("headless", false, "run without a window and print the registers at the end")
	maxSteps   = flag.Int("max-steps", 0, "stop a headless run after this many steps, 0 means no limit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run as debug mode")
)

func init() {
	runtime.LockOSThread()
}

func newConsole() (nes.Console, error) {
	if *raw {
		address, err := strconv.ParseUint(*base, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("Invalid -base %q: %w", *base, err)
		}
		program, err := os.ReadFile(*path)
		if err != nil {
			return nil, err
		}
		return nes.NewConsoleFromProgram(uint16(address), program, *debug)
	}
	cartridge, err := nes.ReadCartridge(*path)
	if err != nil {
		return nil, err
	}
	return nes.NewConsole(cartridge, *debug)
}

// runHeadless runs the console without a window.
func runHeadless(console nes.Console) error {
	if *maxSteps <= 0 {
		return console.Run()
	}
	for i := 0; i < *maxSteps && !console.Halted(); i++ {
		if _, err := console.Step(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	console, err := newConsole()
	if err != nil {
		glog.Fatalln("Failed to initiate Console: ", err)
	}
	if !*headless {
		ui.Start(console, *width, *height, *frequency)
		return
	}
	if err := runHeadless(console); err != nil {
		glog.Errorln("Console stopped: ", err)
	}
	fmt.Printf("%v\n%+v\n", console.Registers(), console.Flags())
}
