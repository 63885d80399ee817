package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/jyane/j6502/nes"
)

const framesPerSecond = 60

// mainLoop runs frequency/60 cycles per frame and redraws when the console frame changed.
func mainLoop(window *glfw.Window, console nes.Console, s *screen, frequency int) error {
	cyclesPerFrame := frequency / framesPerSecond
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}
	ticker := time.NewTicker(time.Second / framesPerSecond)
	defer ticker.Stop()
	for range ticker.C {
		currentCycles := 0
		for currentCycles < cyclesPerFrame && !console.Halted() {
			cycles, err := console.Step()
			if err != nil {
				return err
			}
			// A debug console step may not run the CPU at all.
			if cycles == 0 {
				break
			}
			currentCycles += cycles
		}
		if image, ok := console.Frame(); ok {
			s.updateTexture(image)
		}
		s.draw()
		window.SwapBuffers()
		glfw.PollEvents()
		console.SetButtons(getKeys(window))
		if window.ShouldClose() || window.GetKey(glfw.KeyEscape) == glfw.Press {
			return nil
		}
		if console.Halted() {
			glog.Infof("Console halted: %v", console.Registers())
			// Keep the last frame on screen until the window is closed.
			for !window.ShouldClose() {
				glfw.WaitEvents()
			}
			return nil
		}
	}
	return nil
}

// Start is the main entrypoint.
func Start(console nes.Console, width int, height int, frequency int) {
	err := glfw.Init()
	if err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(width, height, "J6502", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	s, err := newScreen()
	if err != nil {
		glog.Fatalln(err)
	}
	if image, _ := console.Frame(); image != nil {
		s.updateTexture(image)
	}
	if err := mainLoop(window, console, s, frequency); err != nil {
		glog.Fatalln("Console stopped: ", err)
	}
}
