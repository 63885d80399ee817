package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyane/j6502/nes"
)

// getKeys gets the state of keyboard, WASD or arrows for directions, J for primary.
func getKeys(window *glfw.Window) [8]bool {
	pressed := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	var keys [8]bool
	keys[nes.ButtonRight] = pressed(glfw.KeyD, glfw.KeyRight)
	keys[nes.ButtonLeft] = pressed(glfw.KeyA, glfw.KeyLeft)
	keys[nes.ButtonDown] = pressed(glfw.KeyS, glfw.KeyDown)
	keys[nes.ButtonUp] = pressed(glfw.KeyW, glfw.KeyUp)
	keys[nes.ButtonStart] = pressed(glfw.KeyG)
	keys[nes.ButtonSelect] = pressed(glfw.KeyF)
	keys[nes.ButtonB] = pressed(glfw.KeyH)
	keys[nes.ButtonA] = pressed(glfw.KeyJ)
	return keys
}
