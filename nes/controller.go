package nes

type button int

// Buttons a host can report, the index into the array given to Controller.Set.
const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// The controller is a single memory cell, programs poll it for the last key.
// Directions are reported as the ASCII code of W, S, A and D.
const inputAddress uint16 = 0x00FF

var keyCodes = map[button]byte{
	ButtonUp:    'w',
	ButtonDown:  's',
	ButtonLeft:  'a',
	ButtonRight: 'd',
}

type Controller struct {
	buttons [8]bool
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Set(buttons [8]bool) {
	c.buttons = buttons
}

// read returns the key code of the first pressed direction, ok is false if none is pressed.
// Up, Down, Left, Right in this order.
func (c *Controller) read() (byte, bool) {
	for _, b := range []button{ButtonUp, ButtonDown, ButtonLeft, ButtonRight} {
		if c.buttons[b] {
			return keyCodes[b], true
		}
	}
	return 0, false
}

// write latches the pressed key to the input cell, the cell keeps the last key otherwise.
func (c *Controller) write(bus *CPUBus) error {
	if code, ok := c.read(); ok {
		return bus.write(inputAddress, code)
	}
	return nil
}
