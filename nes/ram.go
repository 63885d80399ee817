package nes

// RAM is the whole 64KB backing store behind the CPU bus.
// Mirroring is the bus's business, RAM is indexed with raw addresses.
type RAM struct {
	data [0x10000]byte
}

// NewRAM creates a zeroed RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// read reads data
func (r *RAM) read(address uint16) byte {
	return r.data[address]
}

// write writes data
func (r *RAM) write(address uint16, x byte) {
	r.data[address] = x
}
