// Package ram provides a basic RAM implementation.
package ram

// RAM represents a block of RAM. Accesses outside of the
// block wrap around its size, and a zero sized block reads
// back as open bus (0xFF).
type RAM struct {
	data []byte
}

// NewRAM returns a new RAM of the given size.
func NewRAM(size uint32) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint32) uint8 {
	if len(r.data) == 0 {
		return 0xFF
	}
	return r.data[address%uint32(len(r.data))]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint32, value uint8) {
	if len(r.data) == 0 {
		return
	}
	r.data[address%uint32(len(r.data))] = value
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// Bytes returns a copy of the contents of the RAM.
func (r *RAM) Bytes() []byte {
	b := make([]byte, len(r.data))
	copy(b, r.data)
	return b
}

// Load copies data into the RAM, starting at address 0. Any
// excess data is ignored.
func (r *RAM) Load(data []byte) {
	copy(r.data, data)
}

// Clear zeroes the RAM.
func (r *RAM) Clear() {
	clear(r.data)
}
