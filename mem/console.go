package mem

import (
	"bytes"
	"io"
)

// ConsoleDevice is the default character-output MMIO device at
// ConsoleBase. Byte and word writes emit the low byte of the written
// value; reads always return 0.
//
// A word write only emits one byte because the device models a single
// character-output port: software sized for a byte-wide UART still
// works whether it issues sb or sw, and there's no second byte of the
// write that means anything.
type ConsoleDevice struct {
	Output io.Writer // defaults to an internal buffer when nil
	buf    bytes.Buffer
}

var _ Device = (*ConsoleDevice)(nil)

func (c *ConsoleDevice) Read(offset uint32, width int) (uint32, error) {
	return 0, nil
}

func (c *ConsoleDevice) Write(offset uint32, width int, value uint32) error {
	b := byte(value)
	if c.Output != nil {
		_, err := c.Output.Write([]byte{b})
		return err
	}
	c.buf.WriteByte(b)
	return nil
}

// String returns everything written to the console so far when no
// external Output has been attached.
func (c *ConsoleDevice) String() string {
	return c.buf.String()
}
