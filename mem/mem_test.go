package mem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	m := New(4096)

	assert.NoError(m.Write(0x100, 4, 0xdeadbeef))
	v, err := m.Read(0x100, 4)
	assert.NoError(err)
	assert.Equal(uint32(0xdeadbeef), v)

	v, err = m.Read(0x100, 2)
	assert.NoError(err)
	assert.Equal(uint32(0xbeef), v)

	v, err = m.Read(0x102, 2)
	assert.NoError(err)
	assert.Equal(uint32(0xdead), v)

	v, err = m.Read(0x100, 1)
	assert.NoError(err)
	assert.Equal(uint32(0xef), v)
}

func TestMisalignedAccessFaults(t *testing.T) {
	assert := assert.New(t)

	m := New(4096)

	_, err := m.Read(0x101, 2)
	assert.ErrorIs(err, ErrAddressMisaligned)

	_, err = m.Read(0x102, 4)
	assert.ErrorIs(err, ErrAddressMisaligned)

	err = m.Write(0x003, 4, 1)
	assert.ErrorIs(err, ErrAddressMisaligned)
}

func TestUnmappedAddressFaults(t *testing.T) {
	assert := assert.New(t)

	m := New(4096)

	_, err := m.Read(0x8000_0000, 4)
	assert.ErrorIs(err, ErrAccessFault)
}

func TestReadInstructionMapsFaults(t *testing.T) {
	assert := assert.New(t)

	m := New(4096)

	_, err := m.ReadInstruction(0x1)
	assert.ErrorIs(err, ErrInstructionAddressMisaligned)

	_, err = m.ReadInstruction(0x8000_0000)
	assert.ErrorIs(err, ErrInstructionAccessFault)
}

func TestConsoleDeviceEmitsLowByte(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	m := New(4096)
	m.devices[0].dev = &ConsoleDevice{Output: &out}

	assert.NoError(m.Write(ConsoleBase, 1, 'H'))
	assert.NoError(m.Write(ConsoleBase, 1, 'i'))
	assert.NoError(m.Write(ConsoleBase, 4, 0xffffff0a)) // low byte: '\n'

	v, err := m.Read(ConsoleBase, 1)
	assert.NoError(err)
	assert.Equal(uint32(0), v)

	assert.Equal("Hi\n", out.String())
}

func TestNewAtRelocatesConsole(t *testing.T) {
	assert := assert.New(t)

	m := NewAt(4096, 0x2000)

	c := m.Console()
	assert.NotNil(c)

	var out bytes.Buffer
	c.Output = &out
	assert.NoError(m.Write(0x2000, 1, 'x'))
	assert.Equal("x", out.String())

	_, err := m.Read(ConsoleBase, 1)
	assert.ErrorIs(err, ErrAccessFault)
}

func TestLoadImageFitsAndCopies(t *testing.T) {
	assert := assert.New(t)

	m := New(16)
	m.LoadImage(4, []byte{1, 2, 3})
	assert.Equal([]byte{0, 0, 0, 0, 1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}, m.RAM)
}
