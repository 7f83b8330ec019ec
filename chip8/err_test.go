package chip8

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// snapshot of everything a faulting cycle must leave alone
type machineState struct {
	mem   [MemorySize]uint8
	pc    uint16
	v     [16]uint8
	i     uint16
	stack Stack
	disp  [DisplayW * DisplayH]uint8
	draw  bool
}

func snapshot(c *Chip8) machineState {
	return machineState{
		mem:   c.mem,
		pc:    c.pc,
		v:     c.v,
		i:     c.i,
		stack: c.stack,
		disp:  c.disp,
		draw:  c.draw,
	}
}

var faultTestTable = []struct {
	name    string
	program []byte
	before  func(c *Chip8)
	want    error
}{
	{
		name:    "unknown 0NNN",
		program: []byte{0x01, 0x23},
		want:    ErrDecode,
	},
	{
		name:    "zero word",
		program: []byte{0x00, 0x00},
		want:    ErrDecode,
	},
	{
		name:    "5XY1",
		program: []byte{0x51, 0x21},
		want:    ErrDecode,
	},
	{
		name:    "8XY8",
		program: []byte{0x81, 0x28},
		want:    ErrDecode,
	},
	{
		name:    "EXFF",
		program: []byte{0xE1, 0xFF},
		want:    ErrDecode,
	},
	{
		name:    "FX99",
		program: []byte{0xF1, 0x99},
		want:    ErrDecode,
	},
	{
		name:    "return on empty stack",
		program: []byte{0x00, 0xEE},
		want:    ErrStackEmpty,
	},
	{
		name:    "call on full stack",
		program: []byte{0x22, 0x00},
		before: func(c *Chip8) {
			for n := 0; n < StackLimit; n++ {
				c.stack.Push(uint16(0x300 + 2*n))
			}
		},
		want: ErrStackFull,
	},
	{
		name:    "draw past memory",
		program: []byte{0xD0, 0x15},
		before: func(c *Chip8) {
			c.i = 0xffd
		},
		want: ErrMemoryBounds,
	},
	{
		name:    "bcd past memory",
		program: []byte{0xF0, 0x33},
		before: func(c *Chip8) {
			c.i = 0xffe
		},
		want: ErrMemoryBounds,
	},
	{
		name:    "dump past memory",
		program: []byte{0xF3, 0x55},
		before: func(c *Chip8) {
			c.i = 0xffd
		},
		want: ErrMemoryBounds,
	},
	{
		name:    "load past memory",
		program: []byte{0xFF, 0x65},
		before: func(c *Chip8) {
			c.i = 0x1008
			c.v[3] = 9
		},
		want: ErrMemoryBounds,
	},
	{
		name:    "skip on key out of range",
		program: []byte{0xE3, 0x9E},
		before: func(c *Chip8) {
			c.v[3] = 0x10
		},
		want: ErrKeyInvalid,
	},
	{
		name:    "skip-not on key out of range",
		program: []byte{0xE3, 0xA1},
		before: func(c *Chip8) {
			c.v[3] = 0xff
		},
		want: ErrKeyInvalid,
	},
}

func TestFaults(t *testing.T) {
	for _, test := range faultTestTable {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)

			c := newTestChip8(test.program)
			if test.before != nil {
				test.before(c)
			}
			before := snapshot(c)

			err := c.RunCycle(noKeys)
			assert.ErrorIs(err, test.want)

			var fault *ErrFault
			if assert.True(errors.As(err, &fault)) {
				assert.Equal(uint16(ProgramOffset), fault.PC)
				assert.Equal(uint16(test.program[0])<<8|uint16(test.program[1]), fault.Word)
			}

			assert.Equal(before, snapshot(c))
			assert.Empty(c.History())
		})
	}
}

func TestFaultHalts(t *testing.T) {
	assert := assert.New(t)

	c := newTestChip8([]byte{0x00, 0xEE, 0x60, 0x01})
	err := c.RunCycle(noKeys)
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(err, c.Fault())

	c.pc = 0x202
	assert.Equal(err, c.RunCycle(noKeys))
	assert.Equal(uint8(0), c.V(0))

	c.Reset()
	assert.NoError(c.Fault())
}

func TestFetchPastMemory(t *testing.T) {
	assert := assert.New(t)

	// 200: LD V0,#FF; 202: JP V0,#F01 -> 0x1000
	c := newTestChip8([]byte{0x60, 0xFF, 0xBF, 0x01})
	assert.NoError(c.RunCycle(noKeys))
	assert.NoError(c.RunCycle(noKeys))
	assert.Equal(uint16(0x1000), c.PC())

	err := c.RunCycle(noKeys)
	assert.ErrorIs(err, ErrMemoryBounds)
	var em ErrMemory
	if assert.True(errors.As(err, &em)) {
		assert.Equal(uint16(0x1000), em.Addr)
		assert.Equal(2, em.Len)
	}
}

func TestErrOpcode(t *testing.T) {
	assert := assert.New(t)

	err := ErrOpcode(0x0123)
	assert.ErrorIs(err, ErrDecode)
	assert.ErrorIs(err, ErrOpcode(0xffff))
	assert.NotErrorIs(err, ErrStackFull)
	assert.Contains(err.Error(), "0123")
}
