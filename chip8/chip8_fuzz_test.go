package chip8

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzRunCycle(f *testing.F) {
	for _, word := range []uint16{0x0000, 0x00E0, 0x00EE, 0x2200, 0xD01F, 0xFF55, 0xFF65, 0xF00A, 0xE09E} {
		f.Add(word, uint16(0), uint8(0), uint16(0))
		f.Add(word, uint16(0xfff), uint8(0xff), uint16(0xffff))
	}

	f.Fuzz(func(t *testing.T, word uint16, index uint16, reg uint8, keyMask uint16) {
		assert := assert.New(t)

		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, word)
		c := newTestChip8(b)
		c.i = index
		for r := range c.v {
			c.v[r] = reg + uint8(r)
		}

		var keys [NumKeys]bool
		for k := range keys {
			keys[k] = keyMask&(1<<k) != 0
		}

		before := snapshot(c)
		err := c.RunCycle(keys)
		if err != nil {
			var fault *ErrFault
			assert.True(errors.As(err, &fault))
			assert.Equal(before, snapshot(c))
			assert.Equal(err, c.RunCycle(keys))
			return
		}

		assert.Equal(uint16(ProgramOffset), c.History()[0].PC)
		for _, p := range c.Display() {
			assert.LessOrEqual(p, uint8(1))
		}
	})
}
