package emulator

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/tuboc/chip8vm/chip8"
)

// host keyboard to hex keypad
//
//	4 5 6 7      1 2 3 C
//	R T Y U  ->  4 5 6 D
//	F G H J      7 8 9 E
//	V B N M      A 0 B F
var scanCode2Key = map[sdl.Scancode]uint8{
	sdl.SCANCODE_4: 0x1,
	sdl.SCANCODE_5: 0x2,
	sdl.SCANCODE_6: 0x3,
	sdl.SCANCODE_7: 0xc,
	sdl.SCANCODE_R: 0x4,
	sdl.SCANCODE_T: 0x5,
	sdl.SCANCODE_Y: 0x6,
	sdl.SCANCODE_U: 0xd,
	sdl.SCANCODE_F: 0x7,
	sdl.SCANCODE_G: 0x8,
	sdl.SCANCODE_H: 0x9,
	sdl.SCANCODE_J: 0xe,
	sdl.SCANCODE_V: 0xa,
	sdl.SCANCODE_B: 0x0,
	sdl.SCANCODE_N: 0xb,
	sdl.SCANCODE_M: 0xf,
}

// Keypad is the pressed/released state of the 16 hex keys.
type Keypad struct {
	keys [chip8.NumKeys]bool
}

// Handle applies a key transition and reports whether the scancode is a
// keypad key.
func (k *Keypad) Handle(code sdl.Scancode, down bool) bool {
	i, ok := scanCode2Key[code]
	if ok {
		k.keys[i] = down
	}
	return ok
}

// Snapshot is the current key vector as handed to RunCycle.
func (k *Keypad) Snapshot() [chip8.NumKeys]bool {
	return k.keys
}

func (k *Keypad) Clear() {
	k.keys = [chip8.NumKeys]bool{}
}
