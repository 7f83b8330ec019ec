package chip8

// Op is the operation an instruction word decodes to.
type Op uint8

const (
	OpInvalid    Op = iota
	OpClear         // 00E0
	OpReturn        // 00EE
	OpJump          // 1NNN
	OpCall          // 2NNN
	OpSkipEqImm     // 3XNN
	OpSkipNeqImm    // 4XNN
	OpSkipEqReg     // 5XY0
	OpSetImm        // 6XNN
	OpAddImm        // 7XNN
	OpSetReg        // 8XY0
	OpOr            // 8XY1
	OpAnd           // 8XY2
	OpXor           // 8XY3
	OpAddReg        // 8XY4
	OpSubReg        // 8XY5
	OpShiftRight    // 8XY6
	OpSubRev        // 8XY7
	OpShiftLeft     // 8XYE
	OpSkipNeqReg    // 9XY0
	OpSetIndex      // ANNN
	OpJumpOffset    // BNNN
	OpRandom        // CXNN
	OpDraw          // DXYN
	OpSkipKey       // EX9E
	OpSkipNotKey    // EXA1
	OpGetDelay      // FX07
	OpWaitKey       // FX0A
	OpSetDelay      // FX15
	OpSetSound      // FX18
	OpAddIndex      // FX1E
	OpFontChar      // FX29
	OpStoreBCD      // FX33
	OpRegDump       // FX55
	OpRegLoad       // FX65
	opCount
)

var opNames = [opCount]string{
	OpInvalid:    "???",
	OpClear:      "CLS",
	OpReturn:     "RET",
	OpJump:       "JP",
	OpCall:       "CALL",
	OpSkipEqImm:  "SE",
	OpSkipNeqImm: "SNE",
	OpSkipEqReg:  "SE",
	OpSetImm:     "LD",
	OpAddImm:     "ADD",
	OpSetReg:     "LD",
	OpOr:         "OR",
	OpAnd:        "AND",
	OpXor:        "XOR",
	OpAddReg:     "ADD",
	OpSubReg:     "SUB",
	OpShiftRight: "SHR",
	OpSubRev:     "SUBN",
	OpShiftLeft:  "SHL",
	OpSkipNeqReg: "SNE",
	OpSetIndex:   "LD I",
	OpJumpOffset: "JP V0",
	OpRandom:     "RND",
	OpDraw:       "DRW",
	OpSkipKey:    "SKP",
	OpSkipNotKey: "SKNP",
	OpGetDelay:   "LD DT",
	OpWaitKey:    "LD K",
	OpSetDelay:   "SET DT",
	OpSetSound:   "SET ST",
	OpAddIndex:   "ADD I",
	OpFontChar:   "LD F",
	OpStoreBCD:   "LD B",
	OpRegDump:    "LD [I]",
	OpRegLoad:    "LD V,[I]",
}

func (op Op) String() string {
	if op >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[op]
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word uint16
	Op   Op
	X    uint8  // register operand, bits 8-11
	Y    uint8  // register operand, bits 4-7
	N    uint8  // low nibble
	NN   uint8  // low byte
	NNN  uint16 // 12-bit address
}

// Nibbles splits an instruction word into its four 4-bit fields.
//
//	/--- high byte ---\  /--- low byte ----\
//	| group  |   x    |  |   y    |  sub   |
func Nibbles(word uint16) (group, x, y, sub uint8) {
	group = uint8(word >> 12 & 0xf)
	x = uint8(word >> 8 & 0xf)
	y = uint8(word >> 4 & 0xf)
	sub = uint8(word & 0xf)
	return
}

// Decode classifies an instruction word. Words that match no operation
// decode to OpInvalid.
func Decode(word uint16) Instruction {
	group, x, y, sub := Nibbles(word)
	in := Instruction{
		Word: word,
		X:    x,
		Y:    y,
		N:    sub,
		NN:   uint8(word & 0x00ff),
		NNN:  word & 0x0fff,
	}

	switch group {
	case 0x0:
		switch word {
		case 0x00E0:
			in.Op = OpClear
		case 0x00EE:
			in.Op = OpReturn
		}
	case 0x1:
		in.Op = OpJump
	case 0x2:
		in.Op = OpCall
	case 0x3:
		in.Op = OpSkipEqImm
	case 0x4:
		in.Op = OpSkipNeqImm
	case 0x5:
		if sub == 0 {
			in.Op = OpSkipEqReg
		}
	case 0x6:
		in.Op = OpSetImm
	case 0x7:
		in.Op = OpAddImm
	case 0x8:
		switch sub {
		case 0x0:
			in.Op = OpSetReg
		case 0x1:
			in.Op = OpOr
		case 0x2:
			in.Op = OpAnd
		case 0x3:
			in.Op = OpXor
		case 0x4:
			in.Op = OpAddReg
		case 0x5:
			in.Op = OpSubReg
		case 0x6:
			in.Op = OpShiftRight
		case 0x7:
			in.Op = OpSubRev
		case 0xE:
			in.Op = OpShiftLeft
		}
	case 0x9:
		if sub == 0 {
			in.Op = OpSkipNeqReg
		}
	case 0xA:
		in.Op = OpSetIndex
	case 0xB:
		in.Op = OpJumpOffset
	case 0xC:
		in.Op = OpRandom
	case 0xD:
		in.Op = OpDraw
	case 0xE:
		switch in.NN {
		case 0x9E:
			in.Op = OpSkipKey
		case 0xA1:
			in.Op = OpSkipNotKey
		}
	case 0xF:
		switch in.NN {
		case 0x07:
			in.Op = OpGetDelay
		case 0x0A:
			in.Op = OpWaitKey
		case 0x15:
			in.Op = OpSetDelay
		case 0x18:
			in.Op = OpSetSound
		case 0x1E:
			in.Op = OpAddIndex
		case 0x29:
			in.Op = OpFontChar
		case 0x33:
			in.Op = OpStoreBCD
		case 0x55:
			in.Op = OpRegDump
		case 0x65:
			in.Op = OpRegLoad
		}
	}

	return in
}
