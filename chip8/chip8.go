package chip8

import (
	"math/rand"
	"time"
)

const (
	DisplayW      = 64
	DisplayH      = 32
	MemorySize    = 0x1000
	ProgramOffset = 0x200
	MaxProgram    = MemorySize - ProgramOffset
	NumKeys       = 16
	HistoryNum    = 16
)

// State is the cycle state of the machine.
type State uint8

const (
	Running     State = iota // fetch and execute one instruction per cycle
	AwaitingKey              // scan the keypad, no instruction executes
)

func (s State) String() string {
	if s == AwaitingKey {
		return "WAIT"
	}
	return "RUN"
}

// Trace is one executed instruction.
type Trace struct {
	PC   uint16
	Word uint16
	Op   Op
}

// Chip8 is the whole machine. All mutation goes through RunCycle,
// DecrementTimers, LoadProgram and Reset.
type Chip8 struct {
	mem   [MemorySize]uint8         // memory
	pc    uint16                    // program counter
	v     [16]uint8                 // registers
	i     uint16                    // index register
	dt    uint8                     // delay timer
	st    uint8                     // sound timer
	stack Stack                     // return addresses
	disp  [DisplayW * DisplayH]uint8 // graphics

	draw     bool  // display changed since AckDraw
	state    State // running or waiting for a key
	waitReg  uint8 // register receiving the awaited key
	fault    error // halting fault, sticky until Reset
	rnd      *rand.Rand
	history  [HistoryNum]Trace
	histNext int
	histLen  int
}

// Option configures a new machine.
type Option func(c *Chip8)

// WithRand sets the random source used by the random-and instruction.
func WithRand(r *rand.Rand) Option {
	return func(c *Chip8) {
		c.rnd = r
	}
}

// New creates an initialized machine.
func New(opts ...Option) *Chip8 {
	c := &Chip8{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.Reset()
	return c
}

// Reset returns the machine to its initial state, with an empty program area.
func (c *Chip8) Reset() {
	c.mem = [MemorySize]uint8{}
	copy(c.mem[FontOffset:], fontSprites[:])
	c.pc = ProgramOffset
	c.v = [16]uint8{}
	c.i = 0
	c.dt = 0
	c.st = 0
	c.stack.Reset()
	c.disp = [DisplayW * DisplayH]uint8{}

	c.draw = false
	c.state = Running
	c.waitReg = 0
	c.fault = nil
	c.history = [HistoryNum]Trace{}
	c.histNext = 0
	c.histLen = 0
}

// LoadProgram copies a program image to the program area.
func (c *Chip8) LoadProgram(b []byte) error {
	if len(b) > MaxProgram {
		return ErrProgramTooLarge
	}
	copy(c.mem[ProgramOffset:], b)
	return nil
}

// RunCycle advances the machine by one cycle with the given keypad
// snapshot. While waiting for a key, the cycle only resolves the wait.
// Once a fault is returned the machine is halted and keeps returning it.
func (c *Chip8) RunCycle(keys [NumKeys]bool) error {
	if c.fault != nil {
		return c.fault
	}

	if c.state == AwaitingKey {
		for k, down := range keys {
			if down {
				c.v[c.waitReg] = uint8(k)
				c.state = Running
				break
			}
		}
		return nil
	}

	word, err := c.fetch()
	if err != nil {
		c.fault = &ErrFault{PC: c.pc, Err: err}
		return c.fault
	}

	in := Decode(word)
	if err := c.exec(in, &keys); err != nil {
		c.fault = &ErrFault{PC: c.pc, Word: word, Err: err}
		return c.fault
	}

	return nil
}

// DecrementTimers counts both timers down by one, stopping at zero. The
// host calls it at 60 Hz, independent of the cycle rate.
func (c *Chip8) DecrementTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

func (c *Chip8) fetch() (uint16, error) {
	if err := checkRange(c.pc, 2); err != nil {
		return 0, err
	}
	return uint16(c.mem[c.pc])<<8 | uint16(c.mem[c.pc+1]), nil
}

func (c *Chip8) record(pc, word uint16, op Op) {
	c.history[c.histNext] = Trace{PC: pc, Word: word, Op: op}
	c.histNext = (c.histNext + 1) % HistoryNum
	if c.histLen < HistoryNum {
		c.histLen++
	}
}

func checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return ErrMemory{Addr: addr, Len: n}
	}
	return nil
}

func (c *Chip8) updateCarryFlag(b bool) {
	if b {
		c.v[0xf] = 1
	} else {
		c.v[0xf] = 0
	}
}

// Display is the 64x32 frame buffer, one byte (0 or 1) per pixel, row
// major. The slice aliases machine state and must not be modified.
func (c *Chip8) Display() []uint8 {
	return c.disp[:]
}

// Pixel reports whether the pixel at (x, y) is set. Coordinates wrap
// around the display, the same way sprites do.
func (c *Chip8) Pixel(x, y int) bool {
	x = (x%DisplayW + DisplayW) % DisplayW
	y = (y%DisplayH + DisplayH) % DisplayH
	return c.disp[y*DisplayW+x] != 0
}

// DrawFlag reports whether the display changed since the last AckDraw.
func (c *Chip8) DrawFlag() bool {
	return c.draw
}

// AckDraw clears the draw flag once the host has consumed the display.
func (c *Chip8) AckDraw() {
	c.draw = false
}

func (c *Chip8) V(r int) uint8 {
	return c.v[r&0xf]
}

func (c *Chip8) Index() uint16 {
	return c.i
}

// PC is the address of the next instruction. Jumps may leave it odd;
// only the memory bound is checked at fetch.
func (c *Chip8) PC() uint16 {
	return c.pc
}

func (c *Chip8) SP() int {
	return c.stack.Depth()
}

func (c *Chip8) DelayTimer() uint8 {
	return c.dt
}

func (c *Chip8) SoundTimer() uint8 {
	return c.st
}

func (c *Chip8) State() State {
	return c.state
}

// Fault is the error that halted the machine, or nil.
func (c *Chip8) Fault() error {
	return c.fault
}

// Peek reads a memory byte without side effects.
func (c *Chip8) Peek(addr uint16) uint8 {
	return c.mem[addr%MemorySize]
}

// History returns the most recent executed instructions, oldest first.
func (c *Chip8) History() []Trace {
	out := make([]Trace, 0, c.histLen)
	start := (c.histNext - c.histLen + HistoryNum) % HistoryNum
	for n := 0; n < c.histLen; n++ {
		out = append(out, c.history[(start+n)%HistoryNum])
	}
	return out
}
