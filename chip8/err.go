package chip8

import (
	"errors"

	"github.com/tuboc/chip8vm/translate"
)

var f = translate.From

var (
	// Execution faults
	ErrDecode       = errors.New(f("decode"))
	ErrStackEmpty   = errors.New(f("stack empty"))
	ErrStackFull    = errors.New(f("stack full"))
	ErrMemoryBounds = errors.New(f("memory out of bounds"))
	ErrKeyInvalid   = errors.New(f("key invalid"))

	// Loader errors
	ErrProgramTooLarge = errors.New(f("program too large"))
)

// ErrOpcode is the instruction word that failed to decode.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrDecode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrMemory is an access of Len bytes at Addr that does not fit in memory.
type ErrMemory struct {
	Addr uint16
	Len  int
}

func (em ErrMemory) Error() string {
	return f("memory access 0x%04x+%d out of bounds", em.Addr, em.Len)
}

func (em ErrMemory) Is(err error) bool {
	return err == ErrMemoryBounds
}

// ErrFault indicates where execution halted.
type ErrFault struct {
	PC   uint16
	Word uint16
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%03x opcode 0x%04x %v", err.PC, err.Word, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
