package emulator

import (
	"github.com/tuboc/chip8vm/translate"
)

var f = translate.From

// ErrSdl is a failed SDL call during host setup.
type ErrSdl struct {
	Op  string
	Err error
}

func (err *ErrSdl) Error() string {
	return f("sdl %v: %v", err.Op, err.Err)
}

func (err *ErrSdl) Unwrap() error {
	return err.Err
}
