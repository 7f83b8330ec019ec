package chip8

const (
	StackLimit = 16 // Maximum call depth
)

// Stack of subroutine return addresses.
type Stack struct {
	data [StackLimit]uint16
	sp   uint8
}

func (s *Stack) Push(addr uint16) error {
	if s.Full() {
		return ErrStackFull
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

func (s *Stack) Pop() (addr uint16, err error) {
	if s.Empty() {
		return 0, ErrStackEmpty
	}
	s.sp--
	return s.data[s.sp], nil
}

func (s *Stack) Empty() bool {
	return s.sp == 0
}

func (s *Stack) Full() bool {
	return s.sp == StackLimit
}

// Depth is the stack pointer, in [0, StackLimit].
func (s *Stack) Depth() int {
	return int(s.sp)
}

// At returns the slot i, live or not.
func (s *Stack) At(i int) uint16 {
	return s.data[i]
}

func (s *Stack) Reset() {
	*s = Stack{}
}
