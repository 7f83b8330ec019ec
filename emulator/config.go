package emulator

// Config holds the host settings chosen on the command line.
type Config struct {
	CycleHz  int    // instructions per second
	Scale    int32  // window pixels per CHIP-8 pixel
	FontPath string // debug overlay font atlas, empty disables the overlay
	StepMode bool   // start paused, SPACE steps
}

func DefaultConfig() Config {
	return Config{
		CycleHz:  DefaultCycleHz,
		Scale:    10,
		FontPath: "image/font.png",
	}
}
