package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/sqweek/dialog"

	e "github.com/tuboc/chip8vm/emulator"
)

var (
	defaults = e.DefaultConfig()

	filename = flag.String("f", "", "chip8 image file path, a file dialog opens if empty")
	stepMode = flag.Bool("s", false, "start with stepMode")
	cycleHz  = flag.Int("hz", defaults.CycleHz, "instructions per second")
	scale    = flag.Int("scale", int(defaults.Scale), "window pixels per chip8 pixel")
	fontPath = flag.String("font", defaults.FontPath, "debug overlay font image, empty to disable")
)

func init() {
	runtime.LockOSThread()
}

func fatal(err error) {
	dialog.Message("%v", err).Title("Chip-8 Emulator").Error()
	log.Fatal(err)
}

func main() {
	flag.Parse()

	if *filename == "" {
		path, err := dialog.File().Filter("CHIP-8 image", "ch8", "c8").Title("Load ROM").Load()
		if errors.Is(err, dialog.ErrCancelled) {
			os.Exit(0)
		}
		if err != nil {
			log.Fatalf("dialog: %v", err)
		}
		*filename = path
	}

	binary, err := os.ReadFile(*filename)
	if err != nil {
		log.Fatalf("%v: %v", *filename, err)
	}

	cfg := e.Config{
		CycleHz:  *cycleHz,
		Scale:    int32(*scale),
		FontPath: *fontPath,
		StepMode: *stepMode,
	}

	emu, err := e.NewEmulator(binary, cfg)
	if err != nil {
		fatal(err)
	}
	defer emu.Close()

	emu.Run()
}
