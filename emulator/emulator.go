package emulator

import (
	"fmt"
	"log"
	"time"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/tuboc/chip8vm/chip8"
)

const (
	InformationH = 256
	FontSize     = 16
	FontPerW     = 32
	WindowTitle  = "Chip-8 Emulator"
)

type Emulator struct {
	rom      []byte
	chip8    *chip8.Chip8
	keypad   Keypad
	pacer    *Pacer
	window   *sdl.Window
	renderer *sdl.Renderer
	screen   *sdl.Texture
	font     *sdl.Texture
	scale    int32
	running  bool
	focus    bool
	stepMode bool
}

func initRenderer(w, h int32) (*sdl.Window, *sdl.Renderer, error) {
	window, err := sdl.CreateWindow(WindowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, &ErrSdl{Op: "CreateWindow", Err: err}
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, nil, &ErrSdl{Op: "CreateRenderer", Err: err}
	}

	// workaround for https://bugzilla.libsdl.org/show_bug.cgi?id=4272
	// 	or update sdl2 to 2.0.9
	window.Hide()
	sdl.PumpEvents()
	window.Show()

	return window, renderer, nil
}

// initScreen creates the render target holding the CHIP-8 frame buffer at
// native resolution.
func initScreen(r *sdl.Renderer) (*sdl.Texture, error) {
	screen, err := r.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.DisplayW, chip8.DisplayH)
	if err != nil {
		return nil, &ErrSdl{Op: "CreateTexture", Err: err}
	}
	return screen, nil
}

func initFont(r *sdl.Renderer, path string) (*sdl.Texture, error) {
	surface, err := img.Load(path)
	if err != nil {
		return nil, &ErrSdl{Op: "img.Load", Err: err}
	}
	defer surface.Free()

	texture, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, &ErrSdl{Op: "CreateTextureFromSurface", Err: err}
	}

	texture.SetBlendMode(sdl.BLENDMODE_ADD)

	return texture, nil
}

// NewEmulator opens the window and boots a machine with rom loaded.
func NewEmulator(rom []byte, cfg Config) (*Emulator, error) {
	vm := chip8.New()
	if err := vm.LoadProgram(rom); err != nil {
		return nil, err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, &ErrSdl{Op: "Init", Err: err}
	}

	if cfg.Scale <= 0 {
		cfg.Scale = DefaultConfig().Scale
	}
	w := chip8.DisplayW * cfg.Scale
	h := chip8.DisplayH*cfg.Scale + InformationH

	window, renderer, err := initRenderer(w, h)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	screen, err := initScreen(renderer)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	e := &Emulator{
		rom:      rom,
		chip8:    vm,
		pacer:    NewPacer(cfg.CycleHz),
		window:   window,
		renderer: renderer,
		screen:   screen,
		scale:    cfg.Scale,
		running:  true,
		focus:    true,
		stepMode: cfg.StepMode,
	}

	if cfg.FontPath != "" {
		e.font, err = initFont(renderer, cfg.FontPath)
		if err != nil {
			log.Printf("debug overlay disabled: %v", err)
		}
	}

	e.refreshScreen()

	return e, nil
}

// Close releases the SDL resources.
func (e *Emulator) Close() {
	if e.font != nil {
		e.font.Destroy()
	}
	e.screen.Destroy()
	e.renderer.Destroy()
	e.window.Destroy()
	sdl.Quit()
}

// Run drives the machine until the window is closed. Cycles and timer
// ticks come from the pacer, so the timers decay at 60 Hz whatever the
// cycle rate.
func (e *Emulator) Run() {
	last := time.Now()

	for e.running {
		e.pollEvents()

		now := time.Now()
		cycles, ticks := e.pacer.Advance(now.Sub(last))
		last = now

		if e.focus && !e.stepMode {
			for n := 0; n < cycles; n++ {
				if !e.step() {
					break
				}
			}
		}

		if e.focus {
			for n := 0; n < ticks; n++ {
				e.chip8.DecrementTimers()
			}
		}

		if ticks > 0 {
			e.draw()
		} else {
			sdl.Delay(1)
		}
	}
}

// step runs a single cycle and reports whether the machine can continue.
func (e *Emulator) step() bool {
	if e.chip8.Fault() != nil {
		return false
	}

	if err := e.chip8.RunCycle(e.keypad.Snapshot()); err != nil {
		log.Printf("halted: %v", err)
		e.window.SetTitle(fmt.Sprintf("%s - %v", WindowTitle, err))
		return false
	}

	return true
}

func (e *Emulator) reset() {
	e.chip8.Reset()
	if err := e.chip8.LoadProgram(e.rom); err != nil {
		log.Printf("reset: %v", err)
	}
	e.keypad.Clear()
	e.pacer.Reset()
	e.window.SetTitle(WindowTitle)
	e.refreshScreen()
}

// refreshScreen copies the frame buffer into the screen texture.
func (e *Emulator) refreshScreen() {
	if err := e.renderer.SetRenderTarget(e.screen); err != nil {
		log.Printf("SetRenderTarget: %v", err)
		return
	}

	e.renderer.SetDrawColor(0, 0, 0, 255)
	e.renderer.Clear()

	e.renderer.SetDrawColor(0, 255, 0, 255)
	disp := e.chip8.Display()
	for y := int32(0); y < chip8.DisplayH; y++ {
		for x := int32(0); x < chip8.DisplayW; x++ {
			if disp[y*chip8.DisplayW+x] != 0 {
				e.renderer.FillRect(&sdl.Rect{X: x, Y: y, W: 1, H: 1})
			}
		}
	}

	e.renderer.SetRenderTarget(nil)
	e.chip8.AckDraw()
}

func (e *Emulator) draw() {
	if e.chip8.DrawFlag() {
		e.refreshScreen()
	}

	e.renderer.SetDrawColor(0, 0, 0, 255)
	e.renderer.Clear()

	emulatorW := chip8.DisplayW * e.scale
	emulatorH := chip8.DisplayH * e.scale
	e.renderer.Copy(e.screen, nil, &sdl.Rect{X: 0, Y: 0, W: emulatorW, H: emulatorH})

	e.drawDebugInfo(emulatorW, emulatorH)

	e.renderer.Present()
}

func (e *Emulator) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			e.running = false
		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				if e.keypad.Handle(ev.Keysym.Scancode, true) {
					continue
				}
				switch ev.Keysym.Scancode {
				case sdl.SCANCODE_SPACE:
					if e.stepMode {
						e.step()
					} else {
						e.stepMode = true
					}
				case sdl.SCANCODE_RETURN:
					if e.stepMode {
						e.stepMode = false
						e.pacer.Reset()
					}
				case sdl.SCANCODE_Z:
					e.reset()
				case sdl.SCANCODE_ESCAPE:
					e.running = false
				}
			case sdl.KEYUP:
				e.keypad.Handle(ev.Keysym.Scancode, false)
			}
		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				e.focus = false
				e.keypad.Clear()
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				e.focus = true
				e.pacer.Reset()
			}
		}
	}
}

func (e *Emulator) drawDebugInfo(emulatorW, emulatorH int32) {
	e.renderer.SetDrawColor(32, 32, 32, 255)
	e.renderer.FillRect(&sdl.Rect{X: 0, Y: emulatorH, W: emulatorW, H: InformationH})

	if e.font == nil {
		return
	}

	top := int(emulatorH)
	c := e.chip8

	// draw opcodes history, newest last
	for i, tr := range c.History() {
		e.drawText(fmt.Sprintf("%03X-%04X %s", tr.PC, tr.Word, tr.Op), 0, top+i*FontSize)
	}

	// draw v registers
	offsetX := int(emulatorW)/2 + 48
	for i := 0; i < 16; i++ {
		e.drawText(fmt.Sprintf("V%X = %02X", i, c.V(i)), offsetX, top+i*FontSize)
	}

	// draw other registers
	offsetX = int(emulatorW) - FontSize*9
	e.drawText(fmt.Sprintf("DT = %02X", c.DelayTimer()), offsetX, top+FontSize*0)
	e.drawText(fmt.Sprintf("ST = %02X", c.SoundTimer()), offsetX, top+FontSize*1)
	e.drawText(fmt.Sprintf("SP = %02X", c.SP()), offsetX, top+FontSize*2)
	e.drawText(fmt.Sprintf(" I = %04X", c.Index()), offsetX, top+FontSize*3)
	e.drawText(fmt.Sprintf("PC = %04X", c.PC()), offsetX, top+FontSize*4)
	e.drawText(c.State().String(), offsetX, top+FontSize*10)

	// draw key inputs
	keys := e.keypad.Snapshot()
	b := func(k int) int {
		if keys[k] {
			return 1
		}
		return 0
	}
	e.drawText(fmt.Sprintf("KEYS %d%d%d%d", b(0x01), b(0x02), b(0x03), b(0x0c)), offsetX, top+FontSize*5)
	e.drawText(fmt.Sprintf("     %d%d%d%d", b(0x04), b(0x05), b(0x06), b(0x0d)), offsetX, top+FontSize*6)
	e.drawText(fmt.Sprintf("     %d%d%d%d", b(0x07), b(0x08), b(0x09), b(0x0e)), offsetX, top+FontSize*7)
	e.drawText(fmt.Sprintf("     %d%d%d%d", b(0x0a), b(0x00), b(0x0b), b(0x0f)), offsetX, top+FontSize*8)
}

func (e *Emulator) drawText(s string, x, y int) {
	for i, v := range []byte(s) {
		if v < ' ' || v > '~' {
			continue
		}
		v -= byte(' ')
		fx := FontSize * (int32(v) % FontPerW)
		fy := FontSize * (int32(v) / FontPerW)
		e.renderer.Copy(e.font,
			&sdl.Rect{X: fx, Y: fy, W: FontSize, H: FontSize},
			&sdl.Rect{X: int32(x + i*FontSize), Y: int32(y), W: FontSize, H: FontSize})
	}
}
