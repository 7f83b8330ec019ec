package emulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacer_Advance(t *testing.T) {
	assert := assert.New(t)

	p := NewPacer(500)
	cycles, ticks := p.Advance(10 * time.Millisecond)
	assert.Equal(5, cycles)
	assert.Equal(0, ticks)

	cycles, ticks = p.Advance(7 * time.Millisecond)
	assert.Equal(3, cycles)
	assert.Equal(1, ticks)
}

func TestPacer_OneSecond(t *testing.T) {
	assert := assert.New(t)

	for _, hz := range []int{60, 500, 700, 1000} {
		p := NewPacer(hz)
		totalCycles, totalTicks := 0, 0
		for n := 0; n < 1000; n++ {
			cycles, ticks := p.Advance(time.Millisecond)
			totalCycles += cycles
			totalTicks += ticks
		}
		assert.InDelta(hz, totalCycles, 1, "hz=%d", hz)
		assert.InDelta(TimerHz, totalTicks, 1, "hz=%d", hz)
	}
}

func TestPacer_TimersIndependentOfCycleRate(t *testing.T) {
	assert := assert.New(t)

	slow := NewPacer(100)
	fast := NewPacer(2000)
	_, slowTicks := slow.Advance(200 * time.Millisecond)
	_, fastTicks := fast.Advance(200 * time.Millisecond)
	assert.Equal(12, slowTicks)
	assert.Equal(slowTicks, fastTicks)
}

func TestPacer_Cap(t *testing.T) {
	assert := assert.New(t)

	p := NewPacer(1000)
	cycles, _ := p.Advance(10 * time.Second)
	assert.Equal(int(MaxFrameStep/time.Millisecond), cycles)

	cycles, ticks := p.Advance(-time.Second)
	assert.Equal(0, cycles)
	assert.Equal(0, ticks)
}

func TestPacer_Reset(t *testing.T) {
	assert := assert.New(t)

	p := NewPacer(0)
	p.Advance(time.Millisecond)
	p.Reset()
	cycles, ticks := p.Advance(time.Millisecond)
	assert.Equal(0, cycles)
	assert.Equal(0, ticks)
}
