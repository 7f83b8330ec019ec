package emulator

import "time"

const (
	DefaultCycleHz = 500
	TimerHz        = 60
	MaxFrameStep   = 250 * time.Millisecond
)

// Pacer turns elapsed wall time into CPU cycles and 60 Hz timer ticks.
// The two accumulators are independent, so the timer rate does not follow
// the cycle rate.
type Pacer struct {
	cyclePeriod time.Duration
	timerPeriod time.Duration
	cycleAcc    time.Duration
	timerAcc    time.Duration
}

func NewPacer(cycleHz int) *Pacer {
	if cycleHz <= 0 {
		cycleHz = DefaultCycleHz
	}
	return &Pacer{
		cyclePeriod: time.Second / time.Duration(cycleHz),
		timerPeriod: time.Second / TimerHz,
	}
}

// Advance accounts for elapsed time and returns how many cycles to run
// and how many timer decrements to apply. A single step is capped at
// MaxFrameStep so a stalled host does not run a burst of cycles.
func (p *Pacer) Advance(elapsed time.Duration) (cycles, ticks int) {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxFrameStep {
		elapsed = MaxFrameStep
	}

	p.cycleAcc += elapsed
	p.timerAcc += elapsed

	cycles = int(p.cycleAcc / p.cyclePeriod)
	p.cycleAcc -= time.Duration(cycles) * p.cyclePeriod

	ticks = int(p.timerAcc / p.timerPeriod)
	p.timerAcc -= time.Duration(ticks) * p.timerPeriod

	return
}

// Reset drops any accumulated time.
func (p *Pacer) Reset() {
	p.cycleAcc = 0
	p.timerAcc = 0
}
