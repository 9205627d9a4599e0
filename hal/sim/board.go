package sim

import (
	"sync"
	"time"

	"github.com/embeddedos/oskit/hal"
)

// debounceWindow is the minimum spacing between reported button presses.
const debounceWindow = 50 * time.Millisecond

// Board keeps peripheral state in memory. Button presses are injected by
// PressButton and read back debounced, modeling the edge-triggered input
// of a physical boot button.
type Board struct {
	mu sync.Mutex

	led          bool
	pressPending bool
	lastPress    time.Time

	temperatureC  float32
	vccMillivolts uint32

	watchdogArmed    bool
	watchdogDeadline time.Time
	watchdogTimeout  time.Duration

	restarts  int
	onRestart func()
}

var _ hal.Board = (*Board)(nil)

// NewBoard creates a board. onRestart, if non-nil, is invoked whenever
// Restart is called.
func NewBoard(onRestart func()) *Board {
	return &Board{
		temperatureC:  42.5,
		vccMillivolts: 3300,
		onRestart:     onRestart,
	}
}

func (b *Board) SetLED(on bool) {
	b.mu.Lock()
	b.led = on
	b.mu.Unlock()
}

func (b *Board) LED() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.led
}

func (b *Board) ToggleLED() {
	b.mu.Lock()
	b.led = !b.led
	b.mu.Unlock()
}

// PressButton injects a press. Presses inside the debounce window of the
// previous one are discarded.
func (b *Board) PressButton() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.Sub(b.lastPress) < debounceWindow {
		return
	}
	b.lastPress = now
	b.pressPending = true
}

func (b *Board) ButtonPressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	pressed := b.pressPending
	b.pressPending = false
	return pressed
}

func (b *Board) Sensors() hal.SensorReading {
	b.mu.Lock()
	defer b.mu.Unlock()
	return hal.SensorReading{
		TemperatureC:  b.temperatureC,
		VccMillivolts: b.vccMillivolts,
	}
}

// SetSensors overrides the reported sensor values.
func (b *Board) SetSensors(reading hal.SensorReading) {
	b.mu.Lock()
	b.temperatureC = reading.TemperatureC
	b.vccMillivolts = reading.VccMillivolts
	b.mu.Unlock()
}

func (b *Board) LightSleep(d time.Duration) {
	time.Sleep(d)
}

func (b *Board) DeepSleep(d time.Duration) {
	// Deep sleep on hardware ends in a reset.
	time.Sleep(d)
	b.Restart()
}

func (b *Board) EnableWatchdog(timeout time.Duration) {
	b.mu.Lock()
	b.watchdogArmed = true
	b.watchdogTimeout = timeout
	b.watchdogDeadline = time.Now().Add(timeout)
	b.mu.Unlock()
}

func (b *Board) FeedWatchdog() {
	b.mu.Lock()
	if b.watchdogArmed {
		b.watchdogDeadline = time.Now().Add(b.watchdogTimeout)
	}
	b.mu.Unlock()
}

func (b *Board) DisableWatchdog() {
	b.mu.Lock()
	b.watchdogArmed = false
	b.mu.Unlock()
}

// WatchdogExpired reports whether the watchdog deadline has passed
// without a feed.
func (b *Board) WatchdogExpired() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.watchdogArmed && time.Now().After(b.watchdogDeadline)
}

func (b *Board) Restart() {
	b.mu.Lock()
	b.restarts++
	cb := b.onRestart
	b.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Restarts reports how many times Restart has been requested.
func (b *Board) Restarts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restarts
}
