package hal

import "time"

// SensorReading is a point-in-time snapshot of the board's onboard
// sensors.
type SensorReading struct {
	TemperatureC  float32
	VccMillivolts uint32
}

// Board abstracts the peripheral surface of the target hardware: LED,
// button input, sensors, sleep modes and the watchdog. The kernel core
// does not depend on it; the shell and demo tasks do.
type Board interface {
	SetLED(on bool)
	LED() bool
	ToggleLED()

	// ButtonPressed reports a debounced edge-triggered press. Reading
	// consumes the press.
	ButtonPressed() bool

	Sensors() SensorReading

	LightSleep(d time.Duration)
	DeepSleep(d time.Duration)

	EnableWatchdog(timeout time.Duration)
	FeedWatchdog()
	DisableWatchdog()

	// Restart reboots the board. It does not return on real hardware;
	// simulations record the request and return.
	Restart()
}
