package tracker

import "time"

// Clock provides the wall-clock time used to stamp run segments.
type Clock interface {
	Now() time.Time
}

// Ticker is a running periodic callback owned by a Scheduler.
type Ticker interface {
	// Stop cancels the callback. No fire may reach the callback after
	// Stop returns.
	Stop()
}

// Scheduler starts periodic callbacks on the thread that drives the UI.
type Scheduler interface {
	Every(d time.Duration, fn func()) Ticker
}

// SystemClock is the default Clock implementation.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// noopScheduler never fires. It lets the tracker be driven by hand.
type noopScheduler struct{}

func (noopScheduler) Every(time.Duration, func()) Ticker { return noopTicker{} }

type noopTicker struct{}

func (noopTicker) Stop() {}
