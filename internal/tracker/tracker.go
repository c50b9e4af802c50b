// Package tracker tracks the elapsed running time of a workout timer.
//
// A Tracker is a small state machine (idle, running, paused) that credits
// one second per tick while running and can be resynchronised against the
// wall clock when the application returns to the foreground. It is not
// safe for concurrent use: every method must be called from the thread
// that drives the UI.
package tracker

import (
	"log/slog"
	"time"

	"github.com/julpanucci/timerView/internal/models"
)

// DefaultInterval is the period of the tick callback while running.
const DefaultInterval = time.Second

// Snapshot is what the host renders after a change.
type Snapshot struct {
	State   models.TimerState
	Seconds int64
	Text    string
	Status  string
	Icon    models.Icon
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock that stamps run segments.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithScheduler sets the host scheduler that drives Tick while running.
func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) { t.scheduler = s }
}

// WithLogger sets the logger for transitions and ticks.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithInterval overrides the tick period.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// Tracker is the elapsed-time state machine behind the timer widget.
type Tracker struct {
	state        models.TimerState
	accumulated  int64
	runStartedAt time.Time
	ticker       Ticker

	clock     Clock
	scheduler Scheduler
	interval  time.Duration
	log       *slog.Logger
	onChange  func(Snapshot)
}

// New returns an idle tracker with zero accumulated time.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		clock:     SystemClock,
		scheduler: noopScheduler{},
		interval:  DefaultInterval,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetOnChange registers the callback fired after every effective mutation.
func (t *Tracker) SetOnChange(callback func(Snapshot)) {
	t.onChange = callback
}

// Toggle starts or resumes the timer when idle or paused and pauses it
// when running.
func (t *Tracker) Toggle() {
	if t.state == models.StateRunning {
		t.stopTicker()
		t.runStartedAt = time.Time{}
		t.state = models.StatePaused
		t.log.Info("timer paused", "seconds", t.accumulated)
	} else {
		from := t.state
		t.runStartedAt = t.clock.Now()
		t.state = models.StateRunning
		t.ticker = t.scheduler.Every(t.interval, t.Tick)
		t.log.Info("timer running", "from", from.String(), "seconds", t.accumulated)
	}
	t.notify()
}

// Tick credits one second of running time. It does nothing unless running.
func (t *Tracker) Tick() {
	if t.state != models.StateRunning {
		return
	}
	t.accumulated++
	t.log.Debug("timer tick", "total", t.accumulated)
	t.notify()
}

// Resync replaces the accumulated time with the wall-clock time elapsed
// since the current run segment started. Ticks counted so far are
// discarded. It does nothing unless running.
func (t *Tracker) Resync(now time.Time) {
	d, ok := t.SinceRunStart(now)
	if !ok {
		return
	}
	secs := int64(d / time.Second)
	t.log.Info("timer resynced", "ticked", t.accumulated, "wall", secs)
	t.accumulated = secs
	t.notify()
}

// SinceRunStart reports the absolute wall-clock distance between now and
// the start of the current run segment. ok is false unless running.
func (t *Tracker) SinceRunStart(now time.Time) (d time.Duration, ok bool) {
	if t.state != models.StateRunning || t.runStartedAt.IsZero() {
		return 0, false
	}
	// Round(0) drops the monotonic reading, which may not advance while
	// the process is suspended.
	start, now := t.runStartedAt.Round(0), now.Round(0)
	// Sub saturates, so subtract in the non-negative order instead of negating.
	if now.Before(start) {
		return start.Sub(now), true
	}
	return now.Sub(start), true
}

// Dispose releases the periodic callback held while running.
func (t *Tracker) Dispose() {
	t.stopTicker()
}

func (t *Tracker) stopTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// State returns the current state.
func (t *Tracker) State() models.TimerState { return t.state }

// Seconds returns the accumulated whole seconds.
func (t *Tracker) Seconds() int64 { return t.accumulated }

// Elapsed returns the accumulated time as a duration.
func (t *Tracker) Elapsed() time.Duration {
	return time.Duration(t.accumulated) * time.Second
}

// RunStartedAt returns the start of the current run segment, if running.
func (t *Tracker) RunStartedAt() (time.Time, bool) {
	return t.runStartedAt, !t.runStartedAt.IsZero()
}

// DisplayText formats the accumulated time for the time label.
func (t *Tracker) DisplayText() string {
	return FormatElapsed(t.accumulated)
}

// StatusLabel returns the description for the current state.
func (t *Tracker) StatusLabel() string {
	return t.state.StatusLabel()
}

// ButtonIcon returns the icon for the play/pause button.
func (t *Tracker) ButtonIcon() models.Icon {
	return t.state.ButtonIcon()
}

// Snapshot captures everything the host renders.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		State:   t.state,
		Seconds: t.accumulated,
		Text:    t.DisplayText(),
		Status:  t.StatusLabel(),
		Icon:    t.ButtonIcon(),
	}
}

func (t *Tracker) notify() {
	if t.onChange != nil {
		t.onChange(t.Snapshot())
	}
}
