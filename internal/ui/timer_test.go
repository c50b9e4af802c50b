package ui

import (
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julpanucci/timerView/internal/config"
	"github.com/julpanucci/timerView/internal/models"
	"github.com/julpanucci/timerView/internal/tracker"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

type manualTicker struct {
	fn      func()
	stopped bool
}

func (t *manualTicker) Stop() { t.stopped = true }

type manualScheduler struct {
	current *manualTicker
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) tracker.Ticker {
	s.current = &manualTicker{fn: fn}
	return s.current
}

func (s *manualScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		if s.current != nil && !s.current.stopped {
			s.current.fn()
		}
	}
}

func newTestView(t *testing.T) (*TimerView, *manualClock, *manualScheduler) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	clock := &manualClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	sched := &manualScheduler{}
	v := NewTimerView(config.DefaultConfig().TimerView,
		WithClock(clock),
		WithScheduler(sched),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return v, clock, sched
}

func TestTimerViewInitialState(t *testing.T) {
	v, _, _ := newTestView(t)

	assert.Equal(t, "Start Workout", v.statusLabel.Text)
	assert.Equal(t, "00:00", v.timeLabel.Text)
	assert.Equal(t, theme.MediaPlayIcon(), v.playButton.Icon)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, v.timeLabel.Color)
	assert.Equal(t, float32(42), v.timeLabel.TextSize)
}

func TestTimerViewTapTogglesLabels(t *testing.T) {
	v, _, sched := newTestView(t)

	test.Tap(v.playButton)
	assert.Equal(t, models.StateRunning, v.Tracker().State())
	assert.Equal(t, "In progress", v.statusLabel.Text)
	assert.Equal(t, theme.MediaPauseIcon(), v.playButton.Icon)

	sched.fire(65)
	assert.Equal(t, "01:05", v.timeLabel.Text)

	test.Tap(v.playButton)
	assert.Equal(t, "Resume workout", v.statusLabel.Text)
	assert.Equal(t, theme.MediaPlayIcon(), v.playButton.Icon)
	assert.True(t, sched.current.stopped)

	sched.fire(3)
	assert.Equal(t, "01:05", v.timeLabel.Text)
}

func TestTimerViewResync(t *testing.T) {
	v, clock, sched := newTestView(t)

	v.Resync()
	assert.Equal(t, "00:00", v.timeLabel.Text)

	test.Tap(v.playButton)
	sched.fire(2)
	clock.now = clock.now.Add(time.Hour + time.Minute + time.Second)
	v.Resync()
	assert.Equal(t, "01:01:01", v.timeLabel.Text)
}

func TestTimerViewDispose(t *testing.T) {
	v, _, sched := newTestView(t)

	test.Tap(v.playButton)
	require.NotNil(t, sched.current)
	v.Dispose()
	assert.True(t, sched.current.stopped)
}

func TestTimerViewRenders(t *testing.T) {
	v, _, _ := newTestView(t)
	w := test.NewWindow(v)
	defer w.Close()
	w.Resize(fyne.NewSize(358, 93))

	minSize := v.MinSize()
	assert.Greater(t, minSize.Width, float32(55+44))
	assert.GreaterOrEqual(t, minSize.Height, float32(55+32))
}

func TestRoundedGradientAt(t *testing.T) {
	start := color.NRGBA{R: 255, G: 170, B: 6, A: 255}
	end := color.NRGBA{R: 246, G: 222, B: 7, A: 230}

	// outside the rounded corner
	assert.Equal(t, color.Transparent, roundedGradientAt(0, 0, 200, 100, 40, 90, start, end))

	// left and right edges sit outside the 25%-75% band
	assert.Equal(t, start, roundedGradientAt(5, 50, 200, 100, 40, 90, start, end))
	assert.Equal(t, end, roundedGradientAt(194, 50, 200, 100, 40, 90, start, end))

	mid := roundedGradientAt(100, 50, 200, 100, 40, 90, start, end).(color.NRGBA)
	assert.InDelta(t, 250, int(mid.R), 1)
	assert.InDelta(t, 196, int(mid.G), 1)

	// no radius keeps the corner
	assert.Equal(t, start, roundedGradientAt(0, 0, 200, 100, 0, 90, start, end))
	assert.Equal(t, color.Transparent, roundedGradientAt(0, 0, 0, 0, 0, 90, start, end))
}

func TestColorOrFallsBack(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, colorOr("#112233", "#FFFFFF"))
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, colorOr("nope", "#FFFFFF"))
}
