package ui

import (
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"

	"github.com/julpanucci/timerView/internal/tracker"
)

type fyneScheduler struct{}

// NewScheduler returns a scheduler whose callbacks run on the fyne UI thread.
func NewScheduler() tracker.Scheduler {
	return fyneScheduler{}
}

func (fyneScheduler) Every(d time.Duration, fn func()) tracker.Ticker {
	t := &uiTicker{stop: make(chan struct{})}
	go t.run(d, fn)
	return t
}

type uiTicker struct {
	stop    chan struct{}
	once    sync.Once
	stopped atomic.Bool
}

func (t *uiTicker) run(d time.Duration, fn func()) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			fyne.Do(func() {
				// a fire queued before Stop must not reach fn
				if t.stopped.Load() {
					return
				}
				fn()
			})
		}
	}
}

func (t *uiTicker) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.stop)
	})
}
