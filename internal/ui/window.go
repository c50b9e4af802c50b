package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/julpanucci/timerView/internal/config"
)

type MainWindow struct {
	window    fyne.Window
	timerView *TimerView
	cfg       *config.Config
	log       *slog.Logger
}

// NewMainWindow builds the single screen hosting one timer card and hooks
// it to the app lifecycle.
func NewMainWindow(app fyne.App, cfg *config.Config, logger *slog.Logger, opts ...ViewOption) *MainWindow {
	if logger == nil {
		logger = slog.Default()
	}

	sounds, err := NewSoundPlayer(cfg.Sound)
	if err != nil {
		logger.Warn("sound cues disabled", "error", err)
	}
	viewOpts := append([]ViewOption{WithLogger(logger), WithSounds(sounds)}, opts...)

	w := &MainWindow{
		window:    app.NewWindow(cfg.App.Name),
		timerView: NewTimerView(cfg.TimerView, viewOpts...),
		cfg:       cfg,
		log:       logger,
	}
	w.setup()

	lifecycle := app.Lifecycle()
	lifecycle.SetOnEnteredForeground(func() {
		w.log.Debug("entered foreground")
		w.timerView.Resync()
	})
	lifecycle.SetOnStopped(w.timerView.Dispose)
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	tv := w.cfg.TimerView
	background := canvas.NewRectangle(color.White)
	card := container.New(&insetLayout{
		origin: fyne.NewPos(tv.X, tv.Y),
		height: tv.Height,
	}, w.timerView)

	w.window.SetContent(container.NewStack(background, card))
	w.SetSize(float32(w.cfg.App.WindowWidth), float32(w.cfg.App.WindowHeight))
}

func (w *MainWindow) TimerView() *TimerView {
	return w.timerView
}

func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}

// insetLayout places a single object at origin, spanning the width minus
// the same margin on both sides.
type insetLayout struct {
	origin fyne.Position
	height float32
}

func (l *insetLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	width := size.Width - 2*l.origin.X
	if width < 0 {
		width = 0
	}
	for _, o := range objects {
		o.Move(l.origin)
		o.Resize(fyne.NewSize(width, l.height))
	}
}

func (l *insetLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var child fyne.Size
	for _, o := range objects {
		child = child.Max(o.MinSize())
	}
	return fyne.NewSize(child.Width+2*l.origin.X, l.origin.Y+l.height)
}
