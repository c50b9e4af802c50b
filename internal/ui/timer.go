package ui

import (
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/julpanucci/timerView/internal/config"
	"github.com/julpanucci/timerView/internal/models"
	"github.com/julpanucci/timerView/internal/tracker"
)

// TimerView is the workout card: a status line, the elapsed time and a
// play/pause button over a rounded gradient.
type TimerView struct {
	widget.BaseWidget

	cfg     config.TimerViewConfig
	tracker *tracker.Tracker
	clock   tracker.Clock
	sounds  *SoundPlayer
	log     *slog.Logger

	background  *canvas.Raster
	shadow      *canvas.Rectangle
	statusLabel *canvas.Text
	timeLabel   *canvas.Text
	playButton  *widget.Button
	content     *fyne.Container
}

type viewOptions struct {
	clock     tracker.Clock
	scheduler tracker.Scheduler
	sounds    *SoundPlayer
	log       *slog.Logger
}

type ViewOption func(*viewOptions)

func WithClock(c tracker.Clock) ViewOption {
	return func(o *viewOptions) { o.clock = c }
}

func WithScheduler(s tracker.Scheduler) ViewOption {
	return func(o *viewOptions) { o.scheduler = s }
}

func WithSounds(p *SoundPlayer) ViewOption {
	return func(o *viewOptions) { o.sounds = p }
}

func WithLogger(l *slog.Logger) ViewOption {
	return func(o *viewOptions) { o.log = l }
}

// NewTimerView creates an idle timer card. Ticks are delivered on the fyne
// UI thread unless another scheduler is supplied.
func NewTimerView(cfg config.TimerViewConfig, opts ...ViewOption) *TimerView {
	o := viewOptions{
		clock:     tracker.SystemClock,
		scheduler: NewScheduler(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := &TimerView{
		cfg:    cfg,
		clock:  o.clock,
		sounds: o.sounds,
		log:    o.log,
		tracker: tracker.New(
			tracker.WithClock(o.clock),
			tracker.WithScheduler(o.scheduler),
			tracker.WithLogger(o.log),
		),
	}
	v.build()
	v.tracker.SetOnChange(v.apply)
	v.apply(v.tracker.Snapshot())
	v.ExtendBaseWidget(v)
	return v
}

func (v *TimerView) build() {
	defaults := config.DefaultConfig().TimerView
	textColor := colorOr(v.cfg.TextColor, defaults.TextColor)
	start := colorOr(v.cfg.GradientStart, defaults.GradientStart)
	end := colorOr(v.cfg.GradientEnd, defaults.GradientEnd)

	v.shadow = canvas.NewRectangle(colorOr(v.cfg.ShadowColor, defaults.ShadowColor))
	v.shadow.CornerRadius = v.cfg.CornerRadius

	v.background = canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		scale := 1.0
		if size := v.Size(); size.Width > 0 {
			scale = float64(w) / float64(size.Width)
		}
		return roundedGradientAt(x, y, w, h, float64(v.cfg.CornerRadius)*scale, v.cfg.GradientAngle, start, end)
	})

	v.statusLabel = canvas.NewText("", textColor)
	v.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.statusLabel.TextSize = v.cfg.StatusTextSize

	v.timeLabel = canvas.NewText("", textColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.timeLabel.TextSize = v.cfg.TimeTextSize

	v.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), v.onTapped)
	v.playButton.Importance = widget.LowImportance

	buttonSize := fyne.NewSquareSize(v.cfg.ButtonSize)
	labels := container.NewVBox(v.statusLabel, v.timeLabel)
	v.content = container.NewBorder(
		nil, nil, nil,
		container.NewCenter(container.NewGridWrap(buttonSize, v.playButton)),
		labels,
	)
}

func (v *TimerView) CreateRenderer() fyne.WidgetRenderer {
	card := container.New(&cardLayout{
		shadowOffset: fyne.NewPos(v.cfg.ShadowOffsetX, v.cfg.ShadowOffsetY),
		inset:        fyne.NewSize(22, 16),
	}, v.shadow, v.background, v.content)
	return widget.NewSimpleRenderer(card)
}

func (v *TimerView) onTapped() {
	v.tracker.Toggle()
	if v.tracker.State() == models.StateRunning {
		v.sounds.Play(SoundStart)
	} else {
		v.sounds.Play(SoundPause)
	}
}

// Resync corrects the elapsed time after the app returns to the foreground.
func (v *TimerView) Resync() {
	v.tracker.Resync(v.clock.Now())
}

// Dispose stops the running tick callback. Call it when the view is torn down.
func (v *TimerView) Dispose() {
	v.tracker.Dispose()
}

func (v *TimerView) Tracker() *tracker.Tracker {
	return v.tracker
}

func (v *TimerView) apply(s tracker.Snapshot) {
	v.statusLabel.Text = s.Status
	v.statusLabel.Refresh()
	v.timeLabel.Text = s.Text
	v.timeLabel.Refresh()
	v.playButton.SetIcon(iconResource(s.Icon))
}

func iconResource(icon models.Icon) fyne.Resource {
	if icon == models.IconPause {
		return theme.MediaPauseIcon()
	}
	return theme.MediaPlayIcon()
}

func colorOr(hex, fallback string) color.NRGBA {
	if c, err := config.ParseColor(hex); err == nil {
		return c
	}
	c, _ := config.ParseColor(fallback)
	return c
}

// roundedGradientAt returns the pixel at (x, y) of a w*h linear gradient
// clipped to rounded corners of radius r. The gradient runs between the
// 25% and 75% marks along angle degrees, 90 meaning left to right.
func roundedGradientAt(x, y, w, h int, r, angle float64, start, end color.NRGBA) color.Color {
	if w <= 0 || h <= 0 {
		return color.Transparent
	}
	fx, fy := float64(x)+0.5, float64(y)+0.5
	fw, fh := float64(w), float64(h)

	r = math.Min(r, math.Min(fw, fh)/2)
	if r > 0 {
		cx := math.Max(r, math.Min(fx, fw-r))
		cy := math.Max(r, math.Min(fy, fh-r))
		if math.Hypot(fx-cx, fy-cy) > r {
			return color.Transparent
		}
	}

	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	// project onto the gradient axis, normalised to [0,1] across the box
	half := (math.Abs(dx)*fw + math.Abs(dy)*fh) / 2
	p := 0.5
	if half > 0 {
		p = ((fx-fw/2)*dx+(fy-fh/2)*dy)/(2*half) + 0.5
	}
	t := math.Max(0, math.Min(1, (p-0.25)/0.5))

	return color.NRGBA{
		R: lerp(start.R, end.R, t),
		G: lerp(start.G, end.G, t),
		B: lerp(start.B, end.B, t),
		A: lerp(start.A, end.A, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// cardLayout stacks the shadow, background and padded content.
type cardLayout struct {
	shadowOffset fyne.Position
	inset        fyne.Size
}

func (l *cardLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) != 3 {
		return
	}
	shadow, background, content := objects[0], objects[1], objects[2]

	shadow.Move(l.shadowOffset)
	shadow.Resize(size)
	background.Move(fyne.NewPos(0, 0))
	background.Resize(size)
	content.Move(fyne.NewPos(l.inset.Width, l.inset.Height))
	content.Resize(fyne.NewSize(size.Width-2*l.inset.Width, size.Height-2*l.inset.Height))
}

func (l *cardLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) != 3 {
		return fyne.NewSize(0, 0)
	}
	return objects[2].MinSize().Add(fyne.NewSize(2*l.inset.Width, 2*l.inset.Height))
}
