package models

type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
)

func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// StatusLabel is the description shown above the elapsed time.
func (s TimerState) StatusLabel() string {
	switch s {
	case StateRunning:
		return "In progress"
	case StatePaused:
		return "Resume workout"
	default:
		return "Start Workout"
	}
}

// Icon identifies the image on the play/pause button.
type Icon string

const (
	IconPlay  Icon = "play_button"
	IconPause Icon = "pause_button"
)

// ButtonIcon returns the icon that offers the next transition.
func (s TimerState) ButtonIcon() Icon {
	if s == StateRunning {
		return IconPause
	}
	return IconPlay
}
