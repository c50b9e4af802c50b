package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/julpanucci/timerView/internal/config"
)

type SoundEffect int

const (
	SoundStart SoundEffect = iota
	SoundPause
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// SoundPlayer plays the short cues for starting and pausing a workout.
// A nil *SoundPlayer is silent.
type SoundPlayer struct {
	format  beep.Format
	buffers map[SoundEffect]*beep.Buffer
	volume  float64
}

// NewSoundPlayer decodes the configured cues and opens the speaker.
// It returns a nil player when sound is disabled.
func NewSoundPlayer(cfg config.SoundConfig) (*SoundPlayer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	p, err := loadSounds(cfg)
	if err != nil {
		return nil, err
	}

	if err := initSpeaker(p.format, speaker.Init); err != nil {
		return nil, err
	}
	return p, nil
}

// initSpeaker opens the speaker once per process. A failed first attempt
// is reported to every later caller.
func initSpeaker(format beep.Format, open func(beep.SampleRate, int) error) error {
	speakerOnce.Do(func() {
		speakerErr = open(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}
	return nil
}

// loadSounds decodes every cue into memory, resampling to the rate of the
// first one.
func loadSounds(cfg config.SoundConfig) (*SoundPlayer, error) {
	p := &SoundPlayer{
		buffers: make(map[SoundEffect]*beep.Buffer),
		volume:  cfg.Volume,
	}

	sounds := []struct {
		effect SoundEffect
		path   string
	}{
		{SoundStart, cfg.StartPath},
		{SoundPause, cfg.PausePath},
	}

	for _, s := range sounds {
		buffer, err := p.decode(s.path)
		if err != nil {
			return nil, err
		}
		p.buffers[s.effect] = buffer
	}
	return p, nil
}

func (p *SoundPlayer) decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	if p.format.SampleRate == 0 {
		p.format = format
	}

	buffer := beep.NewBuffer(p.format)
	if format.SampleRate != p.format.SampleRate {
		buffer.Append(beep.Resample(4, format.SampleRate, p.format.SampleRate, streamer))
	} else {
		buffer.Append(streamer)
	}
	return buffer, nil
}

func (p *SoundPlayer) Play(effect SoundEffect) {
	if p == nil {
		return
	}
	buffer, ok := p.buffers[effect]
	if !ok {
		return
	}

	volumeCtrl := &effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   p.volume,
		Silent:   false,
	}
	speaker.Play(volumeCtrl)
}
