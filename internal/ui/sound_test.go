package ui

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julpanucci/timerView/internal/config"
)

// writeWAV writes a silent 16-bit mono PCM file.
func writeWAV(t *testing.T, dir, name string, sampleRate, samples int) string {
	t.Helper()
	dataSize := samples * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestNewSoundPlayerDisabled(t *testing.T) {
	p, err := NewSoundPlayer(config.SoundConfig{Enabled: false, StartPath: "missing.wav"})
	require.NoError(t, err)
	assert.Nil(t, p)

	// a nil player is silent
	assert.NotPanics(t, func() { p.Play(SoundStart) })
}

func TestNewSoundPlayerMissingFile(t *testing.T) {
	_, err := NewSoundPlayer(config.SoundConfig{
		Enabled:   true,
		StartPath: filepath.Join(t.TempDir(), "missing.wav"),
	})
	assert.ErrorContains(t, err, "open sound")
}

func TestLoadSoundsDecodesCues(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SoundConfig{
		Enabled:   true,
		StartPath: writeWAV(t, dir, "start.wav", 8000, 800),
		PausePath: writeWAV(t, dir, "pause.wav", 8000, 400),
		Volume:    -1,
	}

	p, err := loadSounds(cfg)
	require.NoError(t, err)

	assert.Equal(t, 8000, int(p.format.SampleRate))
	assert.Equal(t, 1, p.format.NumChannels)
	require.Contains(t, p.buffers, SoundStart)
	require.Contains(t, p.buffers, SoundPause)
	assert.Equal(t, 800, p.buffers[SoundStart].Len())
	assert.Equal(t, 400, p.buffers[SoundPause].Len())
	assert.Equal(t, -1.0, p.volume)
}

func TestLoadSoundsResamples(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SoundConfig{
		Enabled:   true,
		StartPath: writeWAV(t, dir, "start.wav", 8000, 800),
		PausePath: writeWAV(t, dir, "pause.wav", 16000, 1600),
	}

	p, err := loadSounds(cfg)
	require.NoError(t, err)
	assert.Equal(t, 8000, int(p.format.SampleRate))
	assert.InDelta(t, 800, p.buffers[SoundPause].Len(), 10)
}

func TestLoadSoundsRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav file at all"), 0644))

	_, err := loadSounds(config.SoundConfig{StartPath: bad, PausePath: bad})
	assert.ErrorContains(t, err, "decode")
}

func TestInitSpeakerRemembersFailure(t *testing.T) {
	speakerOnce = sync.Once{}
	speakerErr = nil
	t.Cleanup(func() {
		speakerOnce = sync.Once{}
		speakerErr = nil
	})

	calls := 0
	failing := func(beep.SampleRate, int) error {
		calls++
		return errors.New("no audio device")
	}
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

	assert.ErrorContains(t, initSpeaker(format, failing), "no audio device")
	assert.ErrorContains(t, initSpeaker(format, failing), "init speaker")
	assert.Equal(t, 1, calls)
}
